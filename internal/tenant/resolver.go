package tenant

import (
	"context"
	"errors"

	"github.com/flukeworks/fluke/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver maps subdomains to tenant records. Every call is a fresh point
// lookup against the datastore; there is no cache and no retry.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the tenant for a subdomain, or nil when no tenant is in
// scope. Not-found and backend errors both collapse into nil; the
// distinction is logged for operators but never exposed to the caller, so a
// failing datastore denies tenant context instead of leaking a partial one.
func (r *Resolver) Resolve(ctx context.Context, subdomain string) *domain.Tenant {
	if subdomain == "" {
		return nil
	}

	t, err := r.repo.GetBySubdomain(ctx, subdomain)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		zap.L().Debug("tenant not found", zap.String("subdomain", subdomain))
		return nil
	case err != nil:
		zap.L().Warn("tenant lookup failed",
			zap.String("subdomain", subdomain),
			zap.Error(err))
		return nil
	}
	return t
}

// BuildContext constructs the per-request tenant context from a raw Host
// header. Host parser output is assumed already lowercase; browsers
// lowercase hostnames, so inbound subdomains are matched verbatim. The
// bare www subdomain is an alias for the main domain and is never
// resolved against the datastore.
func (r *Resolver) BuildContext(ctx context.Context, host string) Context {
	subdomain, ok := ExtractSubdomain(host)
	if subdomain == "www" {
		ok = false
	}
	tc := Context{
		Subdomain:    subdomain,
		IsMainDomain: !ok,
	}
	if ok {
		tc.Tenant = r.Resolve(ctx, subdomain)
	}
	return tc
}
