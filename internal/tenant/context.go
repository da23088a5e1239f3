package tenant

import "github.com/flukeworks/fluke/internal/domain"

// Context is the per-request bundle of resolved tenant identity and routing
// flags. It is built fresh from the Host header on every request and never
// persisted or shared across requests.
type Context struct {
	Tenant       *domain.Tenant
	Subdomain    string
	IsMainDomain bool
}

// Resolved reports whether a tenant record is in scope
func (c Context) Resolved() bool {
	return c.Tenant != nil
}
