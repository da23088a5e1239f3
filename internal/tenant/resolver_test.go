package tenant

import (
	"context"
	"errors"
	"testing"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepository struct {
	tenants map[string]*domain.Tenant
	err     error
}

func (f *fakeRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.tenants[subdomain]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestResolve(t *testing.T) {
	acme := &domain.Tenant{ID: 1, Name: "Acme", Subdomain: "acme"}
	r := NewResolver(&fakeRepository{tenants: map[string]*domain.Tenant{"acme": acme}})

	assert.Equal(t, acme, r.Resolve(context.Background(), "acme"))
	assert.Nil(t, r.Resolve(context.Background(), "missing"))
	assert.Nil(t, r.Resolve(context.Background(), ""))
}

func TestResolveBackendErrorCollapsesToNil(t *testing.T) {
	r := NewResolver(&fakeRepository{err: errors.New("connection refused")})
	assert.Nil(t, r.Resolve(context.Background(), "acme"))
}

func TestBuildContext(t *testing.T) {
	acme := &domain.Tenant{ID: 1, Name: "Acme", Subdomain: "acme"}
	r := NewResolver(&fakeRepository{tenants: map[string]*domain.Tenant{"acme": acme}})

	tc := r.BuildContext(context.Background(), "acme.fluke.xyz")
	assert.False(t, tc.IsMainDomain)
	assert.Equal(t, "acme", tc.Subdomain)
	assert.True(t, tc.Resolved())

	tc = r.BuildContext(context.Background(), "fluke.xyz")
	assert.True(t, tc.IsMainDomain)
	assert.Empty(t, tc.Subdomain)
	assert.False(t, tc.Resolved())

	tc = r.BuildContext(context.Background(), "ghost.fluke.xyz")
	assert.False(t, tc.IsMainDomain)
	assert.Equal(t, "ghost", tc.Subdomain)
	assert.False(t, tc.Resolved())
}

func TestBuildContextTreatsWwwAsMainDomain(t *testing.T) {
	r := NewResolver(&fakeRepository{err: errors.New("must not be called")})

	tc := r.BuildContext(context.Background(), "www.fluke.xyz")
	assert.True(t, tc.IsMainDomain)
	assert.False(t, tc.Resolved())
}
