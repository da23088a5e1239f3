package webserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/tenant"
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

func newTestRouter(repo tenant.Repository) *echo.Echo {
	e := echo.New()
	e.Use(TenantRouting(tenant.NewResolver(repo)))

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "handled")
	}
	e.GET("/", handler)
	e.GET("/register", handler)
	e.GET("/admin", handler)
	e.GET(PathTenantNotFound, handler)
	e.GET(PathStorefront, handler)
	e.GET("/api/products", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Request().Header.Get(HeaderTenantId))
	})
	e.GET("/anything", handler)
	return e
}

func acmeRepo() *fakeRepository {
	return &fakeRepository{tenants: map[string]*domain.Tenant{
		"acme": {ID: 42, Name: "Acme", Subdomain: "acme", PrimaryColor: "#ff0000"},
	}}
}

func doRequest(e *echo.Echo, host, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Host = host
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMainDomainAllowList(t *testing.T) {
	e := newTestRouter(acmeRepo())

	for _, path := range []string{"/", "/register", "/admin", PathTenantNotFound, "/api/products"} {
		rec := doRequest(e, "fluke.xyz", path)
		assert.NotEqual(t, http.StatusFound, rec.Code, "path %s should pass through", path)
	}

	rec := doRequest(e, "fluke.xyz", "/anything")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestWwwTreatedAsMainDomain(t *testing.T) {
	e := newTestRouter(acmeRepo())

	rec := doRequest(e, "www.fluke.xyz", "/register")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, "www.fluke.xyz", "/anything")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestUnresolvedSubdomainRedirects(t *testing.T) {
	e := newTestRouter(acmeRepo())

	// any path on an unknown subdomain redirects to the not-found page
	for _, path := range []string{"/", "/anything", "/api/products", PathStorefront} {
		rec := doRequest(e, "ghost.fluke.xyz", path)
		assert.Equal(t, http.StatusFound, rec.Code, "path %s", path)
		assert.Equal(t, PathTenantNotFound, rec.Header().Get(echo.HeaderLocation))
	}

	// except the not-found page itself
	rec := doRequest(e, "ghost.fluke.xyz", PathTenantNotFound)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolverErrorBehavesLikeNotFound(t *testing.T) {
	e := newTestRouter(&fakeRepository{err: assert.AnError})

	rec := doRequest(e, "acme.fluke.xyz", "/anything")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PathTenantNotFound, rec.Header().Get(echo.HeaderLocation))
}

func TestResolvedSubdomainRootRedirectsToStorefront(t *testing.T) {
	e := newTestRouter(acmeRepo())

	rec := doRequest(e, "acme.fluke.xyz", "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PathStorefront, rec.Header().Get(echo.HeaderLocation))
}

func TestResolvedSubdomainDecoratesRequest(t *testing.T) {
	e := echo.New()
	e.Use(TenantRouting(tenant.NewResolver(acmeRepo())))
	e.GET("/api/products", func(c echo.Context) error {
		h := c.Request().Header
		assert.Equal(t, "42", h.Get(HeaderTenantId))
		assert.Equal(t, "acme", h.Get(HeaderTenantSubdomain))
		assert.Equal(t, "Acme", h.Get(HeaderTenantName))
		assert.Equal(t, "#ff0000", h.Get(HeaderTenantColor))

		tc, ok := TenantFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, int64(42), tc.Tenant.ID)
		return c.NoContent(http.StatusOK)
	})

	rec := doRequest(e, "acme.fluke.xyz", "/api/products")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientSuppliedTenantHeaderIsStripped(t *testing.T) {
	e := echo.New()
	e.Use(TenantRouting(tenant.NewResolver(acmeRepo())))
	e.GET("/api/products", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Request().Header.Get(HeaderTenantId))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Host = "fluke.xyz"
	req.Header.Set(HeaderTenantId, "999")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestLocalDevSubdomain(t *testing.T) {
	e := newTestRouter(acmeRepo())

	rec := doRequest(e, "acme.localhost:3000", "/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, PathStorefront, rec.Header().Get(echo.HeaderLocation))

	rec = doRequest(e, "localhost:3000", "/register")
	assert.Equal(t, http.StatusOK, rec.Code)
}
