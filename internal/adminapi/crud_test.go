package adminapi

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flukeworks/fluke/config"
	"github.com/flukeworks/fluke/internal/app"
	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/webserver"
)

// newTestStore points the handlers at a migrated sqlite database living in
// the test's temp dir
func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "fluke.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	application := app.NewApplication(config.DefaultAppConfig)
	application.OverrideDB(db)
	appctx = application
	return db
}

func tenantHeader(id string) http.Header {
	h := http.Header{}
	h.Set(webserver.HeaderTenantId, id)
	return h
}

func TestCreateTenantDuplicateSubdomainConflict(t *testing.T) {
	db := newTestStore(t)

	c, rec := newTestContext(t, http.MethodPost, "/api/tenants",
		`{"name":"Acme","subdomain":"acme-store"}`, nil)
	assert.NoError(t, createTenant(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// same subdomain again, different name
	c, rec = newTestContext(t, http.MethodPost, "/api/tenants",
		`{"name":"Other","subdomain":"acme-store"}`, nil)
	assert.NoError(t, createTenant(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Subdomain already exists", decodeError(t, rec).Error)

	// a raw form that sanitizes to the same subdomain also conflicts
	c, rec = newTestContext(t, http.MethodPost, "/api/tenants",
		`{"name":"Shouty","subdomain":"ACME Store"}`, nil)
	assert.NoError(t, createTenant(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	assert.NoError(t, db.Model(&domain.Tenant{}).Where("subdomain = ?", "acme-store").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func seedTwoTenantsOneProduct(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Create(&domain.Tenant{
		ID: 1, Name: "Acme", Subdomain: "acme", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&domain.Tenant{
		ID: 2, Name: "Globex", Subdomain: "globex", CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&domain.Product{
		ID: 10, TenantId: 1, Name: "Widget", Price: 9.5, IsActive: true,
		CreatedAt: now, UpdatedAt: now,
	}).Error)
}

func TestProductAccessIsTenantScoped(t *testing.T) {
	db := newTestStore(t)
	seedTwoTenantsOneProduct(t, db)

	// the owning tenant sees its product
	c, rec := newTestContext(t, http.MethodGet, "/api/products/10", "", tenantHeader("1"))
	c.SetParamNames("id")
	c.SetParamValues("10")
	assert.NoError(t, getProduct(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// another tenant's id behaves exactly like a missing one, for every verb
	cases := []struct {
		name    string
		handler echo.HandlerFunc
		method  string
		body    string
	}{
		{"get", getProduct, http.MethodGet, ""},
		{"update", updateProduct, http.MethodPut, `{"name":"Hijacked"}`},
		{"delete", deleteProduct, http.MethodDelete, ""},
	}
	for _, tc := range cases {
		c, rec := newTestContext(t, tc.method, "/api/products/10", tc.body, tenantHeader("2"))
		c.SetParamNames("id")
		c.SetParamValues("10")
		assert.NoError(t, tc.handler(c), tc.name)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.name)
		assert.Equal(t, "Product not found", decodeError(t, rec).Error, tc.name)
	}

	// and nothing was mutated or deleted
	var p domain.Product
	assert.NoError(t, db.First(&p, 10).Error)
	assert.Equal(t, "Widget", p.Name)
	assert.EqualValues(t, 1, p.TenantId)
}

func TestListProductsIsTenantScoped(t *testing.T) {
	db := newTestStore(t)
	seedTwoTenantsOneProduct(t, db)

	c, rec := newTestContext(t, http.MethodGet, "/api/products", "", tenantHeader("2"))
	assert.NoError(t, listProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []domain.Product
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	c, rec = newTestContext(t, http.MethodGet, "/api/products", "", tenantHeader("1"))
	assert.NoError(t, listProducts(c))
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestDeleteTenantRemovesItsProducts(t *testing.T) {
	db := newTestStore(t)
	seedTwoTenantsOneProduct(t, db)

	c, rec := newTestContext(t, http.MethodDelete, "/api/tenants/1", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.NoError(t, deleteTenant(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var products int64
	assert.NoError(t, db.Model(&domain.Product{}).Where("tenant_id = ?", 1).Count(&products).Error)
	assert.Zero(t, products)

	var tenants int64
	assert.NoError(t, db.Model(&domain.Tenant{}).Count(&tenants).Error)
	assert.EqualValues(t, 1, tenants)
}
