package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/webserver"
	"github.com/flukeworks/fluke/pkg/common"
)

type productPayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2048"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	ImageUrl    string   `json:"image_url" validate:"omitempty,max=1024"`
}

type productUpdatePayload struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2048"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageUrl    *string  `json:"image_url" validate:"omitempty,max=1024"`
	IsActive    *bool    `json:"is_active"`
}

// registerProductRoutes registers tenant-scoped product CRUD endpoints.
// Every route requires the tenant header set by the routing middleware.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func requireTenant(c echo.Context) (int64, error) {
	tenantId, hasTenant := tenantIdFromHeader(c)
	if !hasTenant {
		return 0, fail(c, http.StatusBadRequest, "TENANT_REQUIRED", "Tenant context required", nil)
	}
	return tenantId, nil
}

// listProducts returns the tenant's active products, newest-first
func listProducts(c echo.Context) error {
	tenantId, err := requireTenant(c)
	if err != nil {
		return err
	}

	var products []domain.Product
	if err := GetDB(c).
		Where("tenant_id = ? and is_active = ?", tenantId, true).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return ok(c, products)
}

func getProduct(c echo.Context) error {
	tenantId, err := requireTenant(c)
	if err != nil {
		return err
	}

	id, perr := parseIDParam(c, "id")
	if perr != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	// a product id from another tenant behaves exactly like a missing one
	var p domain.Product
	if err := GetDB(c).Where("id = ? and tenant_id = ?", id, tenantId).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	return ok(c, p)
}

func createProduct(c echo.Context) error {
	tenantId, err := requireTenant(c)
	if err != nil {
		return err
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and price are required", nil)
	}

	now := time.Now()
	p := domain.Product{
		ID:          common.UUIDint64(),
		TenantId:    tenantId,
		Name:        payload.Name,
		Description: strings.TrimSpace(payload.Description),
		Price:       *payload.Price,
		ImageUrl:    strings.TrimSpace(payload.ImageUrl),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	auditLog(c, tenantId, http.StatusCreated)
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	tenantId, err := requireTenant(c)
	if err != nil {
		return err
	}

	id, perr := parseIDParam(c, "id")
	if perr != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var p domain.Product
	if err := GetDB(c).Where("id = ? and tenant_id = ?", id, tenantId).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if payload.Name != nil {
		p.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		p.Description = strings.TrimSpace(*payload.Description)
	}
	if payload.Price != nil {
		p.Price = *payload.Price
	}
	if payload.ImageUrl != nil {
		p.ImageUrl = strings.TrimSpace(*payload.ImageUrl)
	}
	if payload.IsActive != nil {
		p.IsActive = *payload.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	auditLog(c, tenantId, http.StatusOK)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	tenantId, err := requireTenant(c)
	if err != nil {
		return err
	}

	id, perr := parseIDParam(c, "id")
	if perr != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var p domain.Product
	if err := GetDB(c).Where("id = ? and tenant_id = ?", id, tenantId).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	if err := GetDB(c).Where("id = ? and tenant_id = ?", id, tenantId).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}

	auditLog(c, tenantId, http.StatusOK)
	return ok(c, map[string]interface{}{"message": "Product deleted successfully"})
}
