package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/tenant"
	"github.com/flukeworks/fluke/internal/webserver"
	"github.com/flukeworks/fluke/pkg/common"
)

type tenantPayload struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Subdomain    string `json:"subdomain" validate:"required,min=1,max=200"`
	PrimaryColor string `json:"primary_color" validate:"omitempty,max=16"`
}

type tenantUpdatePayload struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	PrimaryColor *string `json:"primary_color" validate:"omitempty,max=16"`
	LogoUrl      *string `json:"logo_url" validate:"omitempty,max=1024"`
}

// registerTenantRoutes registers tenant CRUD endpoints
func registerTenantRoutes() {
	webserver.ApiGET("/tenants", listTenants)
	webserver.ApiGET("/tenants/:id", getTenant)
	webserver.ApiPOST("/tenants", createTenant)
	webserver.ApiPUT("/tenants/:id", updateTenant)
	webserver.ApiDELETE("/tenants/:id", deleteTenant)
}

// listTenants returns a single tenant when a subdomain query is present,
// otherwise all tenants newest-first for the admin listing
func listTenants(c echo.Context) error {
	if subdomain := strings.TrimSpace(c.QueryParam("subdomain")); subdomain != "" {
		var t domain.Tenant
		if err := GetDB(c).Where("subdomain = ?", subdomain).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found", nil)
		} else if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenant", err.Error())
		}
		return ok(c, t)
	}

	var tenants []domain.Tenant
	if err := GetDB(c).Order("created_at DESC").Find(&tenants).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenants", err.Error())
	}
	return ok(c, tenants)
}

func getTenant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID", nil)
	}

	var t domain.Tenant
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenant", err.Error())
	}

	return ok(c, t)
}

func createTenant(c echo.Context) error {
	var payload tenantPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse tenant parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name and subdomain are required", nil)
	}

	// checked defensively here; uniqueness is also enforced by the index
	subdomain := tenant.SanitizeSubdomain(payload.Subdomain)
	if !tenant.ValidSubdomain(subdomain) {
		return fail(c, http.StatusBadRequest, "INVALID_SUBDOMAIN", "Invalid subdomain format", nil)
	}

	var exists int64
	if err := GetDB(c).Model(&domain.Tenant{}).Where("subdomain = ?", subdomain).Count(&exists).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenant", err.Error())
	}
	if exists > 0 {
		return fail(c, http.StatusConflict, "SUBDOMAIN_EXISTS", "Subdomain already exists", nil)
	}

	color := strings.TrimSpace(payload.PrimaryColor)
	if color == "" {
		color = appctx.GetSettingsStringValue("tenant", "DefaultPrimaryColor")
	}
	if color == "" {
		color = "#3b82f6"
	}

	t := domain.Tenant{
		ID:           common.UUIDint64(),
		Name:         payload.Name,
		Subdomain:    subdomain,
		PrimaryColor: color,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// a concurrent create can slip past the count; the unique index settles it
	if err := GetDB(c).Create(&t).Error; errors.Is(err, gorm.ErrDuplicatedKey) {
		return fail(c, http.StatusConflict, "SUBDOMAIN_EXISTS", "Subdomain already exists", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create tenant", err.Error())
	}

	auditLog(c, t.ID, http.StatusCreated)
	return created(c, t)
}

func updateTenant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID", nil)
	}

	var payload tenantUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse tenant parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var t domain.Tenant
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenant", err.Error())
	}

	if payload.Name != nil {
		t.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.PrimaryColor != nil {
		t.PrimaryColor = strings.TrimSpace(*payload.PrimaryColor)
	}
	if payload.LogoUrl != nil {
		t.LogoUrl = strings.TrimSpace(*payload.LogoUrl)
	}
	t.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update tenant", err.Error())
	}

	auditLog(c, t.ID, http.StatusOK)
	return ok(c, t)
}

func deleteTenant(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid tenant ID", nil)
	}

	var t domain.Tenant
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tenant", err.Error())
	}

	// owned products go first; no FK cascade is declared on the table
	if err := GetDB(c).Where("tenant_id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete tenant products", err.Error())
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Tenant{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete tenant", err.Error())
	}

	auditLog(c, id, http.StatusOK)
	return ok(c, map[string]interface{}{"message": "Tenant deleted successfully"})
}
