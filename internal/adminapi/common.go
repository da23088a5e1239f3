package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/flukeworks/fluke/internal/app"
	"github.com/flukeworks/fluke/internal/auth"
	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/webserver"
)

var (
	appctx     app.AppContext
	authClient *auth.Client
)

// InitRouter wires the REST API routes into the web server
func InitRouter(ctx app.AppContext) {
	appctx = ctx
	authClient = auth.NewClient(ctx.Config().Auth)
	registerTenantRoutes()
	registerProductRoutes()
	registerRegisterRoutes()
	registerStatsRoutes()
}

// GetDB returns the request-scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return appctx.DB().WithContext(c.Request().Context())
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// fail sends a uniform error response. The detail is logged server-side and
// never returned to the caller.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Error("api error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("code", code),
			zap.Any("detail", detail))
	}
	return c.JSON(status, errorResponse{Code: code, Error: message})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func handleValidationError(c echo.Context, err error) error {
	if verrs, isok := err.(validator.ValidationErrors); isok && len(verrs) > 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verrs[0].Error(), nil)
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}

// tenantIdFromHeader reads the tenant scope set by the routing middleware.
// API handlers must treat a missing header as "tenant context required".
func tenantIdFromHeader(c echo.Context) (int64, bool) {
	v := c.Request().Header.Get(webserver.HeaderTenantId)
	if v == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// auditLog records a mutating API request, best effort
func auditLog(c echo.Context, tenantId int64, status int) {
	err := GetDB(c).Create(&domain.SysApiLog{
		Method:   c.Request().Method,
		Path:     c.Request().URL.Path,
		Host:     c.Request().Host,
		TenantId: tenantId,
		Status:   status,
		OptTime:  time.Now(),
	}).Error
	if err != nil {
		zap.S().Warnf("api audit log failed: %s", err.Error())
	}
}
