package webserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/flukeworks/fluke/internal/app"
	"github.com/flukeworks/fluke/internal/tenant"
	"github.com/flukeworks/fluke/pkg/metrics"
)

var server *WebServer

// WebServer wraps the echo instance together with the application context
type WebServer struct {
	root     *echo.Echo
	appctx   app.AppContext
	resolver *tenant.Resolver
}

type CustomValidator struct {
	validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// jsonSerializer swaps echo's JSON codec for json-iterator
type jsonSerializer struct{}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsonAPI.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json payload").SetInternal(err)
	}
	return nil
}

// Init creates the global web server instance
func Init(appctx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = appctx.Config().System.Debug
	e.JSONSerializer = jsonSerializer{}
	e.Validator = NewCustomValidator()

	resolver := tenant.NewResolver(tenant.NewGormRepository(appctx.DB()))

	e.Use(middleware.Recover())
	e.Use(requestLogger())
	e.Use(TenantRouting(resolver))

	server = &WebServer{
		root:     e,
		appctx:   appctx,
		resolver: resolver,
	}
	registerPageRoutes(server)
	return server
}

// Listen starts the web server and blocks
func Listen() error {
	cfg := server.appctx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("starting web server on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the web server gracefully
func Shutdown() error {
	return server.root.Close()
}

// requestLogger logs every request and counts it in metrics
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			metrics.IncrCounter("http_requests", 1)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.String("host", c.Request().Host),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

// ApiGET registers an API GET route
func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET("/api"+path, h)
}

// ApiPOST registers an API POST route
func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST("/api"+path, h)
}

// ApiPUT registers an API PUT route
func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT("/api"+path, h)
}

// ApiDELETE registers an API DELETE route
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE("/api"+path, h)
}
