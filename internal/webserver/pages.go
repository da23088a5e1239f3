package webserver

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/flukeworks/fluke/internal/domain"
)

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "home"}}<!DOCTYPE html>
<html><head><title>Fluke</title></head>
<body>
<h1>Fluke</h1>
<p>Launch your storefront on your own subdomain.</p>
<p><a href="/register">Register</a> | <a href="/admin">Admin</a></p>
</body></html>{{end}}

{{define "storefront"}}<!DOCTYPE html>
<html><head><title>{{.Tenant.Name}}</title></head>
<body style="border-top: 6px solid {{.Tenant.PrimaryColor}}">
<h1>{{.Tenant.Name}}</h1>
{{if .Tenant.LogoUrl}}<img src="{{.Tenant.LogoUrl}}" alt="{{.Tenant.Name}}" height="48">{{end}}
<ul>
{{range .Products}}<li>{{.Name}} — {{printf "%.2f" .Price}}</li>
{{else}}<li>No products yet.</li>{{end}}
</ul>
</body></html>{{end}}

{{define "tenant-not-found"}}<!DOCTYPE html>
<html><head><title>Store not found</title></head>
<body>
<h1>Store not found</h1>
<p>There is no store at this address.</p>
</body></html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html><head><title>Register</title></head>
<body>
<h1>Create your store</h1>
<form method="post" action="/api/tenants">
<input name="name" placeholder="Store name">
<input name="subdomain" placeholder="subdomain">
<button type="submit">Create</button>
</form>
</body></html>{{end}}

{{define "admin"}}<!DOCTYPE html>
<html><head><title>Admin</title></head>
<body>
<h1>Admin dashboard</h1>
<p>Stats: <a href="/api/admin/stats">/api/admin/stats</a></p>
<p>Tenants: <a href="/api/tenants">/api/tenants</a></p>
</body></html>{{end}}
`))

type storefrontData struct {
	Tenant   *domain.Tenant
	Products []domain.Product
}

func registerPageRoutes(s *WebServer) {
	s.root.GET("/", renderPage("home"))
	s.root.GET("/register", renderPage("register"))
	s.root.GET("/admin", renderPage("admin"))
	s.root.GET(PathTenantNotFound, renderPage("tenant-not-found"))
	s.root.GET(PathStorefront, s.storefrontPage)
}

func renderPage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		return pageTemplates.ExecuteTemplate(c.Response(), name, nil)
	}
}

// storefrontPage renders the tenant storefront using the tenant identity
// attached by the routing middleware
func (s *WebServer) storefrontPage(c echo.Context) error {
	tc, ok := TenantFromContext(c)
	if !ok || !tc.Resolved() {
		return c.Redirect(http.StatusFound, "/")
	}

	var products []domain.Product
	err := s.appctx.DB().WithContext(c.Request().Context()).
		Where("tenant_id = ? and is_active = ?", tc.Tenant.ID, true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		zap.L().Error("storefront product query failed",
			zap.String("subdomain", tc.Subdomain), zap.Error(err))
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return pageTemplates.ExecuteTemplate(c.Response(), "storefront", storefrontData{
		Tenant:   tc.Tenant,
		Products: products,
	})
}
