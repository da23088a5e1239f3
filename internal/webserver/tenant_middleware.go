package webserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flukeworks/fluke/internal/tenant"
)

// Forwarded tenant metadata headers. Set by the routing middleware, read by
// downstream handlers; absence of HeaderTenantId on an API request means no
// tenant is in scope.
const (
	HeaderTenantId        = "x-tenant-id"
	HeaderTenantSubdomain = "x-tenant-subdomain"
	HeaderTenantName      = "x-tenant-name"
	HeaderTenantColor     = "x-tenant-color"
)

const (
	PathStorefront     = "/tenant"
	PathTenantNotFound = "/tenant-not-found"
)

// tenantContextKey is the echo context key holding the per-request
// tenant.Context
const tenantContextKey = "tenant_context"

// mainDomainPrefixes is the allow-list of path prefixes served on the main
// domain; everything else redirects to the home page.
var mainDomainPrefixes = []string{
	"/register",
	"/admin",
	PathTenantNotFound,
	"/api",
	"/static",
	"/favicon.ico",
}

// TenantRouting builds the per-request tenant context from the Host header
// and applies the routing decision:
//
//   - main domain: pass through allow-listed paths, redirect the rest to /;
//   - subdomain without a matching tenant: redirect to the not-found page;
//   - subdomain root: redirect to the storefront;
//   - otherwise: continue with tenant identity attached as request headers.
//
// A datastore failure during resolution behaves exactly like "tenant not
// found": the safe default is to deny tenant context.
func TenantRouting(resolver *tenant.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			// tenant identity comes from resolution only, never from the client
			req.Header.Del(HeaderTenantId)
			req.Header.Del(HeaderTenantSubdomain)
			req.Header.Del(HeaderTenantName)
			req.Header.Del(HeaderTenantColor)

			tc := resolver.BuildContext(req.Context(), req.Host)
			if tc.IsMainDomain {
				if mainDomainAllowed(path) {
					return next(c)
				}
				return c.Redirect(http.StatusFound, "/")
			}

			if !tc.Resolved() {
				// loop guard: let the not-found page itself render
				if path == PathTenantNotFound {
					return next(c)
				}
				return c.Redirect(http.StatusFound, PathTenantNotFound)
			}

			if path == "/" {
				return c.Redirect(http.StatusFound, PathStorefront)
			}

			t := tc.Tenant
			req.Header.Set(HeaderTenantId, strconv.FormatInt(t.ID, 10))
			req.Header.Set(HeaderTenantSubdomain, t.Subdomain)
			req.Header.Set(HeaderTenantName, t.Name)
			req.Header.Set(HeaderTenantColor, t.PrimaryColor)
			c.Set(tenantContextKey, tc)

			return next(c)
		}
	}
}

func mainDomainAllowed(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range mainDomainPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// TenantFromContext returns the tenant context attached by the routing
// middleware, if any
func TenantFromContext(c echo.Context) (tenant.Context, bool) {
	tc, ok := c.Get(tenantContextKey).(tenant.Context)
	return tc, ok
}
