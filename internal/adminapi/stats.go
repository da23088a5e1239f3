package adminapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flukeworks/fluke/internal/domain"
	"github.com/flukeworks/fluke/internal/webserver"
	"github.com/flukeworks/fluke/pkg/metrics"
)

type statsResponse struct {
	Tenants        int64 `json:"tenants"`
	Products       int64 `json:"products"`
	ActiveProducts int64 `json:"active_products"`
	HttpRequests   int64 `json:"http_requests"`
}

func registerStatsRoutes() {
	webserver.ApiGET("/admin/stats", adminStats)
	webserver.ApiGET("/admin/metrics", adminMetrics)
}

// adminStats returns the dashboard row counts for the main-domain admin page
func adminStats(c echo.Context) error {
	var stats statsResponse

	if err := GetDB(c).Model(&domain.Tenant{}).Count(&stats.Tenants).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query stats", err.Error())
	}
	if err := GetDB(c).Model(&domain.Product{}).Count(&stats.Products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query stats", err.Error())
	}
	if err := GetDB(c).Model(&domain.Product{}).Where("is_active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query stats", err.Error())
	}
	stats.HttpRequests = metrics.CounterValue("http_requests")

	return ok(c, stats)
}

type metricPoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// adminMetrics returns recent data points for one operational metric
// (cpu_usage, mem_usage, http_requests) for the dashboard charts. The
// window defaults to the last hour; ?last= overrides it in seconds.
func adminMetrics(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Metric name is required", nil)
	}

	span := int64(3600)
	if v := c.QueryParam("last"); v != "" {
		secs, err := strconv.ParseInt(v, 10, 64)
		if err != nil || secs <= 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid time span", nil)
		}
		span = secs
	}

	end := time.Now().Unix()
	points, err := metrics.Select(name, end-span, end)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "METRICS_ERROR", "Failed to query metric", err.Error())
	}

	out := make([]metricPoint, 0, len(points))
	for _, p := range points {
		out = append(out, metricPoint{Timestamp: p.Timestamp, Value: p.Value})
	}
	return ok(c, out)
}
