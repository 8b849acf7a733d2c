package adminapi

import (
	"net/http"
	"time"

	"github.com/cafeteca/cafeteca-server/internal/domain"
	"github.com/cafeteca/cafeteca-server/internal/webserver"
	"github.com/cafeteca/cafeteca-server/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", dashboard)
	webserver.ApiGET("/dashboard/metrics/:name", dashboardMetrics)
}

func countRows(c echo.Context, model interface{}, query string, args ...interface{}) int64 {
	var count int64
	db := GetDB(c).Model(model)
	if query != "" {
		db = db.Where(query, args...)
	}
	db.Count(&count)
	return count
}

// dashboard aggregates the back-office landing numbers: entity counts plus
// price statistics over the currently available products.
func dashboard(c echo.Context) error {
	counts := map[string]int64{
		"categories":        countRows(c, &domain.Category{}, ""),
		"categories_active": countRows(c, &domain.Category{}, "is_active = ?", true),
		"products":          countRows(c, &domain.Product{}, ""),
		"products_available": countRows(c,
			&domain.Product{}, "is_available = ?", true),
		"events":          countRows(c, &domain.Event{}, ""),
		"events_upcoming": countRows(c, &domain.Event{}, "is_active = ? AND date >= ?", true, time.Now().Format("2006-01-02")),
		"home_sections":   countRows(c, &domain.HomeSection{}, ""),
		"messages":        countRows(c, &domain.ContactMessage{}, ""),
	}

	var prices []float64
	GetDB(c).Model(&domain.Product{}).Where("is_available = ?", true).Pluck("price", &prices)

	priceStats := map[string]float64{}
	if len(prices) > 0 {
		if v, err := stats.Mean(prices); err == nil {
			priceStats["mean"] = v
		}
		if v, err := stats.Median(prices); err == nil {
			priceStats["median"] = v
		}
		if v, err := stats.Min(prices); err == nil {
			priceStats["min"] = v
		}
		if v, err := stats.Max(prices); err == nil {
			priceStats["max"] = v
		}
	}

	return ok(c, map[string]interface{}{
		"counts": counts,
		"prices": priceStats,
	})
}

// dashboardMetrics returns the last hour of one system metric for the
// dashboard charts.
func dashboardMetrics(c echo.Context) error {
	name := c.Param("name")
	var metric string
	switch name {
	case "requests":
		metric = metrics.MetricHTTPRequests
	case "cpu":
		metric = metrics.MetricCPUPercent
	case "mem":
		metric = metrics.MetricMemPercent
	default:
		return fail(c, http.StatusBadRequest, "INVALID_METRIC", "Metrica necunoscuta")
	}
	end := time.Now().Unix()
	start := end - 3600
	points := metrics.Select(metric, start, end)
	if points == nil {
		points = []metrics.Point{}
	}
	return ok(c, points)
}
