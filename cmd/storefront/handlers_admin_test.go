package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/catalog"
	ord "github.com/sahra-perfumes/storefront/internal/order"
	"github.com/sahra-perfumes/storefront/internal/report"
	"github.com/sahra-perfumes/storefront/internal/user"
)

type reportStub struct {
	dashboard *report.Dashboard
	orders    []ord.Order
	sales     []report.SalesRow

	lastStatus  string
	lastSearch  string
	lastGroupBy string
	lastStart   time.Time
	lastEnd     time.Time
}

func (s *reportStub) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	return s.dashboard, nil
}

func (s *reportStub) Orders(ctx context.Context, page, limit int, status, search string) ([]ord.Order, int, error) {
	s.lastStatus, s.lastSearch = status, search
	return s.orders, len(s.orders), nil
}

func (s *reportStub) Sales(ctx context.Context, start, end time.Time, groupBy string) ([]report.SalesRow, error) {
	s.lastStart, s.lastEnd, s.lastGroupBy = start, end, groupBy
	return s.sales, nil
}

func TestDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportStub{dashboard: &report.Dashboard{
		SalesStats: report.SalesStats{TotalOrders: 7, TotalRevenue: "1234.50"},
	}}
	r := gin.New()
	r.GET("/admin/dashboard", dashboardHandler(repo))

	w, body := doJSON(t, r, http.MethodGet, "/admin/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	d, _ := body["dashboard"].(map[string]any)
	stats, _ := d["salesStats"].(map[string]any)
	if stats["total_orders"] != float64(7) {
		t.Fatalf("dashboard = %v", d)
	}
}

func TestAdminOrders_Filters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportStub{orders: []ord.Order{{OrderNumber: "SAHRA-20260831-120000-AAAA1111"}}}
	r := gin.New()
	r.GET("/admin/orders", adminOrdersHandler(repo))

	w, body := doJSON(t, r, http.MethodGet, "/admin/orders?status=pending&search=amira", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	if repo.lastStatus != "pending" || repo.lastSearch != "amira" {
		t.Fatalf("filters not forwarded: %q %q", repo.lastStatus, repo.lastSearch)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/admin/orders?status=vanished", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status accepted: %d", w.Code)
	}
}

func TestSalesReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &reportStub{sales: []report.SalesRow{{Period: "2026-08", Orders: 3, Revenue: "450.00"}}}
	r := gin.New()
	r.GET("/admin/reports/sales", salesReportHandler(repo))

	w, body := doJSON(t, r, http.MethodGet,
		"/admin/reports/sales?startDate=2026-01-01&endDate=2026-08-31&groupBy=month", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	if repo.lastGroupBy != "month" {
		t.Fatalf("groupBy = %q", repo.lastGroupBy)
	}
	if !repo.lastEnd.After(repo.lastStart) {
		t.Fatalf("range not forwarded: %v..%v", repo.lastStart, repo.lastEnd)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/admin/reports/sales?startDate=nope&endDate=2026-08-31", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date accepted: %d", w.Code)
	}
}

func TestLowStockAndProductStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := newProdStub()
	products.put(catalog.Product{Name: "Oud Royal", Price: "149.90", Stock: 2, IsActive: true})
	products.put(catalog.Product{Name: "Citrus Noir", Price: "89.50", Stock: 40, IsActive: true})

	r := gin.New()
	r.GET("/admin/products/low-stock", lowStockHandler(products))
	r.GET("/admin/products/stats", productStatsHandler(products))

	w, body := doJSON(t, r, http.MethodGet, "/admin/products/low-stock", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	list, _ := body["products"].([]any)
	if len(list) != 1 {
		t.Fatalf("low stock = %v", body["products"])
	}

	w, body = doJSON(t, r, http.MethodGet, "/admin/products/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stats, _ := body["stats"].(map[string]any)
	if stats["total_products"] != float64(2) {
		t.Fatalf("stats = %v", stats)
	}
}

// The monolith wires every route into one engine; registering them must not
// conflict and the health endpoint must answer without a database.
func TestRouterWiring(t *testing.T) {
	gin.SetMode(gin.TestMode)
	products := newProdStub()
	orders := newOrdStub(products)
	a := app{
		products: products,
		orders:   orders,
		placer:   ord.NewService(products, orders),
		contacts: &contactStub{},
		users:    user.NewService(&userRepoStub{byEmail: map[string]*user.User{}}),
		reports:  &reportStub{dashboard: &report.Dashboard{}},
	}
	r := newRouter(a)

	w, body := doJSON(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("healthz body = %v", body)
	}

	// static sibling of :id must resolve
	w, _ = doJSON(t, r, http.MethodGet, "/api/products/categories/all", "")
	if w.Code != http.StatusOK {
		t.Fatalf("categories route = %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("metrics = %d", w2.Code)
	}
}

var _ report.Repository = (*reportStub)(nil)
