package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/catalog"
	ord "github.com/sahra-perfumes/storefront/internal/order"
)

// ordStub implements ord.Repository in memory, applying the conditional
// stock decrement against the shared product stub the way the SQL does.
type ordStub struct {
	products *prodStub
	mu       sync.Mutex
	orders   []*ord.Order
	items    map[string][]ord.Item
}

func newOrdStub(products *prodStub) *ordStub {
	return &ordStub{products: products, items: make(map[string][]ord.Item)}
}

func (s *ordStub) Create(ctx context.Context, o *ord.Order, items []ord.Item) error {
	s.products.mu.Lock()
	defer s.products.mu.Unlock()
	for _, it := range items {
		p := s.products.items[it.ProductID]
		if p == nil || !p.IsActive || p.Stock < it.Quantity {
			return &ord.InsufficientStockError{Product: it.ProductName}
		}
	}
	for _, it := range items {
		s.products.items[it.ProductID].Stock -= it.Quantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders = append(s.orders, &cp)
	s.items[o.ID] = append([]ord.Item(nil), items...)
	return nil
}

func (s *ordStub) GetByNumber(ctx context.Context, n string) (*ord.Order, []ord.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderNumber == n {
			return o, s.items[o.ID], nil
		}
	}
	return nil, nil, ord.ErrNotFound
}

func (s *ordStub) GetByID(ctx context.Context, id string) (*ord.Order, []ord.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, s.items[o.ID], nil
		}
	}
	return nil, nil, ord.ErrNotFound
}

func (s *ordStub) ListByUser(ctx context.Context, userID string, page, limit int) ([]ord.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ord.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (s *ordStub) UpdateStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return ord.ErrNotFound
}

func orderRouter(products *prodStub, orders *ordStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := ord.NewService(products, orders)
	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders/:orderNumber", getOrderHandler(orders))
	r.GET("/orders/user/:userId", listUserOrdersHandler(orders))
	r.PATCH("/admin/orders/:orderId/status", updateOrderStatusHandler(orders))
	return r
}

func orderBody(productID string, qty int) string {
	return fmt.Sprintf(`{
		"customer_name":"Amira Haddad",
		"customer_email":"amira@example.com",
		"customer_address":"Av. Libertad 1200",
		"customer_city":"Buenos Aires",
		"payment_method":"card",
		"items":[{"product_id":%q,"quantity":%d}]
	}`, productID, qty)
}

func TestCreateOrder_HappyPath(t *testing.T) {
	products := newProdStub()
	p := products.put(catalog.Product{Name: "Oud Royal", Price: "100.00", Stock: 5, IsActive: true})
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	w, body := doJSON(t, r, http.MethodPost, "/orders", orderBody(p.ID, 3))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	o, _ := body["order"].(map[string]any)
	if o == nil {
		t.Fatalf("order missing: %v", body)
	}
	if o["total_amount"] != "300.00" {
		t.Fatalf("total = %v, want 300.00", o["total_amount"])
	}
	num, _ := o["order_number"].(string)
	if num == "" {
		t.Fatal("order_number missing")
	}
	if got := products.items[p.ID].Stock; got != 2 {
		t.Fatalf("stock = %d, want 2", got)
	}

	// only 2 left now: the same request must be rejected without stock changes
	w, body = doJSON(t, r, http.MethodPost, "/orders", orderBody(p.ID, 3))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	if got := products.items[p.ID].Stock; got != 2 {
		t.Fatalf("failed order changed stock: %d", got)
	}
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	products := newProdStub()
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	w, body := doJSON(t, r, http.MethodPost, "/orders", orderBody("ghost-id", 1))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	if len(orders.orders) != 0 {
		t.Fatal("order written despite unknown product")
	}
}

func TestCreateOrder_InvalidPaymentMethod(t *testing.T) {
	products := newProdStub()
	p := products.put(catalog.Product{Name: "Oud Royal", Price: "100.00", Stock: 5, IsActive: true})
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	body := fmt.Sprintf(`{
		"customer_name":"Amira Haddad",
		"customer_email":"amira@example.com",
		"customer_address":"Av. Libertad 1200",
		"customer_city":"Buenos Aires",
		"payment_method":"bitcoin",
		"items":[{"product_id":%q,"quantity":1}]
	}`, p.ID)
	w, resp := doJSON(t, r, http.MethodPost, "/orders", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d body=%v", w.Code, resp)
	}
}

func TestCreateOrder_BadJSON(t *testing.T) {
	products := newProdStub()
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	w, _ := doJSON(t, r, http.MethodPost, "/orders", `{"items": [`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

// unreachableCatalog fails every read the way a dropped connection would.
type unreachableCatalog struct{}

func (unreachableCatalog) GetByID(ctx context.Context, id string) (*catalog.Product, error) {
	return nil, errors.New("connection refused")
}

func TestCreateOrder_StoreOutageIsInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orders := newOrdStub(newProdStub())
	svc := ord.NewService(unreachableCatalog{}, orders)
	r := gin.New()
	r.POST("/orders", createOrderHandler(svc))

	w, body := doJSON(t, r, http.MethodPost, "/orders", orderBody("p1", 1))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d body=%v, want 500 when the store is down", w.Code, body)
	}
	if body["success"] != false {
		t.Fatalf("body = %v", body)
	}
	if len(orders.orders) != 0 {
		t.Fatal("order written despite store outage")
	}
}

func TestGetOrder_ByNumber(t *testing.T) {
	products := newProdStub()
	p := products.put(catalog.Product{Name: "Oud Royal", Price: "15.00", Stock: 5, IsActive: true})
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	_, body := doJSON(t, r, http.MethodPost, "/orders", orderBody(p.ID, 2))
	created, _ := body["order"].(map[string]any)
	num, _ := created["order_number"].(string)

	w, body := doJSON(t, r, http.MethodGet, "/orders/"+num, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%v", w.Code, body)
	}
	o, _ := body["order"].(map[string]any)
	if o["total_amount"] != "30.00" {
		t.Fatalf("total = %v", o["total_amount"])
	}
	items, _ := o["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %v", o["items"])
	}

	w, _ = doJSON(t, r, http.MethodGet, "/orders/SAHRA-19700101-000000-DEADBEEF", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown number: status = %d", w.Code)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	products := newProdStub()
	p := products.put(catalog.Product{Name: "Oud Royal", Price: "15.00", Stock: 5, IsActive: true})
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	_, body := doJSON(t, r, http.MethodPost, "/orders", orderBody(p.ID, 1))
	created, _ := body["order"].(map[string]any)
	id, _ := created["id"].(string)

	w, _ := doJSON(t, r, http.MethodPatch, "/admin/orders/"+id+"/status", `{"status":"confirmed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if orders.orders[0].Status != "confirmed" {
		t.Fatalf("status not applied: %s", orders.orders[0].Status)
	}

	w, _ = doJSON(t, r, http.MethodPatch, "/admin/orders/"+id+"/status", `{"status":"teleported"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad status accepted: %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPatch, "/admin/orders/nope/status", `{"status":"shipped"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown order: status = %d", w.Code)
	}
}

func TestListUserOrders(t *testing.T) {
	products := newProdStub()
	p := products.put(catalog.Product{Name: "Oud Royal", Price: "15.00", Stock: 50, IsActive: true})
	orders := newOrdStub(products)
	r := orderRouter(products, orders)

	body := fmt.Sprintf(`{
		"user_id":"u1",
		"customer_name":"Amira Haddad",
		"customer_email":"amira@example.com",
		"customer_address":"Av. Libertad 1200",
		"customer_city":"Buenos Aires",
		"payment_method":"cash",
		"items":[{"product_id":%q,"quantity":1}]
	}`, p.ID)
	for i := 0; i < 2; i++ {
		if w, resp := doJSON(t, r, http.MethodPost, "/orders", body); w.Code != http.StatusCreated {
			t.Fatalf("seed order failed: %d %v", w.Code, resp)
		}
	}

	w, resp := doJSON(t, r, http.MethodGet, "/orders/user/u1?page=1&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	list, _ := resp["orders"].([]any)
	if len(list) != 2 {
		t.Fatalf("orders = %v", resp["orders"])
	}
	pag, _ := resp["pagination"].(map[string]any)
	if pag["total"] != float64(2) {
		t.Fatalf("pagination = %v", pag)
	}

	w, resp = doJSON(t, r, http.MethodGet, "/orders/user/ghost", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if list, _ := resp["orders"].([]any); len(list) != 0 {
		t.Fatalf("expected empty list: %v", resp["orders"])
	}
}
