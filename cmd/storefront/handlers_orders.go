package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/httpx"
	"github.com/sahra-perfumes/storefront/internal/order"
)

// createOrderHandler godoc
// @Summary  Place an order
// @Description Validates the cart against the catalog, snapshots prices and writes the order atomically.
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    order body order.PlaceRequest true "order"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /orders [post]
func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}

		o, items, err := svc.Place(c.Request.Context(), &req)
		if err != nil {
			var ve *order.ValidationError
			var nf *order.ProductNotFoundError
			var is *order.InsufficientStockError
			switch {
			case errors.As(err, &ve):
				httpx.OrdersRejected.WithLabelValues("invalid_input").Inc()
				fail(c, http.StatusBadRequest, ve.Error())
			case errors.As(err, &nf):
				httpx.OrdersRejected.WithLabelValues("not_found").Inc()
				fail(c, http.StatusNotFound, nf.Error())
			case errors.As(err, &is):
				httpx.OrdersRejected.WithLabelValues("insufficient_stock").Inc()
				fail(c, http.StatusConflict, is.Error())
			default:
				httpx.OrdersRejected.WithLabelValues("internal").Inc()
				internalError(c)
			}
			return
		}

		httpx.OrdersPlaced.Inc()
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "order created",
			"order": gin.H{
				"id":           o.ID,
				"order_number": o.OrderNumber,
				"total_amount": o.TotalAmount,
				"status":       o.Status,
				"items":        items,
			},
		})
	}
}

// getOrderHandler godoc
// @Summary  Order lookup by number
// @Tags     orders
// @Produce  json
// @Param    orderNumber path string true "order number"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /orders/{orderNumber} [get]
func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			if errors.Is(err, order.ErrNotFound) {
				fail(c, http.StatusNotFound, "order not found")
				return
			}
			internalError(c)
			return
		}
		if items == nil {
			items = []order.Item{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": orderWithItems(o, items)})
	}
}

func orderWithItems(o *order.Order, items []order.Item) gin.H {
	return gin.H{
		"id":                   o.ID,
		"order_number":         o.OrderNumber,
		"user_id":              o.UserID,
		"customer_name":        o.CustomerName,
		"customer_email":       o.CustomerEmail,
		"customer_phone":       o.CustomerPhone,
		"customer_address":     o.CustomerAddress,
		"customer_city":        o.CustomerCity,
		"customer_postal_code": o.CustomerPostalCode,
		"notes":                o.Notes,
		"total_amount":         o.TotalAmount,
		"status":               o.Status,
		"payment_method":       o.PaymentMethod,
		"created_at":           o.CreatedAt,
		"updated_at":           o.UpdatedAt,
		"first_name":           o.UserFirstName,
		"last_name":            o.UserLastName,
		"user_email":           o.UserEmail,
		"items":                items,
	}
}

// listUserOrdersHandler godoc
// @Summary  Paginated order history for a user, newest first
// @Tags     orders
// @Produce  json
// @Param    userId path  string true  "user id"
// @Param    page   query int    false "page"
// @Param    limit  query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /orders/user/{userId} [get]
func listUserOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := atoiDefault(c.Query("page"), 1)
		limit := atoiDefault(c.Query("limit"), 10)
		orders, total, err := repo.ListByUser(c.Request.Context(), c.Param("userId"), page, limit)
		if err != nil {
			internalError(c)
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"orders":     orders,
			"pagination": pagination(page, limit, total),
		})
	}
}

// updateOrderStatusHandler godoc
// @Summary  Admin status transition
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    orderId path string true "order id"
// @Success  200 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /admin/orders/{orderId}/status [patch]
func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if !order.ValidStatus(req.Status) {
			fail(c, http.StatusBadRequest, "status must be one of pending, confirmed, shipped, delivered, cancelled")
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				fail(c, http.StatusNotFound, "order not found")
				return
			}
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order status updated"})
	}
}
