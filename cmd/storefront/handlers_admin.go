package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/catalog"
	"github.com/sahra-perfumes/storefront/internal/order"
	"github.com/sahra-perfumes/storefront/internal/report"
)

// dashboardHandler godoc
// @Summary  Admin dashboard: 30-day sales stats, daily sales, top products, low stock
// @Tags     admin
// @Produce  json
// @Success  200 {object} map[string]any
// @Router   /admin/dashboard [get]
func dashboardHandler(repo report.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := repo.Dashboard(c.Request.Context())
		if err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "dashboard": d})
	}
}

func adminOrdersHandler(repo report.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := atoiDefault(c.Query("page"), 1)
		limit := atoiDefault(c.Query("limit"), 20)
		status := c.Query("status")
		if status != "" && !order.ValidStatus(status) {
			fail(c, http.StatusBadRequest, "unknown status filter")
			return
		}

		orders, total, err := repo.Orders(c.Request.Context(), page, limit, status, c.Query("search"))
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

func adminOrderDetailHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByID(c.Request.Context(), c.Param("orderId"))
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

// salesReportHandler groups revenue by day, month or year over a date range.
func salesReportHandler(repo report.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := time.Parse("2006-01-02", c.Query("startDate"))
		if err != nil {
			fail(c, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", c.Query("endDate"))
		if err != nil {
			fail(c, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		// make the end date inclusive
		end = end.Add(24*time.Hour - time.Nanosecond)

		rows, err := repo.Sales(c.Request.Context(), start, end, c.DefaultQuery("groupBy", "day"))
		if err != nil {
			internalError(c)
			return
		}
		if rows == nil {
			rows = []report.SalesRow{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "report": rows})
	}
}

func lowStockHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := atoiDefault(c.Query("limit"), 20)
		products, err := repo.LowStock(c.Request.Context(), 10, limit)
		if err != nil {
			internalError(c)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

func productStatsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, byCategory, err := repo.Stats(c.Request.Context())
		if err != nil {
			internalError(c)
			return
		}
		if byCategory == nil {
			byCategory = []catalog.CategoryCount{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats, "byCategory": byCategory})
	}
}
