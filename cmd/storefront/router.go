package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sahra-perfumes/storefront/internal/cache"
	"github.com/sahra-perfumes/storefront/internal/catalog"
	"github.com/sahra-perfumes/storefront/internal/contact"
	"github.com/sahra-perfumes/storefront/internal/httpx"
	"github.com/sahra-perfumes/storefront/internal/order"
	"github.com/sahra-perfumes/storefront/internal/report"
	"github.com/sahra-perfumes/storefront/internal/user"
)

type app struct {
	db       *pgxpool.Pool
	products catalog.Repository
	orders   order.Repository
	placer   *order.Service
	contacts contact.Repository
	users    *user.Service
	reports  report.Repository
	cache    cache.Cache // nil when Redis is not configured
}

func newRouter(a app) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.Metrics())

	r.GET("/healthz", healthHandler(a.db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	api.GET("/products", listProductsHandler(a.products))
	api.GET("/products/:id", getProductHandler(a.products))
	api.GET("/products/categories/all", listCategoriesHandler(a.products, a.cache))
	api.POST("/products", createProductHandler(a.products, a.cache))
	api.PUT("/products/:id", updateProductHandler(a.products))
	api.DELETE("/products/:id", deleteProductHandler(a.products))

	api.POST("/orders", createOrderHandler(a.placer))
	api.GET("/orders/:orderNumber", getOrderHandler(a.orders))
	api.GET("/orders/user/:userId", listUserOrdersHandler(a.orders))

	api.POST("/contact", createContactHandler(a.contacts))
	api.GET("/contact", listContactsHandler(a.contacts))
	api.PATCH("/contact/:id/read", markContactReadHandler(a.contacts))
	api.GET("/contact/stats", contactStatsHandler(a.contacts))

	api.POST("/auth/register", registerHandler(a.users))
	api.POST("/auth/login", loginHandler(a.users))

	admin := api.Group("/admin")
	admin.GET("/dashboard", dashboardHandler(a.reports))
	admin.GET("/orders", adminOrdersHandler(a.reports))
	admin.GET("/orders/:orderId", adminOrderDetailHandler(a.orders))
	admin.PATCH("/orders/:orderId/status", updateOrderStatusHandler(a.orders))
	admin.GET("/reports/sales", salesReportHandler(a.reports))
	admin.GET("/products/low-stock", lowStockHandler(a.products))
	admin.GET("/products/stats", productStatsHandler(a.products))

	return r
}

func healthHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// fail writes the {success:false, message} envelope every endpoint shares.
func fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "message": msg})
}

func internalError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "internal server error")
}
