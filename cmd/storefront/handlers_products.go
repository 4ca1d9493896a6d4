package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sahra-perfumes/storefront/internal/cache"
	"github.com/sahra-perfumes/storefront/internal/catalog"
)

const categoriesCacheTTL = 5 * time.Minute

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pagination(page, limit, total int) gin.H {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return gin.H{"page": page, "limit": limit, "total": total, "pages": pages}
}

// listProductsHandler godoc
// @Summary  Filtered, paginated catalog listing
// @Tags     products
// @Produce  json
// @Param    category  query string false "category id"
// @Param    gender    query string false "female|male|unisex"
// @Param    type      query string false "original|inspired"
// @Param    minPrice  query string false "minimum price"
// @Param    maxPrice  query string false "maximum price"
// @Param    search    query string false "name/description search"
// @Param    sort      query string false "name|price|created_at"
// @Param    order     query string false "ASC|DESC"
// @Param    page      query int    false "page"
// @Param    limit     query int    false "page size"
// @Success  200 {object} map[string]any
// @Router   /products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := catalog.Query{
			Category: c.Query("category"),
			Gender:   c.Query("gender"),
			Type:     c.Query("type"),
			MinPrice: c.Query("minPrice"),
			MaxPrice: c.Query("maxPrice"),
			Search:   c.Query("search"),
			Sort:     c.DefaultQuery("sort", "name"),
			Order:    c.DefaultQuery("order", "ASC"),
			Page:     atoiDefault(c.Query("page"), 1),
			Limit:    atoiDefault(c.Query("limit"), 12),
		}
		products, total, err := repo.List(c.Request.Context(), q)
		if err != nil {
			internalError(c)
			return
		}
		if products == nil {
			products = []catalog.Product{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"products":   products,
			"pagination": pagination(q.Page, q.Limit, total),
		})
	}
}

// getProductHandler godoc
// @Summary  Single active product
// @Tags     products
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /products/{id} [get]
func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				fail(c, http.StatusNotFound, "product not found")
				return
			}
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
	}
}

// listCategoriesHandler serves the category list, through Redis when
// configured. Cache failures fall back to the database.
func listCategoriesHandler(repo catalog.Repository, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if ch != nil {
			if raw, err := ch.Get(ctx, ch.Key("categories")); err == nil && raw != "" {
				var cats []catalog.Category
				if json.Unmarshal([]byte(raw), &cats) == nil {
					c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
					return
				}
			}
		}

		cats, err := repo.Categories(ctx)
		if err != nil {
			internalError(c)
			return
		}
		if cats == nil {
			cats = []catalog.Category{}
		}
		if ch != nil {
			if raw, err := json.Marshal(cats); err == nil {
				if err := ch.Set(ctx, ch.Key("categories"), string(raw), categoriesCacheTTL); err != nil {
					log.Printf("[cache] set categories: %v", err)
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
	}
}

// createProductHandler godoc
// @Summary  Create product (admin)
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    product body catalog.CreateProductRequest true "product"
// @Success  201 {object} map[string]any
// @Router   /products [post]
func createProductHandler(repo catalog.Repository, ch cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Name == "" || req.Price == "" {
			fail(c, http.StatusBadRequest, "name and price are required")
			return
		}
		if req.Stock < 0 {
			fail(c, http.StatusBadRequest, "stock must be non-negative")
			return
		}
		p := &catalog.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			CategoryID:  req.CategoryID,
			Gender:      defaultStr(req.Gender, "unisex"),
			Type:        defaultStr(req.Type, "original"),
			Image1:      req.Image1,
			Image2:      req.Image2,
			Image3:      req.Image3,
			Image4:      req.Image4,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			internalError(c)
			return
		}
		if ch != nil {
			_ = ch.Delete(c.Request.Context(), ch.Key("categories"))
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "productId": p.ID})
	}
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// updateProductHandler applies a partial update; empty fields keep their
// current values.
func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		updateStock := req.Stock != nil
		stock := 0
		if updateStock {
			if *req.Stock < 0 {
				fail(c, http.StatusBadRequest, "stock must be non-negative")
				return
			}
			stock = *req.Stock
		}
		p := &catalog.Product{
			ID:          c.Param("id"),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       stock,
			CategoryID:  req.CategoryID,
			Gender:      req.Gender,
			Type:        req.Type,
			Image1:      req.Image1,
			Image2:      req.Image2,
			Image3:      req.Image3,
			Image4:      req.Image4,
		}
		ok, err := repo.Update(c.Request.Context(), p, req.Price != "", updateStock)
		if err != nil {
			internalError(c)
			return
		}
		if !ok {
			fail(c, http.StatusNotFound, "product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product updated"})
	}
}

// deleteProductHandler soft-deletes: the row stays for historical orders.
func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Deactivate(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c)
			return
		}
		if !ok {
			fail(c, http.StatusNotFound, "product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
	}
}
