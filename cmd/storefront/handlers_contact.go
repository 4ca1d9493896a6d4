package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/contact"
)

// createContactHandler godoc
// @Summary  Contact message intake
// @Tags     contact
// @Accept   json
// @Produce  json
// @Param    message body contact.CreateRequest true "message"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Router   /contact [post]
func createContactHandler(repo contact.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req contact.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		m, err := contact.Validate(&req)
		if err != nil {
			var ve *contact.ValidationError
			if errors.As(err, &ve) {
				fail(c, http.StatusBadRequest, ve.Error())
				return
			}
			internalError(c)
			return
		}
		if err := repo.Create(c.Request.Context(), m); err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"success":   true,
			"message":   "message sent, we will get back to you soon",
			"contactId": m.ID,
		})
	}
}

// listContactsHandler supports an optional isRead filter for the admin inbox.
func listContactsHandler(repo contact.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := atoiDefault(c.Query("page"), 1)
		limit := atoiDefault(c.Query("limit"), 20)

		var isRead *bool
		if v := c.Query("isRead"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				fail(c, http.StatusBadRequest, "isRead must be true or false")
				return
			}
			isRead = &b
		}

		msgs, total, err := repo.List(c.Request.Context(), page, limit, isRead)
		if err != nil {
			internalError(c)
			return
		}
		if msgs == nil {
			msgs = []contact.Message{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"contacts":   msgs,
			"pagination": pagination(page, limit, total),
		})
	}
}

func markContactReadHandler(repo contact.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, contact.ErrNotFound) {
				fail(c, http.StatusNotFound, "message not found")
				return
			}
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "message marked as read"})
	}
}

func contactStatsHandler(repo contact.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := repo.Stats(c.Request.Context())
		if err != nil {
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "stats": s})
	}
}
