package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahra-perfumes/storefront/internal/user"
)

// registerHandler godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    account body user.RegisterRequest true "account"
// @Success  201 {object} map[string]any
// @Failure  400 {object} map[string]any
// @Failure  409 {object} map[string]any
// @Router   /auth/register [post]
func registerHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := svc.Register(c.Request.Context(), &req)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrInvalidInput):
				fail(c, http.StatusBadRequest, err.Error())
			case errors.Is(err, user.ErrAlreadyExist):
				fail(c, http.StatusConflict, "an account with that email already exists")
			default:
				internalError(c)
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
	}
}

// loginHandler verifies credentials and returns the identity. Session/token
// issuance is handled outside this service.
func loginHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := svc.Authenticate(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				fail(c, http.StatusUnauthorized, "invalid email or password")
				return
			}
			internalError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
	}
}
