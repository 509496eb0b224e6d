package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"quotewizard/internal/pkg/response"
	"quotewizard/internal/pkg/validator"
)

type AuthHandler struct {
	service *Service
}

func NewAuthHandler(service *Service) *AuthHandler {
	return &AuthHandler{service: service}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary Admin Login
// @Description Authenticate as admin and get JWT token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response{data=LoginResult}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("admin_login error=%q", err.Error())
		}
		response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid username or password")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Logout godoc
// @Summary Admin Logout
// @Tags Admin Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.service.Logout(c.Request.Context(), session.ID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not end session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetMe godoc
// @Summary Get current admin
// @Description Get current authenticated admin profile
// @Tags Admin Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	session, ok := CurrentSession(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	admin, err := h.service.GetAdminByID(c.Request.Context(), session.AdminID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Admin not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"admin":      admin,
		"expires_at": session.ExpiresAt,
	})
}
