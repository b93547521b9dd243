package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/enlivotechnologies/leads-tracker/internal/dto"
	"github.com/enlivotechnologies/leads-tracker/internal/service"
	"github.com/enlivotechnologies/leads-tracker/pkg/jwt"
	"github.com/enlivotechnologies/leads-tracker/pkg/response"
)

// AuthHandler serves the auth endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register creates a login account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	account, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, 10006, "email already registered")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, account)
}

// Login authenticates and returns a token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 10002, "invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 10003, "account is disabled")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, tokens)
}

// RefreshToken exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	tokens, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrTokenRevoked):
			response.Unauthorized(c, 10002, "invalid or expired refresh token")
		case errors.Is(err, service.ErrAccountDisabled):
			response.Forbidden(c, 10003, "account is disabled")
		case errors.Is(err, service.ErrEmployeeNotFound):
			response.NotFound(c, 20001, "employee not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, tokens)
}

// Logout revokes the presented access token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_jti")
	exp, _ := c.Get("token_exp")
	expiresAt, ok := exp.(time.Time)
	if jti == "" || !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentEmployee returns the caller's employee record.
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentEmployee(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	employee, err := h.authSvc.CurrentEmployee(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			response.NotFound(c, 20001, "employee not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, employee)
}
