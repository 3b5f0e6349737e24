package users

import (
	"errors"
	"net/http"

	"poi-platform/internal/auth"
	"poi-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups account HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call the service, return JSON.
type Handlers struct {
	Svc *Service
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (h Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Username, email and password are required"})
		case errors.Is(err, ErrPasswordTooShort):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 8 characters"})
		case errors.Is(err, ErrAlreadyExists):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "User already exists"})
		default:
			logger.FromGin(c).Error("register failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": u})
}

func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON payload"})
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Identifier and password are required"})
		case errors.Is(err, ErrInvalidCredentials):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, ErrTooManyAttempts):
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many login attempts"})
		default:
			logger.FromGin(c).Error("login failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "token": token, "user": u})
}

// Me returns the account behind the presented bearer token.
func (h Handlers) Me(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return
	}

	u, err := h.Svc.GetByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logger.FromGin(c).Error("me lookup failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// AdminList returns every account. Admin routes only.
func (h Handlers) AdminList(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("user list failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}
