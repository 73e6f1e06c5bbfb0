package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"oncodx/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de registro y login.
type AuthHandler struct {
	logger     *zap.Logger
	doctorServ *service.DoctorService
	jwtServ    *service.JWTService
}

func NewAuthHandler(logger *zap.Logger, doctorServ *service.DoctorService, jwtServ *service.JWTService) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		doctorServ: doctorServ,
		jwtServ:    jwtServ,
	}
}

// Register maneja POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		FullName      string `json:"full_name"`
		Email         string `json:"email" binding:"required,email"`
		LicenseNumber string `json:"license_number"`
		Password      string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	_, err := h.doctorServ.Register(c.Request.Context(), service.RegisterInput{
		FullName:      req.FullName,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrPasswordRequired):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		default:
			h.logger.Error("register failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not register"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful"})
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	doctor, err := h.doctorServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"message": "too many login attempts"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not login"})
		}
		return
	}

	pair, err := h.jwtServ.GeneratePair(doctor)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not issue tokens"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh maneja POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "refresh_token required"})
		return
	}
	pair, err := h.jwtServ.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout maneja POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "refresh_token required"})
		return
	}
	if err := h.jwtServ.RevokeRefresh(req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is invalid or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me maneja GET /doctor/me.
func (h *AuthHandler) Me(c *gin.Context) {
	doctor, ok := GetAuthDoctor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"full_name":      doctor.FullName,
		"email":          doctor.Email,
		"license_number": doctor.LicenseNumber,
	})
}
