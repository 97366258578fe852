package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/QuentinDoniczka/SeriousGameBack/internal/application"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/interface/middleware"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/response"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type descriptionRequest struct {
	Description string `json:"description" binding:"max=255"`
}

// Login authenticates and returns the signed token with its expiration.
// Authentication failures carry no hint of which factor was wrong.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userapp.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "Invalid login attempt", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("login failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful")
}

// Register creates an account. Field and policy violations come back as a
// list of error strings; no token is issued on success.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if !res.Success {
		response.Error[any](c, http.StatusBadRequest, "registration failed", res.Errors)
		return
	}
	response.Success(c, http.StatusOK, res, "registration successful")
}

// GetAllUsers lists every registered user's public profile.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Svc.GetAllUsers(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("list users failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, users, "users")
}

// UpdateDescription updates the caller's own description. The target
// identity comes from the verified token, never from the body.
func (h *UserHandler) UpdateDescription(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	email := c.GetString(middleware.CtxUserEmailKey)
	if email == "" {
		response.Error[any](c, http.StatusUnauthorized, "no email found in token", nil)
		return
	}

	ok, err := h.Svc.UpdateDescription(c.Request.Context(), email, req.Description)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("update description failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "Failed to update description", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "description updated")
}
