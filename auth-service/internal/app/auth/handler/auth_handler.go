package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"wanderlog/auth-service/internal/app/auth/entity"
	"wanderlog/auth-service/internal/app/auth/service"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetUsers(ctx context.Context) ([]entity.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type AuthHandler struct {
	authService AuthServiceInterface
	validator   *validator.Validate
}

func NewAuthHandler(authService AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	respondSuccess(c, http.StatusCreated, "User registered", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, formatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	respondSuccess(c, http.StatusOK, "Logged in", resp)
}

// GetMe отдает профиль текущего пользователя из токена
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	uid, err := uuid.Parse(userID.(string))
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	respondSuccess(c, http.StatusOK, "User retrieved", user)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	respondSuccess(c, http.StatusOK, "User retrieved", user)
}

func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondSuccess(c, http.StatusOK, "Users retrieved", users)
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	respondSuccess(c, http.StatusOK, "User deleted", nil)
}
