package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fikhidmatik/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public auth endpoints onto rg and the
// authenticated ones onto protected.
func (h *Handler) RegisterRoutes(rg, protected *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/register/artisan", h.RegisterArtisan)
	rg.POST("/auth/login", h.Login)
	rg.POST("/auth/refresh", h.Refresh)

	protected.GET("/auth/me", h.Me)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailExists:
			response.Error(c, http.StatusBadRequest, response.CodeConflict, "Email already registered")
		case ErrPhoneExists:
			response.Error(c, http.StatusBadRequest, response.CodeConflict, "Phone number already registered")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) RegisterArtisan(c *gin.Context) {
	var req RegisterArtisanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	user, err := h.service.RegisterArtisan(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailExists:
			response.Error(c, http.StatusBadRequest, response.CodeConflict, "Email already registered")
		case ErrPhoneExists:
			response.Error(c, http.StatusBadRequest, response.CodeConflict, "Phone number already registered")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to register artisan")
		}
		return
	}

	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Incorrect email or password")
		case ErrAccountInactive:
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to log in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": result.User,
		"tokens": TokenPair{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			TokenType:    "bearer",
		},
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case ErrInvalidRefreshToken, ErrAccountInactive:
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid refresh token")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to refresh session")
		}
		return
	}

	response.Success(c, http.StatusOK, pair)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "User not found")
		return
	}

	response.Success(c, http.StatusOK, user)
}
