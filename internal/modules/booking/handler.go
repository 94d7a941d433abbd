package booking

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fikhidmatik/internal/domain"
	"fikhidmatik/internal/pkg/response"
	"fikhidmatik/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires every booking endpoint onto the authenticated group.
// Role checks happen in the service through profile and ownership lookups.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings/my-bookings", h.MyBookings)
	rg.GET("/bookings/artisan-bookings", h.ArtisanBookings)
	rg.GET("/bookings/:id", h.Get)
	rg.PUT("/bookings/:id", h.Update)
	rg.POST("/bookings/:id/accept", h.Accept)
	rg.POST("/bookings/:id/reject", h.Reject)
	rg.POST("/bookings/:id/start", h.Start)
	rg.POST("/bookings/:id/complete", h.Complete)
	rg.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) MyBookings(c *gin.Context) {
	bs, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bs)
}

func (h *Handler) ArtisanBookings(c *gin.Context) {
	bs, err := h.service.ListForArtisan(c.Request.Context(), c.GetInt64("user_id"), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bs)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

func (h *Handler) Reject(c *gin.Context) {
	h.transition(c, h.service.Reject)
}

func (h *Handler) Start(c *gin.Context) {
	h.transition(c, h.service.Start)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	// Body is optional; an empty one means no final price.
	var req CompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
			return
		}
		if errs := validator.Validate(req); errs != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
			return
		}
	}

	b, err := h.service.Complete(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, userID, bookingID int64) (*domain.Booking, error)) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := fn(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
	case ErrArtisanNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan not found")
	case ErrProfileNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan profile not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not allowed to access this booking")
	case ErrArtisanUnavailable:
		response.Error(c, http.StatusBadRequest, response.CodeConflict, "Artisan is not available")
	case ErrInvalidTransition:
		response.Error(c, http.StatusBadRequest, response.CodeConflict, "Booking is not in a state that allows this action")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Booking operation failed")
	}
}
