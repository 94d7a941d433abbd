package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fikhidmatik/internal/pkg/response"
	"fikhidmatik/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the listing and stats endpoints onto the public group
// and create/respond onto the authenticated one.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/reviews/artisan/:id", h.ListByArtisan)
	public.GET("/reviews/stats/:id", h.Stats)

	protected.POST("/reviews", h.Create)
	protected.POST("/reviews/:id/respond", h.Respond)
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

	rv, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) ListByArtisan(c *gin.Context) {
	id, ok := h.pathID(c, "Invalid artisan ID")
	if !ok {
		return
	}

	skip, _ := strconv.Atoi(c.Query("skip"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	rvs, err := h.service.ListByArtisan(c.Request.Context(), id, skip, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rvs)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := h.pathID(c, "Invalid review ID")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed", errs)
		return
	}

	rv, err := h.service.Respond(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Stats(c *gin.Context) {
	id, ok := h.pathID(c, "Invalid artisan ID")
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) pathID(c *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, msg)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Review not found")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
	case ErrArtisanNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan not found")
	case ErrProfileNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan profile not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "Not allowed to perform this action")
	case ErrBookingNotComplete:
		response.Error(c, http.StatusBadRequest, response.CodeConflict, "Only completed bookings can be reviewed")
	case ErrAlreadyReviewed:
		response.Error(c, http.StatusBadRequest, response.CodeConflict, "Booking already reviewed")
	case ErrAlreadyResponded:
		response.Error(c, http.StatusBadRequest, response.CodeConflict, "Review already has a response")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Review operation failed")
	}
}
