package artisan

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fikhidmatik/internal/pkg/response"
	"fikhidmatik/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires public listing/detail onto rg and the artisan-owned
// profile endpoints onto me (which already carries auth + artisan role).
func (h *Handler) RegisterRoutes(rg, me *gin.RouterGroup) {
	rg.GET("/artisans", h.List)
	rg.GET("/artisans/:id", h.Get)

	me.PUT("/artisans/me", h.UpdateProfile)
	me.POST("/artisans/me/services", h.AddService)
	me.DELETE("/artisans/me/services/:id", h.RemoveService)
	me.POST("/artisans/me/portfolio", h.AddPortfolio)
	me.DELETE("/artisans/me/portfolio/:id", h.RemovePortfolio)
}

func (h *Handler) List(c *gin.Context) {
	f := repository.ArtisanFilter{
		City:     c.Query("city"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	if v := c.Query("min_rating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid min_rating")
			return
		}
		f.MinRating = &r
	}
	if v := c.Query("is_available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid is_available")
			return
		}
		f.IsAvailable = &b
	}
	f.Skip, _ = strconv.Atoi(c.Query("skip"))
	f.Limit, _ = strconv.Atoi(c.Query("limit"))

	items, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, response.CodeValidation, "min_rating must be between 0 and 5")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to list artisans")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid artisan ID")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to fetch artisan")
		return
	}

	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	a, err := h.service.UpdateMyProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, a)
}

func (h *Handler) AddService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	sv, err := h.service.AddService(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sv)
}

func (h *Handler) RemoveService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid service ID")
		return
	}

	if err := h.service.RemoveService(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Service not found")
			return
		}
		h.writeProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *Handler) AddPortfolio(c *gin.Context) {
	var req CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	p, err := h.service.AddPortfolio(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeProfileError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) RemovePortfolio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid portfolio ID")
		return
	}

	if err := h.service.RemovePortfolio(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Portfolio item not found")
			return
		}
		h.writeProfileError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}

func (h *Handler) writeProfileError(c *gin.Context, err error) {
	switch err {
	case ErrProfileNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan profile not found")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Artisan not found")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Artisan operation failed")
	}
}
