package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fikhidmatik/internal/pkg/response"
)

// Category is a fixed service category with localized labels.
type Category struct {
	ID     string `json:"id"`
	NameFR string `json:"name_fr"`
	NameAR string `json:"name_ar"`
	Icon   string `json:"icon"`
}

// Fixed reference data; not stored, not user-editable.
var Categories = []Category{
	{ID: "plumbing", NameFR: "Plomberie", NameAR: "سباكة", Icon: "🔧"},
	{ID: "electrical", NameFR: "Électricité", NameAR: "كهرباء", Icon: "⚡"},
	{ID: "carpentry", NameFR: "Menuiserie", NameAR: "نجارة", Icon: "🪚"},
	{ID: "painting", NameFR: "Peinture", NameAR: "دهان", Icon: "🎨"},
	{ID: "hvac", NameFR: "Climatisation", NameAR: "تكييف", Icon: "❄️"},
	{ID: "cleaning", NameFR: "Nettoyage", NameAR: "تنظيف", Icon: "🧹"},
	{ID: "gardening", NameFR: "Jardinage", NameAR: "بستنة", Icon: "🌱"},
	{ID: "masonry", NameFR: "Maçonnerie", NameAR: "بناء", Icon: "🧱"},
	{ID: "locksmith", NameFR: "Serrurerie", NameAR: "حدادة", Icon: "🔐"},
	{ID: "appliance", NameFR: "Électroménager", NameAR: "إصلاح الأجهزة", Icon: "🔌"},
	{ID: "moving", NameFR: "Déménagement", NameAR: "نقل", Icon: "📦"},
	{ID: "other", NameFR: "Autre", NameAR: "أخرى", Icon: "🔨"},
}

var Cities = []string{
	"Casablanca", "Rabat", "Fès", "Marrakech", "Tanger",
	"Meknès", "Agadir", "Oujda", "Kénitra", "Tétouan",
	"Salé", "Temara", "Safi", "El Jadida", "Mohammedia",
	"Béni Mellal", "Nador", "Taza", "Settat", "Khouribga",
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.GetCategories)
	rg.GET("/cities", h.GetCities)
}

func (h *Handler) GetCategories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": Categories})
}

func (h *Handler) GetCities(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"cities": Cities})
}
