package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentalapp/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the browse endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties", h.ListProperties)
	rg.GET("/properties/featured", h.FeaturedProperties)
	rg.GET("/properties/:id", h.GetProperty)
}

// RegisterHostRoutes exposes listing management; callers must have the
// host role enforced by middleware.
func (h *Handler) RegisterHostRoutes(rg *gin.RouterGroup) {
	rg.GET("/host/properties", h.MyListings)
	rg.POST("/host/properties", h.CreateProperty)
	rg.PUT("/host/properties/:id", h.UpdateProperty)
	rg.DELETE("/host/properties/:id", h.DeleteProperty)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property data")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your listing")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) ListProperties(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)
	guests, _ := strconv.Atoi(c.DefaultQuery("guests", "0"))

	f := SearchFilter{
		City:     c.Query("city"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Guests:   guests,
		Limit:    limit,
		Offset:   offset,
	}

	properties, total, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	page := offset/limit + 1
	response.Paginated(c, http.StatusOK, gin.H{"cards": h.service.Cards(properties)}, page, limit, total)
}

func (h *Handler) FeaturedProperties(c *gin.Context) {
	properties, _, err := h.service.Search(c.Request.Context(), SearchFilter{Limit: 100})
	if err != nil {
		h.writeError(c, err)
		return
	}

	featured := h.service.Featured(properties)
	response.Success(c, http.StatusOK, gin.H{"properties": featured})
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) MyListings(c *gin.Context) {
	hostID := c.GetInt64("user_id")
	properties, err := h.service.MyListings(c.Request.Context(), hostID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"properties": properties})
}

func (h *Handler) CreateProperty(c *gin.Context) {
	hostID := c.GetInt64("user_id")

	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.CreateProperty(c.Request.Context(), hostID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"property": p})
}

func (h *Handler) UpdateProperty(c *gin.Context) {
	hostID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.UpdateProperty(c.Request.Context(), hostID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"property": p})
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	hostID := c.GetInt64("user_id")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	if err := h.service.DeleteProperty(c.Request.Context(), hostID, id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
