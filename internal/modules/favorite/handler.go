package favorite

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentalapp/internal/domain"
	"rentalapp/internal/pkg/response"
)

// Repository is the wishlist persistence surface.
type Repository interface {
	Add(ctx context.Context, userID, propertyID int64) error
	Remove(ctx context.Context, userID, propertyID int64) error
	List(ctx context.Context, userID int64, limit, offset int) ([]domain.Property, int64, error)
	Exists(ctx context.Context, userID, propertyID int64) (bool, error)
}

// Handler serves the wishlist directly off the repository; there is no
// business logic beyond membership.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", h.List)
		wishlist.POST("/:propertyId", h.Add)
		wishlist.DELETE("/:propertyId", h.Remove)
		wishlist.GET("/:propertyId/check", h.Check)
	}
}

func propertyIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("propertyId"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	properties, total, err := h.repo.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load wishlist")
		return
	}

	page := offset/limit + 1
	response.Paginated(c, http.StatusOK, gin.H{"properties": properties}, page, limit, total)
}

func (h *Handler) Add(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.Add(c.Request.Context(), c.GetInt64("user_id"), propertyID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add to wishlist")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"added": true})
}

func (h *Handler) Remove(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	if err := h.repo.Remove(c.Request.Context(), c.GetInt64("user_id"), propertyID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to remove from wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *Handler) Check(c *gin.Context) {
	propertyID, ok := propertyIDParam(c)
	if !ok {
		return
	}

	exists, err := h.repo.Exists(c.Request.Context(), c.GetInt64("user_id"), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check wishlist")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorite": exists})
}
