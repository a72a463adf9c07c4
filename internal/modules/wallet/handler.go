package wallet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalapp/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wallet", h.GetBalance)
	rg.POST("/wallet/topup", h.TopUp)
}

type topUpRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (h *Handler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read balance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}

func (h *Handler) TopUp(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	balance, err := h.service.TopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Amount must be positive")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to top up")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}
