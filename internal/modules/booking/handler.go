package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentalapp/internal/domain"
	"rentalapp/internal/modules/wallet"
	"rentalapp/internal/pkg/response"
)

type Handler struct {
	service   *Service
	drafts    DraftStore
	submitter Submitter
}

func NewHandler(service *Service, drafts DraftStore, submitter Submitter) *Handler {
	return &Handler{service: service, drafts: drafts, submitter: submitter}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.GetMyBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
	rg.POST("/bookings/quote", h.Quote)

	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.StartDraft)
		drafts.GET("/:id", h.GetDraft)
		drafts.PUT("/:id/dates", h.SetDraftDates)
		drafts.POST("/:id/guests/increment", h.IncrementGuest)
		drafts.POST("/:id/guests/decrement", h.DecrementGuest)
		drafts.PUT("/:id/note", h.SetDraftNote)
		drafts.PUT("/:id/payment", h.SetDraftPayment)
		drafts.POST("/:id/continue", h.ContinueDraft)
		drafts.POST("/:id/back", h.BackDraft)
		drafts.POST("/:id/submit", h.SubmitDraft)
	}
}

func currentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking data is incomplete", ve.Fields)
	case errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "Check-out must be after check-in")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking data")
	case errors.Is(err, ErrMaxGuests):
		response.Error(c, http.StatusBadRequest, "MAX_GUESTS_EXCEEDED", "Guest count exceeds property capacity")
	case errors.Is(err, ErrNotAvailable):
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", "Property is not available for the selected dates")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", "Wallet balance is too low")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrSubmitInFlight):
		response.Error(c, http.StatusConflict, "SUBMIT_IN_FLIGHT", "A submission is already in progress")
	case errors.Is(err, ErrWrongStep):
		response.Error(c, http.StatusConflict, "WRONG_STEP", "Action not allowed at the current step")
	case errors.Is(err, ErrNetwork), errors.Is(err, ErrRejected):
		// Both surface the same retryable message; the distinction is
		// for logs only.
		response.Error(c, http.StatusBadGateway, "BOOKING_FAILED", "Booking failed, please try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bookings, err := h.service.GetMyBookings(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) GetBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), userID, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": toBookingResponse(b)})
}

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	bd, err := h.service.Quote(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"breakdown": bd.Rounded()})
}

func (h *Handler) StartDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return
	}

	var req StartDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d := NewDraft(req.PropertyID, userID)
	h.drafts.Put(d)
	response.Success(c, http.StatusCreated, gin.H{"draft": toDraftResponse(d)})
}

// draftForUser loads a draft and checks ownership; a draft belongs to
// exactly one booking attempt by one user.
func (h *Handler) draftForUser(c *gin.Context) (*Draft, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required")
		return nil, false
	}

	d, ok := h.drafts.Get(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Draft not found")
		return nil, false
	}
	if d.UserID != userID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your draft")
		return nil, false
	}
	return d, true
}

func (h *Handler) GetDraft(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) SetDraftDates(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	var req DraftDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if req.CheckIn != "" {
		day, err := parseDate(req.CheckIn)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if err := d.Dates.SetCheckIn(day); err != nil {
			h.writeError(c, err)
			return
		}
	}
	if req.CheckOut != "" {
		day, err := parseDate(req.CheckOut)
		if err != nil {
			h.writeError(c, err)
			return
		}
		if err := d.Dates.SetCheckOut(day); err != nil {
			h.writeError(c, err)
			return
		}
	}

	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) IncrementGuest(c *gin.Context) {
	h.adjustGuest(c, func(g *GuestCounts, cat GuestCategory) { g.Increment(cat) })
}

func (h *Handler) DecrementGuest(c *gin.Context) {
	h.adjustGuest(c, func(g *GuestCounts, cat GuestCategory) { g.Decrement(cat) })
}

func (h *Handler) adjustGuest(c *gin.Context, apply func(*GuestCounts, GuestCategory)) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	var req DraftGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	cat := GuestCategory(req.Category)
	if _, known := guestBounds[cat]; !known {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown guest category")
		return
	}

	// Out-of-bound adjustments are silent no-ops, mirroring disabled
	// +/- controls.
	apply(&d.Guests, cat)
	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) SetDraftNote(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	var req DraftNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d.Note = req.Note
	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) SetDraftPayment(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	var req DraftPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	method := domain.PaymentMethod(req.Method)
	if !method.Valid() {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported payment method")
		return
	}

	d.PaymentMethod = method
	if req.Card != nil {
		d.Card = *req.Card
	}
	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) ContinueDraft(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	if err := d.Continue(); err != nil {
		h.writeError(c, err)
		return
	}
	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) BackDraft(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	if err := d.Back(); err != nil {
		h.writeError(c, err)
		return
	}
	h.drafts.Put(d)
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}

func (h *Handler) SubmitDraft(c *gin.Context) {
	d, ok := h.draftForUser(c)
	if !ok {
		return
	}

	token := c.GetString("token")
	err := SubmitDraft(c.Request.Context(), d, h.submitter, token)
	h.drafts.Put(d)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": toDraftResponse(d)})
}
