package booking

import (
	"time"

	"rentalapp/internal/domain"
)

type CreateBookingRequest struct {
	PropertyID    int64  `json:"property_id" binding:"required"`
	CheckIn       string `json:"check_in" binding:"required"`
	CheckOut      string `json:"check_out" binding:"required"`
	Adults        int    `json:"adults" binding:"required"`
	Children      int    `json:"children"`
	Infants       int    `json:"infants"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Note          string `json:"note"`
}

type QuoteRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
}

type BookingResponse struct {
	ID             int64     `json:"id"`
	Ref            string    `json:"ref"`
	PropertyID     int64     `json:"property_id"`
	CheckIn        string    `json:"check_in"`
	CheckOut       string    `json:"check_out"`
	Nights         int       `json:"nights"`
	Adults         int       `json:"adults"`
	Children       int       `json:"children"`
	Infants        int       `json:"infants"`
	Subtotal       float64   `json:"subtotal"`
	DiscountAmount float64   `json:"discount_amount"`
	Tax            float64   `json:"tax"`
	ServiceFee     float64   `json:"service_fee"`
	TotalPrice     float64   `json:"total_price"`
	PaymentMethod  string    `json:"payment_method"`
	PaymentStatus  string    `json:"payment_status"`
	Status         string    `json:"status"`
	Note           string    `json:"note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// toBookingResponse rounds money fields for display; stored values keep
// full precision.
func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		Ref:            b.Ref,
		PropertyID:     b.PropertyID,
		CheckIn:        b.CheckIn.Format("2006-01-02"),
		CheckOut:       b.CheckOut.Format("2006-01-02"),
		Nights:         b.Nights,
		Adults:         b.Adults,
		Children:       b.Children,
		Infants:        b.Infants,
		Subtotal:       Round2(b.Subtotal),
		DiscountAmount: Round2(b.DiscountAmount),
		Tax:            Round2(b.Tax),
		ServiceFee:     Round2(b.ServiceFee),
		TotalPrice:     Round2(b.TotalPrice),
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		Status:         string(b.Status),
		Note:           b.Note,
		CreatedAt:      b.CreatedAt,
	}
}

type StartDraftRequest struct {
	PropertyID int64 `json:"property_id" binding:"required"`
}

type DraftDatesRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type DraftGuestRequest struct {
	Category string `json:"category" binding:"required"`
}

type DraftPaymentRequest struct {
	Method string       `json:"method" binding:"required"`
	Card   *CardDetails `json:"card,omitempty"`
}

type DraftNoteRequest struct {
	Note string `json:"note"`
}

type DraftResponse struct {
	ID            string      `json:"id"`
	PropertyID    int64       `json:"property_id"`
	Step          string      `json:"step"`
	CheckIn       string      `json:"check_in,omitempty"`
	CheckOut      string      `json:"check_out,omitempty"`
	Guests        GuestCounts `json:"guests"`
	Note          string      `json:"note,omitempty"`
	PaymentMethod string      `json:"payment_method"`
}

func toDraftResponse(d *Draft) DraftResponse {
	resp := DraftResponse{
		ID:            d.ID,
		PropertyID:    d.PropertyID,
		Step:          d.Step().String(),
		Guests:        d.Guests,
		Note:          d.Note,
		PaymentMethod: string(d.PaymentMethod),
	}
	if !d.Dates.CheckIn().IsZero() {
		resp.CheckIn = d.Dates.CheckIn().Format("2006-01-02")
	}
	if !d.Dates.CheckOut().IsZero() {
		resp.CheckOut = d.Dates.CheckOut().Format("2006-01-02")
	}
	return resp
}
