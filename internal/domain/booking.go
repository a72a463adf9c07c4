package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PayCash       PaymentMethod = "cash"
	PayWallet     PaymentMethod = "wallet"
	PayCreditCard PaymentMethod = "credit_card"
	PayPaypal     PaymentMethod = "paypal"
	PayApplePay   PaymentMethod = "apple_pay"
	PayGooglePay  PaymentMethod = "google_pay"
)

// Valid reports whether m is one of the closed set of supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayWallet, PayCreditCard, PayPaypal, PayApplePay, PayGooglePay:
		return true
	}
	return false
}

type Booking struct {
	ID         int64     `json:"id"`
	Ref        string    `json:"ref"`
	PropertyID int64     `json:"property_id" validate:"required"`
	UserID     int64     `json:"user_id" validate:"required"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required"`
	Nights     int       `json:"nights"`

	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`

	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Tax            float64 `json:"tax"`
	ServiceFee     float64 `json:"service_fee"`
	TotalPrice     float64 `json:"total_price"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        BookingStatus `json:"status"`
	Note          string        `json:"note,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

func (b *Booking) TotalGuests() int { return b.Adults + b.Children + b.Infants }
