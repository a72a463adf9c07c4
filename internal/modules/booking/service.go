package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"rentalapp/internal/config"
	"rentalapp/internal/domain"
	"rentalapp/internal/pkg/metrics"
)

type Service struct {
	bookings   BookingRepository
	properties PropertyReader
	wallet     WalletCharger
	pricing    config.Pricing
}

func NewService(bookings BookingRepository, properties PropertyReader, wallet WalletCharger, pricing config.Pricing) *Service {
	return &Service{
		bookings:   bookings,
		properties: properties,
		wallet:     wallet,
		pricing:    pricing,
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return d, nil
}

func (s *Service) parseRange(checkIn, checkOut string) (DateRange, int, error) {
	in, err := parseDate(checkIn)
	if err != nil {
		return DateRange{}, 0, err
	}
	out, err := parseDate(checkOut)
	if err != nil {
		return DateRange{}, 0, err
	}

	var r DateRange
	if err := r.SetCheckIn(in); err != nil {
		return DateRange{}, 0, err
	}
	if err := r.SetCheckOut(out); err != nil {
		return DateRange{}, 0, err
	}

	nights, err := r.Nights()
	if err != nil {
		return DateRange{}, 0, err
	}
	return r, nights, nil
}

// Quote computes the price breakdown for a prospective stay without
// creating anything.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Breakdown, error) {
	_, nights, err := s.parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	bd := ComputeBreakdown(p.PricePerNight, nights, p.DiscountPercent, s.pricing.TaxRate, s.pricing.ServiceFee)
	return &bd, nil
}

// CreateBooking validates a completed draft's data, prices the stay
// server-side, charges the wallet when that method is selected, and
// persists the booking.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	r, nights, err := s.parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	guests := GuestCounts{Adults: req.Adults, Children: req.Children, Infants: req.Infants}
	if !guests.withinBounds() {
		return nil, ErrValidation
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	if !method.Valid() {
		return nil, ErrValidation
	}

	p, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsAvailable {
		return nil, ErrNotAvailable
	}
	if guests.Total() > p.MaxGuests {
		return nil, ErrMaxGuests
	}

	overlapping, err := s.bookings.CountOverlapping(ctx, p.ID, r.CheckIn(), r.CheckOut())
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrNotAvailable
	}

	bd := ComputeBreakdown(p.PricePerNight, nights, p.DiscountPercent, s.pricing.TaxRate, s.pricing.ServiceFee)

	paymentStatus := domain.PaymentPending
	if method == domain.PayWallet {
		if err := s.wallet.Debit(ctx, userID, bd.Total); err != nil {
			return nil, err
		}
		paymentStatus = domain.PaymentCompleted
	}

	b := &domain.Booking{
		Ref:            uuid.NewString(),
		PropertyID:     p.ID,
		UserID:         userID,
		CheckIn:        r.CheckIn(),
		CheckOut:       r.CheckOut(),
		Nights:         nights,
		Adults:         guests.Adults,
		Children:       guests.Children,
		Infants:        guests.Infants,
		Subtotal:       bd.Subtotal,
		DiscountAmount: bd.DiscountAmount,
		Tax:            bd.Tax,
		ServiceFee:     bd.ServiceFee,
		TotalPrice:     bd.Total,
		PaymentMethod:  method,
		PaymentStatus:  paymentStatus,
		Status:         domain.BookingPending,
		Note:           req.Note,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) GetBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, userID, bookingID int64) (*domain.Booking, error) {
	b, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCancelled || b.Status == domain.BookingCompleted {
		return nil, ErrValidation
	}

	if err := s.bookings.Cancel(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, bookingID)
}
