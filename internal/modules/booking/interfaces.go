package booking

import (
	"context"
	"time"

	"rentalapp/internal/domain"
)

// BookingRepository defines the persistence operations the service
// needs for booking records.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	CountOverlapping(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (int64, error)
	Cancel(ctx context.Context, bookingID int64) error
}

// PropertyReader supplies the read-only property attributes consumed
// by price computation and occupancy checks.
type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

// WalletCharger debits a user's wallet when the wallet payment method
// is selected.
type WalletCharger interface {
	Debit(ctx context.Context, userID int64, amount float64) error
}
