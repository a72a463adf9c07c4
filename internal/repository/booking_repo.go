package repository

import (
	"context"
	"errors"
	"time"

	"rentalapp/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	Ref            string     `gorm:"column:ref;uniqueIndex"`
	PropertyID     int64      `gorm:"column:property_id;index"`
	UserID         int64      `gorm:"column:user_id;index"`
	CheckIn        time.Time  `gorm:"column:check_in"`
	CheckOut       time.Time  `gorm:"column:check_out"`
	Nights         int        `gorm:"column:nights"`
	Adults         int        `gorm:"column:adults"`
	Children       int        `gorm:"column:children"`
	Infants        int        `gorm:"column:infants"`
	Subtotal       float64    `gorm:"column:subtotal"`
	DiscountAmount float64    `gorm:"column:discount_amount"`
	Tax            float64    `gorm:"column:tax"`
	ServiceFee     float64    `gorm:"column:service_fee"`
	TotalPrice     float64    `gorm:"column:total_price"`
	PaymentMethod  string     `gorm:"column:payment_method"`
	PaymentStatus  string     `gorm:"column:payment_status"`
	Status         string     `gorm:"column:status"`
	Note           *string    `gorm:"column:note"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var note string
	if m.Note != nil {
		note = *m.Note
	}

	return &domain.Booking{
		ID:             m.ID,
		Ref:            m.Ref,
		PropertyID:     m.PropertyID,
		UserID:         m.UserID,
		CheckIn:        m.CheckIn,
		CheckOut:       m.CheckOut,
		Nights:         m.Nights,
		Adults:         m.Adults,
		Children:       m.Children,
		Infants:        m.Infants,
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		Tax:            m.Tax,
		ServiceFee:     m.ServiceFee,
		TotalPrice:     m.TotalPrice,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		Status:         domain.BookingStatus(m.Status),
		Note:           note,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		CancelledAt:    m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var note *string
	if b.Note != "" {
		v := b.Note
		note = &v
	}

	return bookingModel{
		ID:             b.ID,
		Ref:            b.Ref,
		PropertyID:     b.PropertyID,
		UserID:         b.UserID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Nights:         b.Nights,
		Adults:         b.Adults,
		Children:       b.Children,
		Infants:        b.Infants,
		Subtotal:       b.Subtotal,
		DiscountAmount: b.DiscountAmount,
		Tax:            b.Tax,
		ServiceFee:     b.ServiceFee,
		TotalPrice:     b.TotalPrice,
		PaymentMethod:  string(b.PaymentMethod),
		PaymentStatus:  string(b.PaymentStatus),
		Status:         string(b.Status),
		Note:           note,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		CancelledAt:    b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	var models []bookingModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	bookings := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		bookings = append(bookings, *toDomainBooking(m))
	}
	return bookings, nil
}

// CountOverlapping counts live bookings whose [check_in, check_out)
// interval intersects the given one. Cancelled bookings never block.
func (r *BookingRepository) CountOverlapping(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE property_id = ?
  AND status NOT IN ('cancelled')
  AND check_in < ?
  AND check_out > ?
`
	tx := r.db.WithContext(ctx).Raw(q, propertyID, checkOut, checkIn).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": &now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
