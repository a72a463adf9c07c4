package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalapp/internal/config"
	"rentalapp/internal/domain"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountOverlapping(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (int64, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, bookingID int64) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockPropertyReader struct {
	mock.Mock
}

func (m *MockPropertyReader) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

type MockWalletCharger struct {
	mock.Mock
}

func (m *MockWalletCharger) Debit(ctx context.Context, userID int64, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func testPricing() config.Pricing {
	return config.Pricing{TaxRate: 0.08, ServiceFee: 0}
}

func testProperty() *domain.Property {
	return &domain.Property{
		ID:            5,
		HostID:        1,
		Name:          "Sunset Villa",
		PricePerNight: 650,
		MaxGuests:     8,
		IsAvailable:   true,
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		PropertyID:    5,
		CheckIn:       "2026-07-01",
		CheckOut:      "2026-07-31",
		Adults:        2,
		PaymentMethod: "credit_card",
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	properties := new(MockPropertyReader)
	wallets := new(MockWalletCharger)

	properties.On("GetByID", mock.Anything, int64(5)).Return(testProperty(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(int64(0), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(bookings, properties, wallets, testPricing())

	b, err := service.CreateBooking(context.Background(), 42, validRequest())

	assert.NoError(t, err)
	assert.NotNil(t, b)
	assert.Equal(t, 30, b.Nights)
	assert.Equal(t, 19500.0, b.Subtotal)
	assert.InDelta(t, 1560.0, b.Tax, 1e-9)
	assert.InDelta(t, 21060.0, b.TotalPrice, 1e-9)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.NotEmpty(t, b.Ref)
	wallets.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateBooking_InvalidRange(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockPropertyReader), new(MockWalletCharger), testPricing())

	req := validRequest()
	req.CheckOut = "2026-06-01"

	_, err := service.CreateBooking(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_CreateBooking_Overlap(t *testing.T) {
	bookings := new(MockBookingRepository)
	properties := new(MockPropertyReader)

	properties.On("GetByID", mock.Anything, int64(5)).Return(testProperty(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(int64(1), nil)

	service := NewService(bookings, properties, new(MockWalletCharger), testPricing())

	_, err := service.CreateBooking(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_CreateBooking_TooManyGuests(t *testing.T) {
	bookings := new(MockBookingRepository)
	properties := new(MockPropertyReader)

	p := testProperty()
	p.MaxGuests = 3
	properties.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	service := NewService(bookings, properties, new(MockWalletCharger), testPricing())

	req := validRequest()
	req.Adults = 2
	req.Children = 2

	_, err := service.CreateBooking(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrMaxGuests)
}

func TestService_CreateBooking_UnknownMethod(t *testing.T) {
	service := NewService(new(MockBookingRepository), new(MockPropertyReader), new(MockWalletCharger), testPricing())

	req := validRequest()
	req.PaymentMethod = "crypto"

	_, err := service.CreateBooking(context.Background(), 42, req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_WalletChargesTotal(t *testing.T) {
	bookings := new(MockBookingRepository)
	properties := new(MockPropertyReader)
	wallets := new(MockWalletCharger)

	properties.On("GetByID", mock.Anything, int64(5)).Return(testProperty(), nil)
	bookings.On("CountOverlapping", mock.Anything, int64(5), mock.Anything, mock.Anything).Return(int64(0), nil)
	wallets.On("Debit", mock.Anything, int64(42), mock.MatchedBy(func(v float64) bool {
		return v > 21059 && v < 21061
	})).Return(nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(bookings, properties, wallets, testPricing())

	req := validRequest()
	req.PaymentMethod = "wallet"

	b, err := service.CreateBooking(context.Background(), 42, req)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentCompleted, b.PaymentStatus)
	wallets.AssertExpectations(t)
}

func TestService_CreateBooking_Unavailable(t *testing.T) {
	properties := new(MockPropertyReader)
	p := testProperty()
	p.IsAvailable = false
	properties.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	service := NewService(new(MockBookingRepository), properties, new(MockWalletCharger), testPricing())

	_, err := service.CreateBooking(context.Background(), 42, validRequest())
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestService_Quote_UsesPropertyDiscount(t *testing.T) {
	properties := new(MockPropertyReader)
	p := testProperty()
	p.PricePerNight = 200
	p.DiscountPercent = 20
	properties.On("GetByID", mock.Anything, int64(5)).Return(p, nil)

	service := NewService(new(MockBookingRepository), properties, new(MockWalletCharger), config.Pricing{TaxRate: 0.10, ServiceFee: 50})

	bd, err := service.Quote(context.Background(), QuoteRequest{
		PropertyID: 5,
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-06",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, bd.Subtotal)
	assert.Equal(t, 200.0, bd.DiscountAmount)
	assert.InDelta(t, 930.0, bd.Total, 1e-9)
}

func TestService_GetBooking_Forbidden(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{ID: 7, UserID: 1}, nil)

	service := NewService(bookings, new(MockPropertyReader), new(MockWalletCharger), testPricing())

	_, err := service.GetBooking(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_CancelBooking_CompletedIsFinal(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		UserID: 42,
		Status: domain.BookingCompleted,
	}, nil)

	service := NewService(bookings, new(MockPropertyReader), new(MockWalletCharger), testPricing())

	_, err := service.CancelBooking(context.Background(), 42, 7)
	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}

func TestService_CancelBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		UserID: 42,
		Status: domain.BookingPending,
	}, nil).Once()
	bookings.On("Cancel", mock.Anything, int64(7)).Return(nil)
	bookings.On("GetByID", mock.Anything, int64(7)).Return(&domain.Booking{
		ID:     7,
		UserID: 42,
		Status: domain.BookingCancelled,
	}, nil).Once()

	service := NewService(bookings, new(MockPropertyReader), new(MockWalletCharger), testPricing())

	b, err := service.CancelBooking(context.Background(), 42, 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	bookings.AssertExpectations(t)
}
