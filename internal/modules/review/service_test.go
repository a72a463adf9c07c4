package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentalapp/internal/domain"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *domain.Review) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewRepository) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, propertyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) AggregateForProperty(ctx context.Context, propertyID int64) (float64, int, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type MockPropertyWriter struct {
	mock.Mock
}

func (m *MockPropertyWriter) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyWriter) UpdateRating(ctx context.Context, propertyID int64, rating float64, reviewCount int) error {
	args := m.Called(ctx, propertyID, rating, reviewCount)
	return args.Error(0)
}

func TestService_CreateReview_UpdatesAggregate(t *testing.T) {
	reviews := new(MockReviewRepository)
	properties := new(MockPropertyWriter)

	properties.On("GetByID", mock.Anything, int64(5)).Return(&domain.Property{ID: 5, HostID: 1}, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	reviews.On("AggregateForProperty", mock.Anything, int64(5)).Return(4.5, 2, nil)
	properties.On("UpdateRating", mock.Anything, int64(5), 4.5, 2).Return(nil)

	service := NewService(reviews, properties)

	r, err := service.CreateReview(context.Background(), 42, 5, 5, "Great stay")

	assert.NoError(t, err)
	assert.Equal(t, int64(999), r.ID)
	properties.AssertExpectations(t)
}

func TestService_CreateReview_RatingBounds(t *testing.T) {
	service := NewService(new(MockReviewRepository), new(MockPropertyWriter))

	_, err := service.CreateReview(context.Background(), 42, 5, 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.CreateReview(context.Background(), 42, 5, 6, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateReview_OwnProperty(t *testing.T) {
	properties := new(MockPropertyWriter)
	properties.On("GetByID", mock.Anything, int64(5)).Return(&domain.Property{ID: 5, HostID: 42}, nil)

	service := NewService(new(MockReviewRepository), properties)

	_, err := service.CreateReview(context.Background(), 42, 5, 4, "")
	assert.ErrorIs(t, err, ErrOwnReview)
}

func TestService_CreateReview_PropertyMissing(t *testing.T) {
	properties := new(MockPropertyWriter)
	properties.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)

	service := NewService(new(MockReviewRepository), properties)

	_, err := service.CreateReview(context.Background(), 42, 5, 4, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
