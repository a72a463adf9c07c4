package review

import (
	"context"
	"errors"

	"rentalapp/internal/domain"
)

var (
	ErrValidation = errors.New("invalid review")
	ErrNotFound   = errors.New("property not found")
	ErrOwnReview  = errors.New("hosts cannot review their own property")
)

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error)
	AggregateForProperty(ctx context.Context, propertyID int64) (avg float64, count int, err error)
}

type PropertyRatingWriter interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	UpdateRating(ctx context.Context, propertyID int64, rating float64, reviewCount int) error
}

type Service struct {
	reviews    ReviewRepository
	properties PropertyRatingWriter
}

func NewService(reviews ReviewRepository, properties PropertyRatingWriter) *Service {
	return &Service{reviews: reviews, properties: properties}
}

// CreateReview stores the review and refreshes the property's
// aggregate rating and review count.
func (s *Service) CreateReview(ctx context.Context, userID, propertyID int64, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	if p.HostID == userID {
		return nil, ErrOwnReview
	}

	r := &domain.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, err
	}

	avg, count, err := s.reviews.AggregateForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.properties.UpdateRating(ctx, propertyID, avg, count); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListByProperty(ctx, propertyID, limit, offset)
}
