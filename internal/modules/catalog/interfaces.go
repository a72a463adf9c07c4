package catalog

import (
	"context"

	"rentalapp/internal/domain"
)

type SearchFilter struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Guests   int
	Limit    int
	Offset   int
}

// PropertyRepository defines the persistence operations for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Search(ctx context.Context, f SearchFilter) ([]domain.Property, int64, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Property, error)
}
