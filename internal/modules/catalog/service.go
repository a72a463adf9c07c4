package catalog

import (
	"context"

	"rentalapp/internal/domain"
	"rentalapp/internal/pkg/validator"
)

const maxFeatured = 5

type Service struct {
	properties PropertyRepository
}

func NewService(properties PropertyRepository) *Service {
	return &Service{properties: properties}
}

func (s *Service) Search(ctx context.Context, f SearchFilter) ([]domain.Property, int64, error) {
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.properties.Search(ctx, f)
}

// Cards projects properties into the compact list representation.
func (s *Service) Cards(properties []domain.Property) []PropertyCard {
	cards := make([]PropertyCard, 0, len(properties))
	for i := range properties {
		cards = append(cards, toCard(&properties[i]))
	}
	return cards
}

// Featured picks up to five listings that are discounted or rated 4.5
// and above, in listing order.
func (s *Service) Featured(properties []domain.Property) []domain.Property {
	out := make([]domain.Property, 0, maxFeatured)
	for _, p := range properties {
		if !p.IsFeatured() {
			continue
		}
		out = append(out, p)
		if len(out) == maxFeatured {
			break
		}
	}
	return out
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) CreateProperty(ctx context.Context, hostID int64, req CreatePropertyRequest) (*domain.Property, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrValidation
	}

	p := &domain.Property{
		HostID:          hostID,
		Name:            req.Name,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		Description:     req.Description,
		PricePerNight:   req.PricePerNight,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Area:            req.Area,
		Amenities:       req.Amenities,
		Photos:          req.Photos,
		DiscountPercent: req.DiscountPercent,
		MaxGuests:       req.MaxGuests,
		CheckInTime:     req.CheckInTime,
		CheckOutTime:    req.CheckOutTime,
		IsAvailable:     true,
	}

	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, hostID, propertyID int64, req UpdatePropertyRequest) (*domain.Property, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrValidation
	}

	p, err := s.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.HostID != hostID {
		return nil, ErrForbidden
	}

	applyUpdate(p, req)
	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProperty(ctx context.Context, hostID, propertyID int64) error {
	p, err := s.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p.HostID != hostID {
		return ErrForbidden
	}
	return s.properties.Delete(ctx, propertyID)
}

func (s *Service) MyListings(ctx context.Context, hostID int64) ([]domain.Property, error) {
	return s.properties.ListByHost(ctx, hostID)
}

func applyUpdate(p *domain.Property, req UpdatePropertyRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Country != nil {
		p.Country = *req.Country
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.PricePerNight != nil {
		p.PricePerNight = *req.PricePerNight
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		p.Area = *req.Area
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.Photos != nil {
		p.Photos = req.Photos
	}
	if req.DiscountPercent != nil {
		p.DiscountPercent = *req.DiscountPercent
	}
	if req.MaxGuests != nil {
		p.MaxGuests = *req.MaxGuests
	}
	if req.CheckInTime != nil {
		p.CheckInTime = *req.CheckInTime
	}
	if req.CheckOutTime != nil {
		p.CheckOutTime = *req.CheckOutTime
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
}
