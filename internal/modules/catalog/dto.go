package catalog

import "rentalapp/internal/domain"

type CreatePropertyRequest struct {
	Name            string   `json:"name" binding:"required" validate:"required"`
	Address         string   `json:"address" binding:"required" validate:"required"`
	City            string   `json:"city" binding:"required" validate:"required"`
	Country         string   `json:"country" binding:"required" validate:"required"`
	Description     string   `json:"description"`
	PricePerNight   float64  `json:"price_per_night" binding:"required" validate:"required,gt=0,lte=1000000"`
	Bedrooms        int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms       int      `json:"bathrooms" validate:"gte=0"`
	Area            float64  `json:"area" validate:"gte=0"`
	Amenities       []string `json:"amenities"`
	Photos          []string `json:"photos"`
	DiscountPercent float64  `json:"discount_percent" validate:"gte=0,lte=100"`
	MaxGuests       int      `json:"max_guests" binding:"required" validate:"required,gte=1,lte=26"`
	CheckInTime     string   `json:"check_in_time"`
	CheckOutTime    string   `json:"check_out_time"`
}

type UpdatePropertyRequest struct {
	Name            *string  `json:"name,omitempty"`
	Address         *string  `json:"address,omitempty"`
	City            *string  `json:"city,omitempty"`
	Country         *string  `json:"country,omitempty"`
	Description     *string  `json:"description,omitempty"`
	PricePerNight   *float64 `json:"price_per_night,omitempty" validate:"omitempty,gt=0,lte=1000000"`
	Bedrooms        *int     `json:"bedrooms,omitempty"`
	Bathrooms       *int     `json:"bathrooms,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Amenities       []string `json:"amenities,omitempty"`
	Photos          []string `json:"photos,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxGuests       *int     `json:"max_guests,omitempty" validate:"omitempty,gte=1,lte=26"`
	CheckInTime     *string  `json:"check_in_time,omitempty"`
	CheckOutTime    *string  `json:"check_out_time,omitempty"`
	IsAvailable     *bool    `json:"is_available,omitempty"`
}

// PropertyCard is the compact projection shown in list screens.
type PropertyCard struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
}

func toCard(p *domain.Property) PropertyCard {
	return PropertyCard{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location(),
		Address:     p.Address,
		Price:       p.PricePerNight,
		Discount:    p.DiscountPercent,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		City:        p.City,
		Country:     p.Country,
	}
}
