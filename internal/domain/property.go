package domain

import "time"

type Property struct {
	ID              int64     `json:"id"`
	HostID          int64     `json:"host_id"`
	Name            string    `json:"name" validate:"required"`
	Address         string    `json:"address" validate:"required"`
	City            string    `json:"city" validate:"required"`
	Country         string    `json:"country" validate:"required"`
	Description     string    `json:"description,omitempty"`
	PricePerNight   float64   `json:"price_per_night" validate:"required,gt=0"`
	Bedrooms        int       `json:"bedrooms"`
	Bathrooms       int       `json:"bathrooms"`
	Area            float64   `json:"area,omitempty"`
	Amenities       []string  `json:"amenities,omitempty"`
	Photos          []string  `json:"photos,omitempty"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"review_count"`
	DiscountPercent float64   `json:"discount_percent"`
	MaxGuests       int       `json:"max_guests" validate:"required,gte=1"`
	CheckInTime     string    `json:"check_in_time,omitempty"`
	CheckOutTime    string    `json:"check_out_time,omitempty"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Location is the display form used by property cards: an explicit
// "City, Country" pair.
func (p *Property) Location() string {
	if p.City == "" && p.Country == "" {
		return p.Address
	}
	return p.City + ", " + p.Country
}

// Featured listings are the ones surfaced on the home screen:
// discounted or highly rated.
func (p *Property) IsFeatured() bool {
	return p.DiscountPercent > 0 || p.Rating >= 4.5
}
