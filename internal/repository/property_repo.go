package repository

import (
	"context"
	"errors"
	"time"

	"rentalapp/internal/domain"
	"rentalapp/internal/modules/catalog"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	HostID          int64     `gorm:"column:host_id;index"`
	Name            string    `gorm:"column:name"`
	Address         string    `gorm:"column:address"`
	City            string    `gorm:"column:city;index"`
	Country         string    `gorm:"column:country"`
	Description     *string   `gorm:"column:description"`
	PricePerNight   float64   `gorm:"column:price_per_night"`
	Bedrooms        int       `gorm:"column:bedrooms"`
	Bathrooms       int       `gorm:"column:bathrooms"`
	Area            float64   `gorm:"column:area"`
	Amenities       []string  `gorm:"column:amenities;serializer:json"`
	Photos          []string  `gorm:"column:photos;serializer:json"`
	Rating          float64   `gorm:"column:rating"`
	ReviewCount     int       `gorm:"column:review_count"`
	DiscountPercent float64   `gorm:"column:discount_percent"`
	MaxGuests       int       `gorm:"column:max_guests"`
	CheckInTime     *string   `gorm:"column:check_in_time"`
	CheckOutTime    *string   `gorm:"column:check_out_time"`
	IsAvailable     bool      `gorm:"column:is_available"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	var description, checkIn, checkOut string
	if m.Description != nil {
		description = *m.Description
	}
	if m.CheckInTime != nil {
		checkIn = *m.CheckInTime
	}
	if m.CheckOutTime != nil {
		checkOut = *m.CheckOutTime
	}

	return &domain.Property{
		ID:              m.ID,
		HostID:          m.HostID,
		Name:            m.Name,
		Address:         m.Address,
		City:            m.City,
		Country:         m.Country,
		Description:     description,
		PricePerNight:   m.PricePerNight,
		Bedrooms:        m.Bedrooms,
		Bathrooms:       m.Bathrooms,
		Area:            m.Area,
		Amenities:       m.Amenities,
		Photos:          m.Photos,
		Rating:          m.Rating,
		ReviewCount:     m.ReviewCount,
		DiscountPercent: m.DiscountPercent,
		MaxGuests:       m.MaxGuests,
		CheckInTime:     checkIn,
		CheckOutTime:    checkOut,
		IsAvailable:     m.IsAvailable,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	var description, checkIn, checkOut *string
	if p.Description != "" {
		v := p.Description
		description = &v
	}
	if p.CheckInTime != "" {
		v := p.CheckInTime
		checkIn = &v
	}
	if p.CheckOutTime != "" {
		v := p.CheckOutTime
		checkOut = &v
	}

	return propertyModel{
		ID:              p.ID,
		HostID:          p.HostID,
		Name:            p.Name,
		Address:         p.Address,
		City:            p.City,
		Country:         p.Country,
		Description:     description,
		PricePerNight:   p.PricePerNight,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Area:            p.Area,
		Amenities:       p.Amenities,
		Photos:          p.Photos,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		DiscountPercent: p.DiscountPercent,
		MaxGuests:       p.MaxGuests,
		CheckInTime:     checkIn,
		CheckOutTime:    checkOut,
		IsAvailable:     p.IsAvailable,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&propertyModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Search(ctx context.Context, f catalog.SearchFilter) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{}).Where("is_available = ?", true)

	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}
	if f.Guests > 0 {
		q = q.Where("max_guests >= ?", f.Guests)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []propertyModel
	tx := q.Order("rating DESC, id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&models)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	properties := make([]domain.Property, 0, len(models))
	for _, m := range models {
		properties = append(properties, *toDomainProperty(m))
	}
	return properties, total, nil
}

func (r *PropertyRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Property, error) {
	var models []propertyModel
	tx := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	properties := make([]domain.Property, 0, len(models))
	for _, m := range models {
		properties = append(properties, *toDomainProperty(m))
	}
	return properties, nil
}

// UpdateRating writes the denormalized review aggregate onto the listing.
func (r *PropertyRepository) UpdateRating(ctx context.Context, propertyID int64, rating float64, reviewCount int) error {
	tx := r.db.WithContext(ctx).
		Model(&propertyModel{}).
		Where("id = ?", propertyID).
		Updates(map[string]any{
			"rating":       rating,
			"review_count": reviewCount,
		})
	return tx.Error
}
