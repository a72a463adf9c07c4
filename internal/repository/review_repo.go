package repository

import (
	"context"
	"time"

	"rentalapp/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	PropertyID int64     `gorm:"column:property_id;index"`
	UserID     int64     `gorm:"column:user_id"`
	Rating     int       `gorm:"column:rating"`
	Comment    *string   `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}
	return &domain.Review{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Comment:    comment,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	var comment *string
	if review.Comment != "" {
		v := review.Comment
		comment = &v
	}
	m := reviewModel{
		PropertyID: review.PropertyID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    comment,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*review = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID int64, limit, offset int) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	reviews := make([]domain.Review, 0, len(models))
	for _, m := range models {
		reviews = append(reviews, *toDomainReview(m))
	}
	return reviews, nil
}

func (r *ReviewRepository) AggregateForProperty(ctx context.Context, propertyID int64) (float64, int, error) {
	var row struct {
		Avg   float64
		Count int
	}
	q := `
SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(1) AS count
FROM reviews
WHERE property_id = ?
`
	tx := r.db.WithContext(ctx).Raw(q, propertyID).Scan(&row)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	return row.Avg, row.Count, nil
}
