package repository

import (
	"context"
	"time"

	"rentalapp/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

type favoriteModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;uniqueIndex:idx_fav_user_property"`
	PropertyID int64     `gorm:"column:property_id;uniqueIndex:idx_fav_user_property"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (favoriteModel) TableName() string { return "favorites" }

// Add is idempotent; re-adding an existing favorite is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID int64) error {
	m := favoriteModel{UserID: userID, PropertyID: propertyID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&favoriteModel{}).Error
}

func (r *FavoriteRepository) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Property, int64, error) {
	base := r.db.WithContext(ctx).
		Table("properties").
		Joins("JOIN favorites ON favorites.property_id = properties.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []propertyModel
	tx := base.Order("favorites.created_at DESC").
		Limit(limit).
		Offset(offset).
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

func (r *FavoriteRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&favoriteModel{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
