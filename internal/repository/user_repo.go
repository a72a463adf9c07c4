package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentalapp/internal/domain"
	"rentalapp/internal/modules/wallet"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Email         string    `gorm:"column:email;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash"`
	Name          string    `gorm:"column:name"`
	Phone         *string   `gorm:"column:phone"`
	Country       *string   `gorm:"column:country"`
	Gender        *string   `gorm:"column:gender"`
	Role          string    `gorm:"column:role"`
	AvatarURL     *string   `gorm:"column:avatar_url"`
	WalletBalance float64   `gorm:"column:wallet_balance"`
	EmailVerified bool      `gorm:"column:email_verified"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type verificationCodeModel struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	CodeHash  string    `gorm:"column:code_hash"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (verificationCodeModel) TableName() string { return "verification_codes" }

func toDomainUser(m userModel) *domain.User {
	var phone, country, gender, avatar string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.Country != nil {
		country = *m.Country
	}
	if m.Gender != nil {
		gender = *m.Gender
	}
	if m.AvatarURL != nil {
		avatar = *m.AvatarURL
	}

	return &domain.User{
		ID:            m.ID,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Name:          m.Name,
		Phone:         phone,
		Country:       country,
		Gender:        gender,
		Role:          domain.UserRole(m.Role),
		AvatarURL:     avatar,
		WalletBalance: m.WalletBalance,
		EmailVerified: m.EmailVerified,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var phone, country, gender, avatar *string
	if u.Phone != "" {
		v := u.Phone
		phone = &v
	}
	if u.Country != "" {
		v := u.Country
		country = &v
	}
	if u.Gender != "" {
		v := u.Gender
		gender = &v
	}
	if u.AvatarURL != "" {
		v := u.AvatarURL
		avatar = &v
	}

	return userModel{
		ID:            u.ID,
		Email:         email,
		PasswordHash:  u.PasswordHash,
		Name:          u.Name,
		Phone:         phone,
		Country:       country,
		Gender:        gender,
		Role:          string(u.Role),
		AvatarURL:     avatar,
		WalletBalance: u.WalletBalance,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// SaveVerificationCode upserts the single active code per user.
func (r *UserRepository) SaveVerificationCode(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	m := verificationCodeModel{
		UserID:    userID,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "created_at"}),
		}).
		Create(&m).Error
}

func (r *UserRepository) GetVerificationCode(ctx context.Context, userID int64) (string, time.Time, error) {
	var m verificationCodeModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return "", time.Time{}, nil
		}
		return "", time.Time{}, tx.Error
	}
	return m.CodeHash, m.ExpiresAt, nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Update("email_verified", true).Error
}

// Balance reads the user's wallet balance.
func (r *UserRepository) Balance(ctx context.Context, userID int64) (float64, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Select("wallet_balance").First(&m, userID)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return m.WalletBalance, nil
}

// Debit subtracts amount from the wallet with a conditional update so a
// balance can never go negative under concurrent spends.
func (r *UserRepository) Debit(ctx context.Context, userID int64, amount float64) error {
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ? AND wallet_balance >= ?", userID, amount).
		Update("wallet_balance", gorm.Expr("wallet_balance - ?", amount))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return wallet.ErrInsufficientFunds
	}
	return nil
}

func (r *UserRepository) Credit(ctx context.Context, userID int64, amount float64) error {
	tx := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
