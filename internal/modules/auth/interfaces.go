package auth

import (
	"context"
	"time"

	"rentalapp/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SaveVerificationCode(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error
	GetVerificationCode(ctx context.Context, userID int64) (codeHash string, expiresAt time.Time, err error)
	MarkEmailVerified(ctx context.Context, userID int64) error
}

// Mailer delivers verification codes; the wiring decides whether that
// is a real provider or a log line in development.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}
