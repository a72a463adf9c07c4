package wallet

import (
	"context"
	"errors"
)

var (
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Repository performs the balance mutations. Debit must be atomic:
// a conditional update that fails when the balance would go negative.
type Repository interface {
	Balance(ctx context.Context, userID int64) (float64, error)
	Debit(ctx context.Context, userID int64, amount float64) error
	Credit(ctx context.Context, userID int64, amount float64) error
}

type Service struct {
	wallets Repository
}

func NewService(wallets Repository) *Service {
	return &Service{wallets: wallets}
}

func (s *Service) Balance(ctx context.Context, userID int64) (float64, error) {
	return s.wallets.Balance(ctx, userID)
}

func (s *Service) Debit(ctx context.Context, userID int64, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.wallets.Debit(ctx, userID, amount)
}

func (s *Service) TopUp(ctx context.Context, userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if err := s.wallets.Credit(ctx, userID, amount); err != nil {
		return 0, err
	}
	return s.wallets.Balance(ctx, userID)
}
