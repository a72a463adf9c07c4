package wallet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Balance(ctx context.Context, userID int64) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockWalletRepository) Debit(ctx context.Context, userID int64, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) Credit(ctx context.Context, userID int64, amount float64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func TestService_Debit_RejectsNonPositive(t *testing.T) {
	repo := new(MockWalletRepository)
	service := NewService(repo)

	assert.ErrorIs(t, service.Debit(context.Background(), 7, 0), ErrInvalidAmount)
	assert.ErrorIs(t, service.Debit(context.Background(), 7, -10), ErrInvalidAmount)
	repo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Debit_InsufficientFunds(t *testing.T) {
	repo := new(MockWalletRepository)
	repo.On("Debit", mock.Anything, int64(7), 100.0).Return(ErrInsufficientFunds)

	service := NewService(repo)
	assert.ErrorIs(t, service.Debit(context.Background(), 7, 100), ErrInsufficientFunds)
}

func TestService_TopUp(t *testing.T) {
	repo := new(MockWalletRepository)
	repo.On("Credit", mock.Anything, int64(7), 250.0).Return(nil)
	repo.On("Balance", mock.Anything, int64(7)).Return(400.0, nil)

	service := NewService(repo)

	balance, err := service.TopUp(context.Background(), 7, 250)
	assert.NoError(t, err)
	assert.Equal(t, 400.0, balance)
}

func TestService_TopUp_RejectsNonPositive(t *testing.T) {
	service := NewService(new(MockWalletRepository))

	_, err := service.TopUp(context.Background(), 7, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
