package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"rentalapp/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) SaveVerificationCode(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, codeHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) GetVerificationCode(ctx context.Context, userID int64) (string, time.Time, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Passw1", true},
		{"too short", "Ab1", false},
		{"no digit", "Password", false},
		{"no uppercase", "password1", false},
		{"digits only", "1234567", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	mailer := new(MockMailer)

	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("GetByID", mock.Anything, int64(999)).Return(&domain.User{ID: 999, Email: "jane@example.com"}, nil)
	users.On("SaveVerificationCode", mock.Anything, int64(999), mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendVerificationCode", mock.Anything, "jane@example.com", mock.Anything).Return(nil)
	jwt.On("GenerateToken", int64(999), "guest").Return("token-1", nil)

	service := NewService(users, jwt, mailer, "pepper")

	resp, err := service.Register(context.Background(), RegisterRequest{
		Email:    "  Jane@Example.com ",
		Password: "Secret1",
		Name:     "Jane Cooper",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-1", resp.Token)
	assert.Equal(t, domain.RoleGuest, resp.User.Role)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	mailer.AssertExpectations(t)
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{ID: 1}, nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "Secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_WeakPassword(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockJWT), new(MockMailer), "pepper")

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestService_Register_InvalidPhone(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockJWT), new(MockMailer), "pepper")

	_, err := service.Register(context.Background(), RegisterRequest{
		Email:    "jane@example.com",
		Password: "Secret1",
		Phone:    "not-a-phone",
	})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestService_Login_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.MinCost)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           7,
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}, nil)

	jwt := new(MockJWT)
	jwt.On("GenerateToken", int64(7), "guest").Return("token-7", nil)

	service := NewService(users, jwt, new(MockMailer), "pepper")

	resp, err := service.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "Secret1"})
	assert.NoError(t, err)
	assert.Equal(t, "token-7", resp.Token)
}

func TestService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret1"), bcrypt.MinCost)

	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "jane@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: string(hash),
	}, nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	_, err := service.Login(context.Background(), LoginRequest{Email: "jane@example.com", Password: "Wrong1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	_, err := service.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "Secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_VerifyCode_RoundTrip(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Email: "jane@example.com"}, nil)

	var savedHash string
	users.On("SaveVerificationCode", mock.Anything, int64(7), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { savedHash = args.String(2) }).
		Return(nil)

	mailer := new(MockMailer)
	mailer.On("SendVerificationCode", mock.Anything, "jane@example.com", mock.Anything).Return(nil)

	service := NewService(users, new(MockJWT), mailer, "pepper")

	code, err := service.RequestVerification(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, code, 6)

	users.On("GetVerificationCode", mock.Anything, int64(7)).Return(savedHash, time.Now().Add(10*time.Minute), nil)
	users.On("MarkEmailVerified", mock.Anything, int64(7)).Return(nil)

	assert.NoError(t, service.VerifyCode(context.Background(), 7, code))
	users.AssertCalled(t, "MarkEmailVerified", mock.Anything, int64(7))
}

func TestService_VerifyCode_WrongCode(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetVerificationCode", mock.Anything, int64(7)).Return("deadbeef", time.Now().Add(10*time.Minute), nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	err := service.VerifyCode(context.Background(), 7, "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestService_VerifyCode_Expired(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetVerificationCode", mock.Anything, int64(7)).Return("somehash", time.Now().Add(-time.Minute), nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	err := service.VerifyCode(context.Background(), 7, "123456")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestService_BecomeHost(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleGuest}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleHost
	})).Return(nil)

	jwt := new(MockJWT)
	jwt.On("GenerateToken", int64(7), "host").Return("host-token", nil)

	service := NewService(users, jwt, new(MockMailer), "pepper")

	resp, err := service.BecomeHost(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleHost, resp.User.Role)
	assert.Equal(t, "host-token", resp.Token)
}

func TestService_BecomeHost_AlreadyHost(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, Role: domain.RoleHost}, nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	_, err := service.BecomeHost(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAlreadyHost)
}

func TestService_UpdateProfile_InvalidPhone(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)

	service := NewService(users, new(MockJWT), new(MockMailer), "pepper")

	phone := "abc"
	_, err := service.UpdateProfile(context.Background(), 7, UpdateProfileRequest{Phone: &phone})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
