package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"rentalapp/internal/domain"
)

const (
	minPasswordLength = 6
	verifyCodeTTL     = 15 * time.Minute
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Service struct {
	users      UserRepositoryInterface
	jwt        jwtService
	mailer     Mailer
	codePepper string
}

func NewService(users UserRepositoryInterface, jwt jwtService, mailer Mailer, codePepper string) *Service {
	return &Service{
		users:      users,
		jwt:        jwt,
		mailer:     mailer,
		codePepper: codePepper,
	}
}

// validatePassword enforces the sign-up rules: at least six
// characters with one digit and one uppercase letter.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	var hasDigit, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return ErrWeakPassword
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Phone != "" && !phonePattern.MatchString(strings.ReplaceAll(req.Phone, " ", "")) {
		return nil, ErrInvalidPhone
	}

	email := normalizeEmail(req.Email)
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Country:      req.Country,
		Gender:       req.Gender,
		Role:         domain.RoleGuest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.RequestVerification(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *Service) hashCode(code string) string {
	sum := sha256.Sum256([]byte(code + s.codePepper))
	return hex.EncodeToString(sum[:])
}

// RequestVerification issues a fresh six-digit code, stores its hash,
// and mails the plain code to the user. The code itself is returned
// only for tests.
func (s *Service) RequestVerification(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.users.SaveVerificationCode(ctx, userID, s.hashCode(code), time.Now().Add(verifyCodeTTL)); err != nil {
		return "", err
	}
	if s.mailer != nil {
		if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
			return "", err
		}
	}
	return code, nil
}

func (s *Service) VerifyCode(ctx context.Context, userID int64, code string) error {
	hash, expiresAt, err := s.users.GetVerificationCode(ctx, userID)
	if err != nil {
		return err
	}
	if hash == "" || time.Now().After(expiresAt) {
		return ErrInvalidCode
	}
	if s.hashCode(code) != hash {
		return ErrInvalidCode
	}
	return s.users.MarkEmailVerified(ctx, userID)
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !phonePattern.MatchString(strings.ReplaceAll(*req.Phone, " ", "")) {
			return nil, ErrInvalidPhone
		}
		user.Phone = *req.Phone
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BecomeHost upgrades a guest to the host role and issues a token
// carrying the new role.
func (s *Service) BecomeHost(ctx context.Context, userID int64) (*AuthResponse, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleHost {
		return nil, ErrAlreadyHost
	}

	user.Role = domain.RoleHost
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: token}, nil
}
