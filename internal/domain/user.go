package domain

import "time"

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleHost  UserRole = "host"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email" validate:"required,email"`
	PasswordHash  string    `json:"-"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Country       string    `json:"country,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	Role          UserRole  `json:"role"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	WalletBalance float64   `json:"wallet_balance"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) IsHost() bool { return u.Role == RoleHost }
