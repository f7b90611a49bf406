package auth

// Package auth contains domain-level types for the client's authentication session.
// It is pure and free of transport/adapter concerns.

import (
	"net/mail"
	"strings"

	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
)

// Role is the backend authorization role carried on the user identity.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "USER"
)

// UserInfo is the identity returned by /auth/login, /auth/register and /auth/me.
type UserInfo struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	IsVerified bool   `json:"isVerified"`
	AvatarURL  string `json:"avatarUrl"`
}

// IsAdmin reports whether the identity carries the admin role.
func (u *UserInfo) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns the best human-readable name available.
func (u *UserInfo) DisplayName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

// State is the session store's lifecycle state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Session is the client's cached record of the authenticated identity.
// It is also the persisted shape; it never carries tokens.
type Session struct {
	User            *UserInfo `json:"user"`
	IsAuthenticated bool      `json:"isAuthenticated"`
}

// Valid reports whether the session honours IsAuthenticated => User != nil.
func (s Session) Valid() bool {
	return !s.IsAuthenticated || s.User != nil
}

// IsAdmin reports whether the session belongs to an authenticated admin.
func (s Session) IsAdmin() bool {
	return s.IsAuthenticated && s.User.IsAdmin()
}

// LoginRequest is the /auth/login payload.
type LoginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

const minPasswordLength = 6

// Validate mirrors the login form rules.
func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.EmailOrUsername) == "" {
		return apperrors.ValidationField("emailOrUsername", "Email or username is required")
	}
	if len(r.Password) < minPasswordLength {
		return apperrors.ValidationField("password", "Password must be at least 6 characters")
	}
	return nil
}

// RegisterRequest is the /auth/register payload.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// Validate mirrors the registration form rules.
func (r RegisterRequest) Validate() error {
	if len(strings.TrimSpace(r.Username)) < 3 {
		return apperrors.ValidationField("username", "Username must be at least 3 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil || strings.Contains(r.Email, "<") {
		return apperrors.ValidationField("email", "Invalid email address")
	}
	if len(r.Password) < minPasswordLength {
		return apperrors.ValidationField("password", "Password must be at least 6 characters")
	}
	return nil
}

// AuthResponse is the data of a successful login or registration.
// Tokens travel as cookies; the body copies are ignored by the client.
type AuthResponse struct {
	AccessToken  string   `json:"accessToken,omitempty"`
	RefreshToken string   `json:"refreshToken,omitempty"`
	TokenType    string   `json:"tokenType,omitempty"`
	ExpiresIn    int64    `json:"expiresIn,omitempty"`
	User         UserInfo `json:"user"`
}

// ChangePasswordRequest is the /auth/change-password payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate enforces the minimum new password length.
func (r ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return apperrors.ValidationField("currentPassword", "Current password is required")
	}
	if len(r.NewPassword) < minPasswordLength {
		return apperrors.ValidationField("newPassword", "Password must be at least 6 characters")
	}
	return nil
}
