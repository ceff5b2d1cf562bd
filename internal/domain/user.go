package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for account operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Role is a platform role. Invalid roles are rejected at construction time
// rather than falling through at dispatch.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
	RoleVolunteer Role = "volunteer"
	RoleSponsor   Role = "sponsor"
)

// ParseRole validates a role string. Empty defaults to attendee.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAttendee, RoleOrganizer, RoleVolunteer, RoleSponsor:
		return Role(s), nil
	case "":
		return RoleAttendee, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// CanManageEvents reports whether the role may create and mutate events.
func (r Role) CanManageEvents() bool { return r == RoleOrganizer }

// User represents a registered platform identity.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	College      string    `json:"college,omitempty"`
	Department   string    `json:"department,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser returns a new User with the given fields. ID is typically set by the repository on create.
func NewUser(email, name, college, department string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		Email:      email,
		Name:       name,
		College:    college,
		Department: department,
		Role:       role,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}

// AccountService defines signup, login, and profile management.
type AccountService interface {
	SignUp(ctx context.Context, email, password, name, college, department string, role Role) (token string, user *User, err error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
