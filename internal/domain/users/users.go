package users

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotImplemented  = errors.New("users repository: not implemented")
	ErrNotFound        = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailExists     = errors.New("email already in use")
	ErrInvalidInput    = errors.New("invalid input")
)

const minPasswordLength = 8

// User is a staff account that can obtain API tokens. Password material is
// stored as a salted SHA-256 digest, never in plain text.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	PasswordSalt string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository defines persistence behaviour for users.
type Repository interface {
	FindByID(id int64) (User, error)
	FindByEmail(email string) (User, error)
	Save(user User) (User, error)
}

// NullRepository can be used when no storage is configured.
type NullRepository struct{}

func (NullRepository) FindByID(int64) (User, error)     { return User{}, ErrNotImplemented }
func (NullRepository) FindByEmail(string) (User, error) { return User{}, ErrNotImplemented }
func (NullRepository) Save(User) (User, error)          { return User{}, ErrNotImplemented }

// Service exposes account registration and credential checks.
type Service interface {
	Register(input RegisterInput) (User, error)
	Authenticate(email, password string) (User, error)
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type service struct {
	repo Repository
}

// NewService constructs a user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(input RegisterInput) (User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrNotImplemented) {
		return User{}, err
	}

	salt, err := newSalt()
	if err != nil {
		return User{}, err
	}

	return s.repo.Save(User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordSalt: salt,
		PasswordHash: digest(salt, input.Password),
	})
}

func (s *service) Authenticate(email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return User{}, err
	}

	got := digest(user.PasswordSalt, password)
	if subtle.ConstantTimeCompare([]byte(got), []byte(user.PasswordHash)) != 1 {
		return User{}, ErrInvalidPassword
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func newSalt() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("salt generation failed: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf[:]), nil
}

func digest(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return base64.StdEncoding.EncodeToString(sum[:])
}
