package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("first_name, last_name, email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Service verifies credentials in-process against bcrypt hashes. Session or
// token issuance happens outside this service; callers get the verified
// identity and nothing else.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if first == "" || last == "" || email == "" || len(req.Password) < 8 {
		return nil, ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user when email and password match, otherwise
// ErrInvalidCredentials. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, req *LoginRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
