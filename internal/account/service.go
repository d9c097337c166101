package account

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// Service wraps account business rules.
type Service struct {
	repo Repository
	cost int
}

// NewService constructs a new Service. cost is the bcrypt work factor used
// when hashing passwords at registration.
func NewService(repo Repository, cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, cost: cost}
}

// Register hashes the password and creates the account with zero points.
func (s *Service) Register(ctx context.Context, email, username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, email, username, string(hash))
}

// Login validates username/password credentials. Every failure path
// collapses into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// AddPoints atomically applies a signed delta to the account balance.
// Negative deltas are allowed and may drive the balance below zero.
func (s *Service) AddPoints(ctx context.Context, id int64, delta int64) (*User, error) {
	return s.repo.AddPoints(ctx, id, delta)
}

// Get fetches an account by id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}
