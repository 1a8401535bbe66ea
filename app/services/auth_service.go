package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"blogue/app/models"
	"blogue/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService owns the single administrative identity and its password
// check.
type AuthService struct {
	users repositories.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Verify reports whether the credentials match the stored admin user.
// Unknown user and wrong password are deliberately indistinguishable to the
// caller.
func (s *AuthService) Verify(username, password string) bool {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("credential lookup failed: %v", err)
		}
		return false
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return false
	}

	if err := s.users.UpdateLastLogin(username, time.Now()); err != nil {
		// Login still succeeds; the timestamp is best-effort bookkeeping.
		log.Printf("failed to record last login for %s: %v", username, err)
	}
	return true
}

// EnsureDefaultAdmin creates the admin user if no user with that username
// exists yet. Safe to call on every process start.
func (s *AuthService) EnsureDefaultAdmin(username, password string) error {
	_, err := s.users.GetByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	user.BeforeCreate()
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return s.users.Create(user)
}
