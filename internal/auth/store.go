package auth

import (
	"strings"
	"sync"

	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// User is a registered storefront account.
type User struct {
	Name         string
	Email        string
	PasswordHash string
}

// Store keeps accounts in process memory, keyed by lowercased email.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

// NewStore returns an empty account store.
func NewStore() *Store {
	return &Store{byEmail: map[string]User{}}
}

// Create registers the user, rejecting duplicate emails.
func (s *Store) Create(user User) error {
	key := normalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return apperrors.New(apperrors.CodeAlreadyExists, "email already registered").
			WithDetails(map[string]any{"email": user.Email})
	}
	s.byEmail[key] = user
	return nil
}

// FindByEmail looks up an account, case-insensitively.
func (s *Store) FindByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[normalizeEmail(email)]
	return user, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
