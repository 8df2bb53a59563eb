package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/naganikhilbijjala/finpilot/internal/common"
	"github.com/naganikhilbijjala/finpilot/internal/models"
)

// systemKV is a system-level key-value record.
type systemKV struct {
	Key   string `badgerhold:"key"`
	Value string
}

type internalStorage struct {
	store  *Store
	logger *common.Logger
}

// NewInternalStorage creates an InternalStore backed by BadgerHold.
func NewInternalStorage(store *Store, logger *common.Logger) *internalStorage {
	return &internalStorage{store: store, logger: logger}
}

func (s *internalStorage) GetUser(_ context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.store.db.Get(userID, &user)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("user '%s' not found", userID)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", userID, err)
	}
	return &user, nil
}

func (s *internalStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := s.store.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user with email '%s' not found", email)
	}
	return &users[0], nil
}

func (s *internalStorage) SaveUser(_ context.Context, user *models.User) error {
	if err := s.store.db.Upsert(user.UserID, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	s.logger.Debug().Str("user_id", user.UserID).Msg("User saved")
	return nil
}

func (s *internalStorage) DeleteUser(_ context.Context, userID string) error {
	err := s.store.db.Delete(userID, models.User{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", userID, err)
	}
	s.logger.Debug().Str("user_id", userID).Msg("User deleted")
	return nil
}

func (s *internalStorage) ListUsers(_ context.Context) ([]string, error) {
	var users []models.User
	if err := s.store.db.Find(&users, nil); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return ids, nil
}

func (s *internalStorage) GetSystemKV(_ context.Context, key string) (string, error) {
	var kv systemKV
	err := s.store.db.Get(key, &kv)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return "", fmt.Errorf("system key '%s' not found", key)
		}
		return "", fmt.Errorf("failed to get system key '%s': %w", key, err)
	}
	return kv.Value, nil
}

func (s *internalStorage) SetSystemKV(_ context.Context, key, value string) error {
	if err := s.store.db.Upsert(key, &systemKV{Key: key, Value: value}); err != nil {
		return fmt.Errorf("failed to set system key '%s': %w", key, err)
	}
	return nil
}

func (s *internalStorage) Close() error {
	return s.store.Close()
}
