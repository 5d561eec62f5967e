// Package tracker owns the signed-in user's records and profile: how they
// are stored, how they change and how extracted fields are merged in.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jimezsa/opptrack/internal/kv"
	"github.com/jimezsa/opptrack/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultKeyPrefix = "opptrack"
	keySeparator     = "::"
)

// Repository is the only component that reads or writes the store. Records
// and profile live under "{prefix}::{userId}" keys; the signed-in identity
// lives under one un-namespaced session key.
type Repository struct {
	store  kv.Store
	prefix string
	logger zerolog.Logger
}

func NewRepository(store kv.Store, keyPrefix string, logger zerolog.Logger) *Repository {
	keyPrefix = strings.TrimSpace(keyPrefix)
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Repository{store: store, prefix: keyPrefix, logger: logger}
}

func (r *Repository) RecordsKey(userID string) string {
	return r.prefix + ".records" + keySeparator + userID
}

func (r *Repository) ProfileKey(userID string) string {
	return r.prefix + ".profile" + keySeparator + userID
}

func (r *Repository) SessionKey() string {
	return r.prefix + ".session"
}

// LoadRecords returns the user's records in stored order. A missing or
// malformed slot reads as an empty list; only store failures are errors.
func (r *Repository) LoadRecords(ctx context.Context, userID string) ([]models.Opportunity, error) {
	key := r.RecordsKey(userID)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return []models.Opportunity{}, nil
	}

	var records []models.Opportunity
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed records")
		return []models.Opportunity{}, nil
	}
	if records == nil {
		return []models.Opportunity{}, nil
	}
	return records, nil
}

// SaveRecords replaces the user's whole list. Assessments are never written.
func (r *Repository) SaveRecords(ctx context.Context, userID string, records []models.Opportunity) error {
	if records == nil {
		records = []models.Opportunity{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.RecordsKey(userID), string(data)); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	return nil
}

// LoadProfile returns the user's profile; a missing or malformed slot reads
// as the empty profile.
func (r *Repository) LoadProfile(ctx context.Context, userID string) (models.Profile, error) {
	key := r.ProfileKey(userID)
	raw, found, err := r.store.Get(ctx, key)
	if err != nil {
		return models.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return models.Profile{}, nil
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed profile")
		return models.Profile{}, nil
	}
	return profile, nil
}

func (r *Repository) SaveProfile(ctx context.Context, userID string, profile models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, r.ProfileKey(userID), string(data)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// DeleteUserData removes the user's records and profile.
func (r *Repository) DeleteUserData(ctx context.Context, userID string) error {
	for _, key := range []string{r.RecordsKey(userID), r.ProfileKey(userID)} {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// CurrentUser returns the signed-in identity. ok is false when nobody is
// signed in or the session slot is unreadable.
func (r *Repository) CurrentUser(ctx context.Context) (models.User, bool, error) {
	raw, found, err := r.store.Get(ctx, r.SessionKey())
	if err != nil {
		return models.User{}, false, fmt.Errorf("load session: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return models.User{}, false, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		r.logger.Warn().Err(err).Msg("discarding malformed session")
		return models.User{}, false, nil
	}
	return user, user.Valid(), nil
}

func (r *Repository) SignIn(ctx context.Context, user models.User) error {
	if !user.Valid() {
		return fmt.Errorf("user id is required")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.SessionKey(), string(data))
}

func (r *Repository) SignOut(ctx context.Context) error {
	return r.store.Delete(ctx, r.SessionKey())
}
