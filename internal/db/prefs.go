package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Joseda-hg/nexatask/internal/model"
)

// PreferenceStore owns the single preferences row. The row is seeded by
// EnsureSchema under the fixed key 1 and is only ever replaced, never
// deleted.
type PreferenceStore struct {
	DB *sql.DB
}

func NewPreferenceStore(db *sql.DB) *PreferenceStore {
	return &PreferenceStore{DB: db}
}

// Get returns the singleton row. An empty table yields the defaults without
// error; on any other failure the defaults come back alongside the error so
// callers can degrade without a second lookup.
func (s *PreferenceStore) Get(ctx context.Context) (model.Preferences, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT theme, primary_color, view_mode, animation_intensity, first_visit
		FROM preferences WHERE id = 1`)

	var prefs model.Preferences
	err := row.Scan(&prefs.Theme, &prefs.PrimaryColor, &prefs.ViewMode,
		&prefs.AnimationIntensity, &prefs.FirstVisit)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultPreferences(), nil
	}
	if err != nil {
		return model.DefaultPreferences(), storageErr("get preferences", err)
	}

	return prefs, nil
}

// Replace overwrites all five fields on the fixed row. There is no partial
// patch; the caller supplies the full record.
func (s *PreferenceStore) Replace(ctx context.Context, prefs model.Preferences) error {
	if _, err := s.DB.ExecContext(ctx, `
		UPDATE preferences SET theme = ?, primary_color = ?, view_mode = ?, animation_intensity = ?, first_visit = ?
		WHERE id = 1`,
		prefs.Theme, prefs.PrimaryColor, prefs.ViewMode,
		prefs.AnimationIntensity, prefs.FirstVisit); err != nil {
		return storageErr("update preferences", err)
	}
	return nil
}
