package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sergiomago/inspiro/internal/types"
)

// GetSettings returns a user's delivery preferences, or ErrNotFound if the
// user never saved any.
func (s *SQLiteStore) GetSettings(ctx context.Context, userID string) (*types.UserSettings, error) {
	var out types.UserSettings
	var enabled int
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, notifications_enabled, frequency, time1, time2, quote_source
		 FROM user_settings WHERE user_id = ?`, userID).
		Scan(&out.UserID, &enabled, &out.Frequency, &out.Time1, &out.Time2, &out.QuoteSource)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	out.NotificationsEnabled = enabled != 0
	return &out, nil
}

// UpsertSettings writes a user's delivery preferences, replacing any
// previous row.
func (s *SQLiteStore) UpsertSettings(ctx context.Context, settings types.UserSettings) error {
	enabled := 0
	if settings.NotificationsEnabled {
		enabled = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_settings (user_id, notifications_enabled, frequency, time1, time2, quote_source, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   notifications_enabled = excluded.notifications_enabled,
		   frequency = excluded.frequency,
		   time1 = excluded.time1,
		   time2 = excluded.time2,
		   quote_source = excluded.quote_source,
		   updated_at = excluded.updated_at`,
		settings.UserID, enabled, settings.Frequency, settings.Time1, settings.Time2, settings.QuoteSource, now())
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// ListDueSettings returns every user whose notifications are enabled and
// whose time1 or time2 equals the given "HH:00" hour. Both time columns are
// matched regardless of frequency, mirroring how the hosted scheduler
// behaved.
func (s *SQLiteStore) ListDueSettings(ctx context.Context, hour string) ([]types.UserSettings, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, notifications_enabled, frequency, time1, time2, quote_source
		 FROM user_settings
		 WHERE notifications_enabled = 1 AND (time1 = ? OR time2 = ?)`, hour, hour)
	if err != nil {
		return nil, fmt.Errorf("list due settings: %w", err)
	}
	defer rows.Close()

	var due []types.UserSettings
	for rows.Next() {
		var out types.UserSettings
		var enabled int
		if err := rows.Scan(&out.UserID, &enabled, &out.Frequency, &out.Time1, &out.Time2, &out.QuoteSource); err != nil {
			return nil, fmt.Errorf("scan settings: %w", err)
		}
		out.NotificationsEnabled = enabled != 0
		due = append(due, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return due, nil
}
