package store

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/sergiomago/inspiro/internal/types"
)

// ListFilters returns a user's saved search filters, oldest first.
func (s *SQLiteStore) ListFilters(ctx context.Context, userID string) ([]types.SavedFilter, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, filter_text, created_at FROM user_filters WHERE user_id = ? ORDER BY created_at ASC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	defer rows.Close()

	var filters []types.SavedFilter
	for rows.Next() {
		var f types.SavedFilter
		var createdAt string
		if err := rows.Scan(&f.ID, &f.UserID, &f.FilterText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan filter: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		filters = append(filters, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filters: %w", err)
	}

	return filters, nil
}

// AddFilter saves one search filter, enforcing the per-user cap.
func (s *SQLiteStore) AddFilter(ctx context.Context, userID, filterText string) (*types.SavedFilter, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM user_filters WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count filters: %w", err)
	}
	if count >= MaxFiltersPerUser {
		return nil, ErrFilterLimit
	}

	f := types.SavedFilter{
		ID:         ulid.Make().String(),
		UserID:     userID,
		FilterText: filterText,
	}
	created := now()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO user_filters (id, user_id, filter_text, created_at) VALUES (?, ?, ?, ?)",
		f.ID, f.UserID, f.FilterText, created)
	if err != nil {
		return nil, fmt.Errorf("add filter: %w", err)
	}

	f.CreatedAt = parseTime(created)
	return &f, nil
}

// DeleteFilter removes a filter owned by userID.
func (s *SQLiteStore) DeleteFilter(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_filters WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
