package store

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/sergiomago/inspiro/internal/types"
)

// ListFavorites returns all of a user's saved quotes, newest first.
func (s *SQLiteStore) ListFavorites(ctx context.Context, userID string) ([]types.Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, quote, author, created_at FROM favorites WHERE user_id = ? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []types.Favorite
	for rows.Next() {
		var f types.Favorite
		var createdAt string
		if err := rows.Scan(&f.ID, &f.UserID, &f.Quote, &f.Author, &createdAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.CreatedAt = parseTime(createdAt)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}

	return favorites, nil
}

// AddFavorite saves one quote for a user.
func (s *SQLiteStore) AddFavorite(ctx context.Context, userID, quote, author string) (*types.Favorite, error) {
	f := types.Favorite{
		ID:     ulid.Make().String(),
		UserID: userID,
		Quote:  quote,
		Author: author,
	}
	created := now()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO favorites (id, user_id, quote, author, created_at) VALUES (?, ?, ?, ?, ?)",
		f.ID, f.UserID, f.Quote, f.Author, created)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	f.CreatedAt = parseTime(created)
	return &f, nil
}

// DeleteFavorite removes a favorite owned by userID. Deleting someone
// else's row (or a missing one) reports ErrNotFound.
func (s *SQLiteStore) DeleteFavorite(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
