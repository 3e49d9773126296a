package store

import (
	"context"

	"github.com/sergiomago/inspiro/internal/types"
)

// Store is the persistence contract for the service. The SQLite
// implementation is the only production one; handlers and workers depend on
// this interface so tests can substitute mocks.
type Store interface {
	// Deduplication ledger (append-only).
	WasUsed(ctx context.Context, contextKey, quoteText string) (bool, error)
	MarkUsed(ctx context.Context, contextKey, quoteText string, kind types.SourceKind) error
	CountUsedQuotes(ctx context.Context) (int64, error)

	// Favorites.
	ListFavorites(ctx context.Context, userID string) ([]types.Favorite, error)
	AddFavorite(ctx context.Context, userID, quote, author string) (*types.Favorite, error)
	DeleteFavorite(ctx context.Context, userID, id string) error

	// Delivery-schedule settings.
	GetSettings(ctx context.Context, userID string) (*types.UserSettings, error)
	UpsertSettings(ctx context.Context, s types.UserSettings) error
	ListDueSettings(ctx context.Context, hour string) ([]types.UserSettings, error)

	// Saved search filters, capped per user.
	ListFilters(ctx context.Context, userID string) ([]types.SavedFilter, error)
	AddFilter(ctx context.Context, userID, filterText string) (*types.SavedFilter, error)
	DeleteFilter(ctx context.Context, userID, id string) error

	Close() error
}
