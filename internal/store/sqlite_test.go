package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomago/inspiro/internal/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "inspiro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLedgerRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	used, err := s.WasUsed(ctx, "topic:courage", "Fortune favors the bold")
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, s.MarkUsed(ctx, "topic:courage", "Fortune favors the bold", types.KindHuman))

	used, err = s.WasUsed(ctx, "topic:courage", "Fortune favors the bold")
	require.NoError(t, err)
	assert.True(t, used)

	// Same text under a different context is still unused.
	used, err = s.WasUsed(ctx, "author:Virgil", "Fortune favors the bold")
	require.NoError(t, err)
	assert.False(t, used)

	count, err := s.CountUsedQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLedgerAllowsRepeatedMarks(t *testing.T) {
	// The ledger is append-only; concurrent generations may record the same
	// pair twice and that must not fail.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkUsed(ctx, "classic", "Carpe diem", types.KindClassic))
	require.NoError(t, s.MarkUsed(ctx, "classic", "Carpe diem", types.KindClassic))

	used, err := s.WasUsed(ctx, "classic", "Carpe diem")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fav, err := s.AddFavorite(ctx, "user-1", "Know thyself", "Socrates")
	require.NoError(t, err)
	assert.NotEmpty(t, fav.ID)

	_, err = s.AddFavorite(ctx, "user-2", "Carpe diem", "Horace")
	require.NoError(t, err)

	list, err := s.ListFavorites(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Know thyself", list[0].Quote)
	assert.Equal(t, "Socrates", list[0].Author)
	assert.False(t, list[0].CreatedAt.IsZero())

	// A user cannot delete someone else's favorite.
	err = s.DeleteFavorite(ctx, "user-2", fav.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteFavorite(ctx, "user-1", fav.ID))

	list, err = s.ListFavorites(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettingsUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetSettings(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	settings := types.UserSettings{
		UserID:               "user-1",
		NotificationsEnabled: true,
		Frequency:            "twice-daily",
		Time1:                "08:00",
		Time2:                "20:00",
		QuoteSource:          "human",
	}
	require.NoError(t, s.UpsertSettings(ctx, settings))

	got, err := s.GetSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, settings, *got)

	settings.QuoteSource = "ai"
	settings.NotificationsEnabled = false
	require.NoError(t, s.UpsertSettings(ctx, settings))

	got, err = s.GetSettings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "ai", got.QuoteSource)
	assert.False(t, got.NotificationsEnabled)
}

func TestListDueSettings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []types.UserSettings{
		{UserID: "morning", NotificationsEnabled: true, Frequency: "daily", Time1: "08:00", Time2: "20:00", QuoteSource: "mixed"},
		{UserID: "evening", NotificationsEnabled: true, Frequency: "twice-daily", Time1: "07:00", Time2: "08:00", QuoteSource: "ai"},
		{UserID: "disabled", NotificationsEnabled: false, Frequency: "daily", Time1: "08:00", Time2: "20:00", QuoteSource: "mixed"},
		{UserID: "other-hour", NotificationsEnabled: true, Frequency: "daily", Time1: "09:00", Time2: "21:00", QuoteSource: "mixed"},
	}
	for _, st := range seed {
		require.NoError(t, s.UpsertSettings(ctx, st))
	}

	due, err := s.ListDueSettings(ctx, "08:00")
	require.NoError(t, err)

	ids := make([]string, len(due))
	for i, st := range due {
		ids[i] = st.UserID
	}
	assert.ElementsMatch(t, []string{"morning", "evening"}, ids)
}

func TestFilterCap(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"stoicism", "courage", "growth"} {
		_, err := s.AddFilter(ctx, "user-1", text)
		require.NoError(t, err)
	}

	_, err := s.AddFilter(ctx, "user-1", "one too many")
	assert.ErrorIs(t, err, ErrFilterLimit)

	// The cap is per user.
	_, err = s.AddFilter(ctx, "user-2", "stoicism")
	require.NoError(t, err)

	list, err := s.ListFilters(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "stoicism", list[0].FilterText)

	require.NoError(t, s.DeleteFilter(ctx, "user-1", list[0].ID))
	_, err = s.AddFilter(ctx, "user-1", "replacement")
	require.NoError(t, err)

	err = s.DeleteFilter(ctx, "user-1", "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
