package api

import (
	"context"
	"errors"

	"github.com/sergiomago/inspiro/internal/identity"
	"github.com/sergiomago/inspiro/internal/quote"
	"github.com/sergiomago/inspiro/internal/store"
	"github.com/sergiomago/inspiro/internal/types"
)

// mockStore implements store.Store with overridable functions.
type mockStore struct {
	wasUsedFn         func(ctx context.Context, contextKey, quoteText string) (bool, error)
	markUsedFn        func(ctx context.Context, contextKey, quoteText string, kind types.SourceKind) error
	countUsedFn       func(ctx context.Context) (int64, error)
	listFavoritesFn   func(ctx context.Context, userID string) ([]types.Favorite, error)
	addFavoriteFn     func(ctx context.Context, userID, quote, author string) (*types.Favorite, error)
	deleteFavoriteFn  func(ctx context.Context, userID, id string) error
	getSettingsFn     func(ctx context.Context, userID string) (*types.UserSettings, error)
	upsertSettingsFn  func(ctx context.Context, s types.UserSettings) error
	listDueSettingsFn func(ctx context.Context, hour string) ([]types.UserSettings, error)
	listFiltersFn     func(ctx context.Context, userID string) ([]types.SavedFilter, error)
	addFilterFn       func(ctx context.Context, userID, filterText string) (*types.SavedFilter, error)
	deleteFilterFn    func(ctx context.Context, userID, id string) error
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) WasUsed(ctx context.Context, contextKey, quoteText string) (bool, error) {
	if m.wasUsedFn != nil {
		return m.wasUsedFn(ctx, contextKey, quoteText)
	}
	return false, nil
}

func (m *mockStore) MarkUsed(ctx context.Context, contextKey, quoteText string, kind types.SourceKind) error {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, contextKey, quoteText, kind)
	}
	return nil
}

func (m *mockStore) CountUsedQuotes(ctx context.Context) (int64, error) {
	if m.countUsedFn != nil {
		return m.countUsedFn(ctx)
	}
	return 0, nil
}

func (m *mockStore) ListFavorites(ctx context.Context, userID string) ([]types.Favorite, error) {
	if m.listFavoritesFn != nil {
		return m.listFavoritesFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) AddFavorite(ctx context.Context, userID, quote, author string) (*types.Favorite, error) {
	if m.addFavoriteFn != nil {
		return m.addFavoriteFn(ctx, userID, quote, author)
	}
	return &types.Favorite{ID: "fav-1", UserID: userID, Quote: quote, Author: author}, nil
}

func (m *mockStore) DeleteFavorite(ctx context.Context, userID, id string) error {
	if m.deleteFavoriteFn != nil {
		return m.deleteFavoriteFn(ctx, userID, id)
	}
	return nil
}

func (m *mockStore) GetSettings(ctx context.Context, userID string) (*types.UserSettings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockStore) UpsertSettings(ctx context.Context, s types.UserSettings) error {
	if m.upsertSettingsFn != nil {
		return m.upsertSettingsFn(ctx, s)
	}
	return nil
}

func (m *mockStore) ListDueSettings(ctx context.Context, hour string) ([]types.UserSettings, error) {
	if m.listDueSettingsFn != nil {
		return m.listDueSettingsFn(ctx, hour)
	}
	return nil, nil
}

func (m *mockStore) ListFilters(ctx context.Context, userID string) ([]types.SavedFilter, error) {
	if m.listFiltersFn != nil {
		return m.listFiltersFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) AddFilter(ctx context.Context, userID, filterText string) (*types.SavedFilter, error) {
	if m.addFilterFn != nil {
		return m.addFilterFn(ctx, userID, filterText)
	}
	return &types.SavedFilter{ID: "flt-1", UserID: userID, FilterText: filterText}, nil
}

func (m *mockStore) DeleteFilter(ctx context.Context, userID, id string) error {
	if m.deleteFilterFn != nil {
		return m.deleteFilterFn(ctx, userID, id)
	}
	return nil
}

func (m *mockStore) Close() error { return nil }

// mockGenerator records the last request and returns a fixed result.
type mockGenerator struct {
	result  quote.Result
	err     error
	lastReq types.GenerationRequest
	calls   int
}

func (m *mockGenerator) Generate(ctx context.Context, req types.GenerationRequest) (quote.Result, error) {
	m.calls++
	m.lastReq = req
	return m.result, m.err
}

// mockVerifier maps tokens and IDs to users.
type mockVerifier struct {
	tokens map[string]identity.User
	users  map[string]identity.User
}

func (m *mockVerifier) UserFromToken(ctx context.Context, token string) (identity.User, error) {
	if u, ok := m.tokens[token]; ok {
		return u, nil
	}
	return identity.User{}, identity.ErrUnauthorized
}

func (m *mockVerifier) UserByID(ctx context.Context, id string) (identity.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return identity.User{}, identity.ErrUserNotFound
}

// mockSender records sent emails.
type mockSender struct {
	err   error
	to    []string
	subj  []string
	html  []string
	calls int
}

func (m *mockSender) Send(ctx context.Context, to, subject, html string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.to = append(m.to, to)
	m.subj = append(m.subj, subject)
	m.html = append(m.html, html)
	return nil
}

var errBoom = errors.New("boom")
