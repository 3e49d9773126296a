package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomago/inspiro/internal/identity"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid", "Bearer abc123", "abc123"},
		{"missing", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"lowercase scheme", "bearer abc123", ""},
		{"empty token", "Bearer ", ""},
		{"extra whitespace", "Bearer   abc123  ", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, extractBearerToken(r))
		})
	}
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, constantTimeEqual("secret", "secret"))
	assert.False(t, constantTimeEqual("secret", "secreT"))
	assert.False(t, constantTimeEqual("secret", "secret-longer"))
	assert.False(t, constantTimeEqual("", "secret"))
}

func TestServiceKeyMiddleware(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := ServiceKeyMiddleware("topsecret")(next)

	t.Run("valid key", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer topsecret")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.True(t, called)
	})

	t.Run("wrong key", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		// The expected key must never leak into the response.
		assert.NotContains(t, rec.Body.String(), "topsecret")
	})

	t.Run("missing header", func(t *testing.T) {
		called = false
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserAuthMiddleware(t *testing.T) {
	verifier := &mockVerifier{
		tokens: map[string]identity.User{"good-token": {ID: "user-1", Email: "u@example.com"}},
	}

	var gotUser identity.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = MustUserFromContext(r.Context())
	})
	handler := UserAuthMiddleware(verifier)(next)

	t.Run("valid token injects user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", gotUser.ID)
	})

	t.Run("bad token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalUserMiddleware(t *testing.T) {
	verifier := &mockVerifier{
		tokens: map[string]identity.User{"good-token": {ID: "user-1"}},
	}

	var gotUser identity.User
	var gotErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotErr = UserFromContext(r.Context())
	})
	handler := OptionalUserMiddleware(verifier)(next)

	t.Run("valid token injects user", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		require.NoError(t, gotErr)
		assert.Equal(t, "user-1", gotUser.ID)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.ErrorIs(t, gotErr, ErrNoUserInContext)
	})

	t.Run("rejected token treated as anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.ErrorIs(t, gotErr, ErrNoUserInContext)
	})
}

func TestLoggingMiddlewarePreservesStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	LoggingMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
