package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomago/inspiro/internal/types"
)

func TestResendClientSend(t *testing.T) {
	var gotAuth string
	var gotBody sendRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"abc123"}`))
	}))
	defer server.Close()

	client := NewResendClient(Config{
		APIKey:  "re_test_key",
		From:    "Inspiro <quotes@inspiro.app>",
		BaseURL: server.URL,
	})

	err := client.Send(context.Background(), "user@example.com", "Hello", "<p>Hi</p>")
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "Inspiro <quotes@inspiro.app>", gotBody.From)
	assert.Equal(t, []string{"user@example.com"}, gotBody.To)
	assert.Equal(t, "Hello", gotBody.Subject)
	assert.Equal(t, "<p>Hi</p>", gotBody.HTML)
}

func TestResendClientSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	client := NewResendClient(Config{APIKey: "re_test_key", BaseURL: server.URL})

	err := client.Send(context.Background(), "user@example.com", "Hello", "<p>Hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestRenderQuoteEmail(t *testing.T) {
	html, err := RenderQuoteEmail(types.Quote{
		Text:   "Stay hungry, stay foolish.",
		Author: "Steve Jobs",
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Stay hungry, stay foolish.")
	assert.Contains(t, html, "Steve Jobs")
	assert.Contains(t, html, "Your Daily Quote from Inspiro")
}

func TestRenderQuoteEmailEscapesHTML(t *testing.T) {
	html, err := RenderQuoteEmail(types.Quote{
		Text:   `<script>alert("x")</script>`,
		Author: "Anonymous",
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}
