package imagecard

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiomago/inspiro/internal/types"
)

func TestRender(t *testing.T) {
	dataURL, err := Render(types.Quote{
		Text:   "Stay hungry, stay foolish.",
		Author: "Steve Jobs",
	})
	require.NoError(t, err)

	const prefix = "data:text/html;base64,"
	require.True(t, strings.HasPrefix(dataURL, prefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	require.NoError(t, err)

	html := string(decoded)
	assert.Contains(t, html, "Stay hungry, stay foolish.")
	assert.Contains(t, html, "- Steve Jobs")
	assert.Contains(t, html, `<div class="logo">inspiro</div>`)
	assert.Contains(t, html, "width: 1080px")
	assert.Contains(t, html, "height: 1080px")
}

func TestRenderEscapesHTML(t *testing.T) {
	dataURL, err := Render(types.Quote{
		Text:   `<script>alert("x")</script>`,
		Author: "Anonymous",
	})
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:text/html;base64,"))
	require.NoError(t, err)
	assert.NotContains(t, string(decoded), "<script>alert")
}

func TestShareText(t *testing.T) {
	text := ShareText(types.Quote{Text: "Be yourself.", Author: "Oscar Wilde"})
	assert.Equal(t, "\"Be yourself.\" - Oscar Wilde\n\nShared via Inspiro", text)
}

func TestShareLink(t *testing.T) {
	quote := types.Quote{Text: "Be yourself.", Author: "Oscar Wilde"}
	cardURL := "https://inspiro.app/cards/abc"

	tests := []struct {
		platform string
		want     string
	}{
		{
			platform: PlatformFacebook,
			want:     "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Finspiro.app%2Fcards%2Fabc",
		},
		{
			platform: PlatformLinkedIn,
			want:     "https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Finspiro.app%2Fcards%2Fabc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			got, err := ShareLink(tt.platform, quote, cardURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("twitter includes caption", func(t *testing.T) {
		got, err := ShareLink(PlatformTwitter, quote, cardURL)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, "https://twitter.com/intent/tweet?text="))
		assert.Contains(t, got, "Shared+via+Inspiro")
		assert.Contains(t, got, "url=https%3A%2F%2Finspiro.app%2Fcards%2Fabc")
	})

	t.Run("instagram requires manual sharing", func(t *testing.T) {
		_, err := ShareLink(PlatformInstagram, quote, cardURL)
		assert.ErrorIs(t, err, ErrManualShare)
	})

	t.Run("unknown platform", func(t *testing.T) {
		_, err := ShareLink("myspace", quote, cardURL)
		assert.ErrorIs(t, err, ErrUnknownPlatform)
	})
}
