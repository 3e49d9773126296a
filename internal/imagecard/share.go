package imagecard

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/sergiomago/inspiro/internal/types"
)

// Platforms that accept a prefilled web share URL.
const (
	PlatformFacebook  = "facebook"
	PlatformTwitter   = "twitter"
	PlatformLinkedIn  = "linkedin"
	PlatformInstagram = "instagram"
)

// ErrManualShare marks platforms without a web share endpoint. Instagram
// only supports sharing through its apps, so callers should tell the
// user to download the card and post it themselves.
var ErrManualShare = errors.New("platform requires manual sharing")

// ErrUnknownPlatform is returned for platforms this package does not know.
var ErrUnknownPlatform = errors.New("unknown share platform")

// ShareText formats the caption attached to a shared quote.
func ShareText(q types.Quote) string {
	return fmt.Sprintf("%q - %s\n\nShared via Inspiro", q.Text, q.Author)
}

// ShareLink builds the web share URL for a quote card hosted at cardURL.
func ShareLink(platform string, q types.Quote, cardURL string) (string, error) {
	switch platform {
	case PlatformFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(cardURL), nil
	case PlatformTwitter:
		return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(ShareText(q)) +
			"&url=" + url.QueryEscape(cardURL), nil
	case PlatformLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(cardURL), nil
	case PlatformInstagram:
		return "", ErrManualShare
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
}
