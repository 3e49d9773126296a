package types

import (
	"fmt"
	"time"
)

// SourcePreference selects where generated quotes may come from.
type SourcePreference string

const (
	SourceHuman SourcePreference = "human"
	SourceAI    SourcePreference = "ai"
	SourceMixed SourcePreference = "mixed"
)

// ParseSourcePreference validates a raw source string. Empty input maps to
// SourceMixed, matching the behavior of clients that omit the field.
func ParseSourcePreference(s string) (SourcePreference, error) {
	switch SourcePreference(s) {
	case SourceHuman, SourceAI, SourceMixed:
		return SourcePreference(s), nil
	case "":
		return SourceMixed, nil
	default:
		return "", fmt.Errorf("invalid source preference %q", s)
	}
}

// SearchKind classifies what a search term refers to.
type SearchKind string

const (
	KindTopic   SearchKind = "topic"
	KindAuthor  SearchKind = "author"
	KindKeyword SearchKind = "keyword"
)

// ParseSearchKind validates a raw kind string. Empty input maps to KindTopic,
// the default filter type.
func ParseSearchKind(s string) (SearchKind, error) {
	switch SearchKind(s) {
	case KindTopic, KindAuthor, KindKeyword:
		return SearchKind(s), nil
	case "":
		return KindTopic, nil
	default:
		return "", fmt.Errorf("invalid search kind %q", s)
	}
}

// SourceKind records where an accepted quote actually came from. It is what
// the deduplication ledger persists alongside each used quote.
type SourceKind string

const (
	KindClassic  SourceKind = "classic"
	KindAI       SourceKind = "ai"
	KindHuman    SourceKind = "human"
	KindMixedGen SourceKind = "mixed"
)

// ClassicContextKey partitions ledger entries drawn from the static pool.
const ClassicContextKey = "classic"

// Quote is a single quote/author pair. Pool entries are pre-validated;
// extracted candidates may still be rejected by the orchestrator.
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// GenerationRequest describes one call to the quote orchestrator. It is
// immutable for the duration of the attempt sequence.
type GenerationRequest struct {
	Source     SourcePreference
	SearchTerm string
	SearchKind SearchKind
}

// ContextKey derives the deduplication partition for this request:
// the same quote text may recur across contexts but never twice within one.
func (r GenerationRequest) ContextKey() string {
	term := r.SearchTerm
	if term == "" {
		term = "random"
	}
	return string(r.SearchKind) + ":" + term
}

// SourceKind maps the request's preference to the ledger's source tag.
func (r GenerationRequest) SourceKind() SourceKind {
	switch r.Source {
	case SourceHuman:
		return KindHuman
	case SourceAI:
		return KindAI
	default:
		return KindMixedGen
	}
}

// UsedQuote is one append-only row of the deduplication ledger.
type UsedQuote struct {
	ID        string
	SearchKey string
	Quote     string
	QuoteType SourceKind
	CreatedAt time.Time
}

// Favorite is a quote saved by a signed-in user.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Quote     string    `json:"quote"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSettings holds delivery-schedule preferences for one user.
type UserSettings struct {
	UserID               string `json:"user_id"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	Frequency            string `json:"frequency"`
	Time1                string `json:"time1"`
	Time2                string `json:"time2"`
	QuoteSource          string `json:"quote_source"`
}

// SavedFilter is a persisted search filter, capped at three per user.
type SavedFilter struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FilterText string    `json:"filter_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// GenerateRequest is the wire shape for POST /quotes/generate.
type GenerateRequest struct {
	Source     string `json:"source,omitempty"`
	SearchTerm string `json:"search_term,omitempty"`
	SearchKind string `json:"search_kind,omitempty"`
}

// GenerateResponse carries either an accepted quote or the provider's
// explicit exhaustion signal, never both.
type GenerateResponse struct {
	Quote     string `json:"quote,omitempty"`
	Author    string `json:"author,omitempty"`
	Exhausted bool   `json:"exhausted,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ImageRequest is the wire shape for POST /quotes/image.
type ImageRequest struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// ImageResponse returns the rendered quote card as a data URL.
type ImageResponse struct {
	ImageData string `json:"image_data"`
	Quote     string `json:"quote"`
	Author    string `json:"author"`
}

// ShareRequest is the wire shape for POST /quotes/share.
type ShareRequest struct {
	Platform string `json:"platform"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
}

// ShareResponse returns a platform share URL for a quote.
type ShareResponse struct {
	URL string `json:"url"`
}

// EmailRequest is the wire shape for POST /emails/quote.
type EmailRequest struct {
	UserID string `json:"user_id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// FavoriteRequest is the wire shape for POST /favorites.
type FavoriteRequest struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// FilterRequest is the wire shape for POST /filters.
type FilterRequest struct {
	FilterText string `json:"filter_text"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Model      string `json:"model"`
	UsedQuotes int64  `json:"used_quotes"`
}
