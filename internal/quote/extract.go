package quote

import (
	"regexp"
	"strings"

	"github.com/sergiomago/inspiro/internal/types"
)

// Providers are instructed to answer `"<quote>" - <author>`, but the output
// drifts: curly glyphs, "by" attribution, citation markers like [3], stray
// trailing periods. The patterns run strictest first; the final loose one
// accepts any quoted span followed by a dash-delimited clause.
var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"\s*[-–—]\s*([^\[\n]+?)(?:\[[^\]]*\])?\.?\s*$`),
	regexp.MustCompile(`"([^"]+)"\s*by\s*([^\[\n]+?)(?:\[[^\]]*\])?\.?\s*$`),
	regexp.MustCompile(`[‘’']([^‘’']+)[‘’']\s*[-–—]\s*([^\[\n]+?)(?:\[[^\]]*\])?\.?\s*$`),
	regexp.MustCompile(`[“”]([^“”]+)[“”]\s*[-–—]\s*([^\[\n]+?)(?:\[[^\]]*\])?\.?\s*$`),
}

var looseExtractPattern = regexp.MustCompile(`[“”"]([^“”"]+)[“”"].*?[-–—]\s*([^,\n]+)`)

var citationMarker = regexp.MustCompile(`\[\d+\]$`)

// Extract parses free-form provider output into a quote/author pair.
// A nil return means the text was unparsable; the caller retries rather
// than treating it as an error.
func Extract(raw string) *types.Quote {
	for _, pattern := range extractPatterns {
		if m := pattern.FindStringSubmatch(raw); m != nil {
			return &types.Quote{
				Text:   strings.TrimSpace(m[1]),
				Author: cleanAuthor(m[2]),
			}
		}
	}

	if m := looseExtractPattern.FindStringSubmatch(raw); m != nil {
		return &types.Quote{
			Text:   strings.TrimSpace(m[1]),
			Author: cleanAuthor(m[2]),
		}
	}

	return nil
}

// cleanAuthor trims whitespace, citation markers, and trailing punctuation
// from an attribution span.
func cleanAuthor(s string) string {
	s = strings.TrimSpace(s)
	s = citationMarker.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, ".,;:")
}
