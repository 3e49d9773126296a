package quote

import (
	"fmt"

	"github.com/sergiomago/inspiro/internal/types"
)

// SentinelNoMoreQuotes is how the provider declares it has run out of unique
// material for a context. The orchestrator surfaces this to the caller
// instead of silently substituting a classic quote.
const SentinelNoMoreQuotes = "NO_MORE_QUOTES"

// AIPersona is the attribution required for originally generated quotes.
const AIPersona = "Inspiro AI"

// UserPrompt is the fixed user-role message sent with every instruction.
const UserPrompt = "Provide a quote following the specified format."

// promptVariations nudge the provider away from repeating itself across
// attempts within one request. BuildInstruction rotates through them by
// attempt number so consecutive attempts always phrase differently.
var promptVariations = []string{
	"present a unique perspective",
	"share wisdom from a different angle",
	"offer a fresh insight",
	"express a thought-provoking idea",
}

// BuildInstruction composes the system instruction for one generation
// attempt. It is a pure function of the request and the 1-based attempt
// number.
func BuildInstruction(req types.GenerationRequest, attempt int) string {
	variation := promptVariations[(attempt-1)%len(promptVariations)]

	if req.SearchKind == types.KindAuthor && req.SearchTerm != "" {
		return fmt.Sprintf(`You are a quote curator specializing in %[1]s's work. Find a verified, different quote that %[2]s.
The quote must be historically accurate and properly attributed.
Format the response exactly like this: "Quote text" - %[1]s
If you've exhausted all known quotes from this author, respond with: %[3]s`,
			req.SearchTerm, variation, SentinelNoMoreQuotes)
	}

	if req.SearchTerm != "" {
		var task string
		switch req.Source {
		case types.SourceHuman:
			task = fmt.Sprintf("Find a real, verified quote about %q that %s. Ensure it's accurate and properly attributed.", req.SearchTerm, variation)
		case types.SourceAI:
			task = fmt.Sprintf("Generate an original, inspiring quote about %q that %s. Format as: \"Quote text\" - %s", req.SearchTerm, variation, AIPersona)
		default:
			task = fmt.Sprintf("Either find a real quote or generate an AI quote about %q that %s. If generating, format as: \"Quote text\" - %s", req.SearchTerm, variation, AIPersona)
		}
		return fmt.Sprintf("You are a quote curator. %s\nFormat the response exactly as: \"Quote text\" - Author Name", task)
	}

	var task string
	switch req.Source {
	case types.SourceHuman:
		task = fmt.Sprintf("Share a historically verified quote that %s. Choose something meaningful and properly attributed.", variation)
	case types.SourceAI:
		task = fmt.Sprintf("Generate an original, inspiring quote that %s. Format as: \"Quote text\" - %s", variation, AIPersona)
	default:
		task = fmt.Sprintf("Either provide a verified historical quote or generate an original quote that %s. If generating, format as: \"Quote text\" - %s", variation, AIPersona)
	}
	return fmt.Sprintf("You are a quote curator. %s\nFormat the response exactly as: \"Quote text\" - Author Name", task)
}
