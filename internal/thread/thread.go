// Package thread reduces raw email HTML bodies into new content and
// quoted reply history. It tolerates malformed third-party markup:
// anything that cannot be parsed degrades to "show full text, no split"
// rather than failing the item.
package thread

import (
	"strings"

	"github.com/caseline/caseline/internal/models"
)

// Options controls how a body is reduced.
type Options struct {
	// CharacterBudget is the plain-text budget for new content. A natural
	// split is accepted only when the text before the boundary fits;
	// otherwise the body is structurally truncated at the budget.
	// Zero means unlimited.
	CharacterBudget int
}

// Reduce splits a raw email HTML body into new content and quoted
// history. The pipeline is Sanitize, DetectBoundary, then either a
// natural split at the boundary or a structural truncation at the
// character budget. Link rewriting is left to the caller so both
// buckets can be treated the same way.
func Reduce(body string, opts Options) models.ParseResult {
	clean := Sanitize(body)
	if strings.TrimSpace(clean) == "" {
		return models.ParseResult{}
	}

	budget := opts.CharacterBudget

	newPart := clean
	history := ""
	if idx := DetectBoundary(clean); idx >= 0 {
		head := clean[:idx]
		if budget == 0 || PlainTextLen(head) <= budget {
			// Natural split: the reply header and everything after it
			// becomes history. A boundary at offset zero means the whole
			// body is quoted; new content is then empty.
			return models.ParseResult{
				NewContent:     head,
				HistoryContent: clean[idx:],
				HasHistory:     true,
			}
		}
		// Boundary exists but the text before it is over budget; fall
		// through to structural truncation of the head, keeping the
		// detected history downstream.
		newPart = head
		history = clean[idx:]
	}

	if budget == 0 {
		return models.ParseResult{
			NewContent:     newPart,
			HistoryContent: history,
			HasHistory:     strings.TrimSpace(history) != "",
		}
	}

	return Truncate(newPart, history, budget)
}
