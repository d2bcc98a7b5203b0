package thread

import (
	"regexp"
	"strings"
)

// snapWindow is how far DetectBoundary looks backward for a closing tag
// before giving up and using the raw match offset.
const snapWindow = 100

// Reply-header signatures across mail clients and languages. The list
// order carries no priority: the earliest match in the string wins.
var boundaryPatterns = []*regexp.Regexp{
	// "On Mon, Jan 1 2024 at 9:00 AM John wrote:" (Gmail and friends)
	regexp.MustCompile(`(?is)\bOn\s.{1,200}?\bwrote\s*:`),
	// Outlook-style separators
	regexp.MustCompile(`(?i)-{2,}\s*Original Message\s*-{2,}`),
	regexp.MustCompile(`(?i)-{2,}\s*Forwarded Message\s*-{2,}`),
	regexp.MustCompile(`(?i)\bBegin forwarded message\s*:`),
	// From/Sent header block, plain and bold-tag form
	regexp.MustCompile(`(?is)\bFrom\s*:\s.{1,300}?\bSent\s*:`),
	regexp.MustCompile(`(?is)<b>\s*From\s*:.{1,300}?<b>\s*Sent\s*:`),
	// French and Italian Outlook
	regexp.MustCompile(`(?is)\bDe\s*:\s.{1,300}?\bEnvoy\x{00e9}\s*:`),
	regexp.MustCompile(`(?is)\bDa\s*:\s.{1,300}?\bInviato\s*:`),
	// Long underscore rule some clients insert above the quoted chain
	regexp.MustCompile(`_{10,}`),
}

// DetectBoundary scans sanitized HTML for the start of the quoted reply
// chain and returns a byte offset, or -1 when no signature fires. Among
// all matching patterns the earliest starting offset wins. The offset is
// snapped backward to just after the nearest preceding '>' when one sits
// within the snap window, so the boundary lands after a closing tag
// rather than mid-element.
func DetectBoundary(s string) int {
	best := -1
	for _, re := range boundaryPatterns {
		loc := re.FindStringIndex(s)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			best = loc[0]
		}
	}
	if best == -1 {
		return -1
	}
	return snapToTagBoundary(s, best)
}

// snapToTagBoundary moves a candidate offset back to just after the last
// '>' within the snap window. The snap is a heuristic: with dense markup
// it can land after an unrelated element's closing bracket, which is
// accepted behavior.
func snapToTagBoundary(s string, offset int) int {
	start := offset - snapWindow
	if start < 0 {
		start = 0
	}
	if i := strings.LastIndexByte(s[start:offset], '>'); i >= 0 {
		return start + i + 1
	}
	return offset
}
