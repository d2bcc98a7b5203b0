package thread

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncatePassThroughWithinBudget(t *testing.T) {
	result := Truncate("<p>short</p>", "", 100)
	require.Equal(t, "<p>short</p>", result.NewContent)
	require.Empty(t, result.HistoryContent)
	require.False(t, result.HasHistory)
}

func TestTruncatePassThroughKeepsHistory(t *testing.T) {
	result := Truncate("<p>short</p>", "<p>old</p>", 100)
	require.Equal(t, "<p>short</p>", result.NewContent)
	require.Equal(t, "<p>old</p>", result.HistoryContent)
	require.True(t, result.HasHistory)
}

func TestTruncateZeroBudgetMeansUnlimited(t *testing.T) {
	body := "<p>" + strings.Repeat("a", 500) + "</p>"
	result := Truncate(body, "", 0)
	require.Equal(t, body, result.NewContent)
	require.False(t, result.HasHistory)
}

func TestTruncateSplitsAtBudgetWithBalancedTags(t *testing.T) {
	result := Truncate("<div><p>0123456789</p></div>", "", 4)

	require.Equal(t, "<div><p>0123</p></div>...", result.NewContent)
	require.Equal(t, "<div><p>456789</p></div>", result.HistoryContent)
	require.True(t, result.HasHistory)

	head := strings.TrimSuffix(result.NewContent, truncationSuffix)
	require.Equal(t, 4, PlainTextLen(head))
	require.Equal(t, PlainText("<div><p>0123456789</p></div>"),
		PlainText(head)+PlainText(result.HistoryContent),
		"no text may be lost across the split")
}

func TestTruncateDistributesSiblings(t *testing.T) {
	result := Truncate("<p>abcd</p><p>efgh</p>", "", 4)
	require.Equal(t, "<p>abcd</p>...", result.NewContent)
	require.Equal(t, "<p>efgh</p>", result.HistoryContent)
}

func TestTruncateSplitsAtRuneBoundary(t *testing.T) {
	result := Truncate("<p>αβγδε</p>", "", 2)
	require.Equal(t, "<p>αβ</p>...", result.NewContent)
	require.Equal(t, "<p>γδε</p>", result.HistoryContent)
}

func TestTruncateChildlessElementFollowsCursor(t *testing.T) {
	result := Truncate("<p>ab<br>cd</p>", "", 2)
	require.Equal(t, "<p>ab<br/></p>...", result.NewContent)
	require.Equal(t, "<p>cd</p>", result.HistoryContent)
}

func TestTruncateDuplicatesAncestorAttributes(t *testing.T) {
	result := Truncate(`<div class="msg"><p>0123456789</p></div>`, "", 4)
	require.Contains(t, result.NewContent, `<div class="msg">`)
	require.Contains(t, result.HistoryContent, `<div class="msg">`)
}

func TestTruncateJoinsTailAndHistory(t *testing.T) {
	result := Truncate("<p>0123456789</p>", "<p>quoted</p>", 4)
	require.Equal(t, "<p>0123</p>...", result.NewContent)
	require.Equal(t, "<p>456789</p>"+historySeparator+"<p>quoted</p>", result.HistoryContent)
	require.True(t, result.HasHistory)
}
