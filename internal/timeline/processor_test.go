package timeline

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseline/caseline/internal/config"
	"github.com/caseline/caseline/internal/models"
)

func testItem(id string, cat models.Category, body string) models.TimelineItem {
	return models.TimelineItem{
		ID:          id,
		Category:    cat,
		Body:        body,
		CreatedDate: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProcessItemEmailIsReduced(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	item := testItem("i1", models.CategoryEmail,
		"Thanks, works now.<br>On Mon, Aug 3 2026 Dana wrote: try restarting")

	out := p.ProcessItem(item)

	require.Equal(t, "i1", out.ID)
	require.Equal(t, "Thanks, works now.<br>", out.Body)
	require.True(t, out.HasHistory)
	require.Contains(t, out.HistoryBody, "Dana wrote:")
	require.True(t, out.IsEmail)
	require.NotEmpty(t, out.Preview)
}

func TestProcessItemEmailBodyIsLinkified(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	item := testItem("i1", models.CategoryEmail, "See http://example.com please")

	out := p.ProcessItem(item)
	require.Contains(t, out.Body, `<a href="http://example.com"`)
	require.Contains(t, out.Body, `target="_blank"`)
}

func TestProcessItemNonEmailBodyPassesThrough(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	body := "<style>p{}</style><p>internal note<br>On Monday Dana wrote: not a reply</p>"
	item := testItem("i1", models.CategoryInternal, body)

	out := p.ProcessItem(item)

	// No sanitizing, no boundary detection outside the email category.
	require.Equal(t, body, out.Body)
	require.False(t, out.HasHistory)
	require.Empty(t, out.HistoryBody)
	require.True(t, out.IsInternal)
}

func TestProcessItemCarriesDefaultsAndFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timeline.DefaultExpanded = true
	p := NewProcessor(cfg)

	item := testItem("i1", models.CategorySystem, "<p>case closed</p>")
	item.IsOutgoing = true

	out := p.ProcessItem(item)
	assert.True(t, out.Expanded)
	assert.False(t, out.HistoryVisible)
	assert.True(t, out.IsSystem)
	assert.False(t, out.IsEmail)
	assert.True(t, out.IsOutgoing)
	assert.Equal(t, item.CreatedDate, out.CreatedDate)
}

func TestProcessBatchKeepsOrder(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	items := []models.TimelineItem{
		testItem("a", models.CategoryPublic, "<p>one</p>"),
		testItem("b", models.CategoryPublic, "<p>two</p>"),
	}

	out := p.ProcessBatch(items)
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, "b", out[1].ID)
}

func TestPreviewFlattensAndCollapses(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	got := p.Preview("<div>  Hello\n\n  <b>world</b>  </div>")
	require.Equal(t, "Hello world", got)
}

func TestPreviewCapsLength(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Engine.PreviewLength = 10
	p := NewProcessor(cfg)

	got := p.Preview("<p>" + strings.Repeat("a", 50) + "</p>")
	require.Equal(t, strings.Repeat("a", 10), got)
}

func TestPreviewEmptyBodyUsesPlaceholder(t *testing.T) {
	p := NewProcessor(config.DefaultConfig())
	for _, body := range []string{"", "<p>   </p>", "<div><br></div>"} {
		require.Equal(t, "Click to view content...", p.Preview(body))
	}
}

func TestStyleClass(t *testing.T) {
	tests := []struct {
		name string
		item models.TimelineItem
		want string
	}{
		{
			name: "incoming email",
			item: models.TimelineItem{Category: models.CategoryEmail},
			want: "timeline-item timeline-email timeline-incoming",
		},
		{
			name: "outgoing email",
			item: models.TimelineItem{Category: models.CategoryEmail, IsOutgoing: true},
			want: "timeline-item timeline-email timeline-outgoing",
		},
		{
			name: "internal note",
			item: models.TimelineItem{Category: models.CategoryInternal, IsInternal: true},
			want: "timeline-item timeline-internal timeline-internal-only timeline-incoming",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, styleClass(tt.item))
		})
	}
}
