// Package timeline turns fetched case activity items into renderable
// records and maintains the filtered, sorted view over them.
package timeline

import (
	"regexp"
	"strings"

	"github.com/k3a/html2text"
	"github.com/rs/zerolog"

	"github.com/caseline/caseline/internal/config"
	"github.com/caseline/caseline/internal/logging"
	"github.com/caseline/caseline/internal/models"
	"github.com/caseline/caseline/internal/thread"
)

var reWhitespaceRun = regexp.MustCompile(`\s+`)

// Processor prepares timeline items for rendering. Processing is a pure
// function of the item and the configuration: the same item always
// yields the same record, so batches can be re-processed on refresh
// without residual state.
type Processor struct {
	engine   config.EngineConfig
	timeline config.TimelineConfig
	logger   zerolog.Logger
}

// NewProcessor creates a Processor from configuration.
func NewProcessor(cfg *config.Config) *Processor {
	return &Processor{
		engine:   cfg.Engine,
		timeline: cfg.Timeline,
		logger:   logging.Component("timeline-processor"),
	}
}

// ProcessBatch processes a fetch batch in order. Items are independent;
// a malformed body never fails the batch.
func (p *Processor) ProcessBatch(items []models.TimelineItem) []models.ProcessedItem {
	p.logger.Debug().Int("count", len(items)).Msg("processing batch")

	out := make([]models.ProcessedItem, 0, len(items))
	for _, item := range items {
		out = append(out, p.ProcessItem(item))
	}
	return out
}

// ProcessItem builds the renderable record for one item. Email bodies go
// through the thread reduction engine and both buckets get bare URLs
// rewritten into anchors; other categories keep their body as-is and
// skip straight to preview generation.
func (p *Processor) ProcessItem(item models.TimelineItem) models.ProcessedItem {
	out := models.ProcessedItem{
		ID:             item.ID,
		Category:       item.Category,
		Body:           item.Body,
		Expanded:       p.timeline.DefaultExpanded,
		HistoryVisible: p.timeline.DefaultHistoryVisible,
		IsEmail:        item.Category == models.CategoryEmail,
		IsPublic:       item.Category == models.CategoryPublic,
		IsInternal:     item.Category == models.CategoryInternal,
		IsSystem:       item.Category == models.CategorySystem,
		IsOutgoing:     item.IsOutgoing,
		StyleClass:     styleClass(item),
		CreatedDate:    item.CreatedDate,
		Author:         item.Author,
		Subject:        item.Subject,
	}

	if item.Category == models.CategoryEmail {
		result := thread.Reduce(item.Body, thread.Options{
			CharacterBudget: p.engine.CharacterBudget,
		})
		out.Body = thread.Linkify(result.NewContent)
		out.HistoryBody = thread.Linkify(result.HistoryContent)
		out.HasHistory = result.HasHistory

		itemLog := logging.WithItem(item.ID)
		itemLog.Debug().
			Bool("has_history", out.HasHistory).
			Msg("reduced email body")
	}

	out.Preview = p.Preview(out.Body)
	return out
}

// Preview flattens HTML to a single plain-text line: markup stripped,
// whitespace runs collapsed, trimmed and capped. An empty result gets
// the configured placeholder.
func (p *Processor) Preview(body string) string {
	text := html2text.HTML2Text(body)
	text = reWhitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	limit := p.engine.PreviewLength
	if runes := []rune(text); len(runes) > limit {
		text = string(runes[:limit])
	}

	if text == "" {
		return p.engine.PreviewPlaceholder
	}
	return text
}

// styleClass derives the rendering style directive for an item row.
func styleClass(item models.TimelineItem) string {
	classes := []string{"timeline-item", "timeline-" + string(item.Category)}
	if item.IsInternal {
		classes = append(classes, "timeline-internal-only")
	}
	if item.IsOutgoing {
		classes = append(classes, "timeline-outgoing")
	} else {
		classes = append(classes, "timeline-incoming")
	}
	return strings.Join(classes, " ")
}
