package timeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/caseline/caseline/internal/models"
)

// Source errors.
var (
	ErrInvalidItem = errors.New("invalid timeline item")
)

// Source is the data-fetch collaborator: a paginated feed of timeline
// items for one case, plus the new-items check used by the poller.
type Source interface {
	// FetchPage returns items created strictly before the reference
	// timestamp, newest first, at most limit of them. The boolean is
	// true iff the page came back full, meaning more items may exist.
	FetchPage(ctx context.Context, before time.Time, limit int) ([]models.TimelineItem, bool, error)

	// HasNewSince reports whether items newer than t exist.
	HasNewSince(ctx context.Context, t time.Time) (bool, error)
}

// MemorySource is an in-process Source backed by a slice. It serves the
// CLI and tests; the production collaborator lives behind the same
// interface in the CRM platform.
type MemorySource struct {
	mu    sync.RWMutex
	items []models.TimelineItem
}

// NewMemorySource creates a MemorySource with the given items. Every
// item must carry an identifier; the engine downstream assumes IDs are
// present and stable.
func NewMemorySource(items ...models.TimelineItem) (*MemorySource, error) {
	s := &MemorySource{}
	for _, item := range items {
		if err := s.add(item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends an item to the source.
func (s *MemorySource) Add(item models.TimelineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(item)
}

func (s *MemorySource) add(item models.TimelineItem) error {
	if err := item.Validate(); err != nil {
		return errors.Join(ErrInvalidItem, err)
	}
	s.items = append(s.items, item)
	return nil
}

// FetchPage implements Source.
func (s *MemorySource) FetchPage(ctx context.Context, before time.Time, limit int) ([]models.TimelineItem, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if limit <= 0 {
		return nil, false, errors.New("limit must be positive")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var page []models.TimelineItem
	for _, item := range s.items {
		if before.IsZero() || item.CreatedDate.Before(before) {
			page = append(page, item)
		}
	}
	sort.SliceStable(page, func(i, j int) bool {
		return page[i].CreatedDate.After(page[j].CreatedDate)
	})

	if len(page) > limit {
		page = page[:limit]
	}
	hasMore := len(page) == limit
	return page, hasMore, nil
}

// HasNewSince implements Source.
func (s *MemorySource) HasNewSince(ctx context.Context, t time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.CreatedDate.After(t) {
			return true, nil
		}
	}
	return false, nil
}
