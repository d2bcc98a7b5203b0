package timeline

import (
	"errors"
	"sort"
	"sync"

	"github.com/caseline/caseline/internal/events"
	"github.com/caseline/caseline/internal/models"
)

// View errors.
var (
	ErrItemNotFound = errors.New("timeline item not found")
)

// View holds processed items keyed by their stable identifier and
// recomputes the filtered, sorted rendering order on demand. Toggle
// updates replace the stored record immutably; nothing is re-parsed.
type View struct {
	mu        sync.RWMutex
	items     map[string]models.ProcessedItem
	order     []string
	publisher *events.Publisher
}

// NewView creates an empty View.
func NewView() *View {
	return &View{items: make(map[string]models.ProcessedItem)}
}

// NewViewWithPublisher creates an empty View that announces refreshes
// and per-item toggle flips on the publisher.
func NewViewWithPublisher(publisher *events.Publisher) *View {
	v := NewView()
	v.publisher = publisher
	return v
}

// Replace swaps in a freshly processed batch, discarding prior records
// and any toggle state they carried.
func (v *View) Replace(items []models.ProcessedItem) {
	v.mu.Lock()
	v.items = make(map[string]models.ProcessedItem, len(items))
	v.order = v.order[:0]
	for _, item := range items {
		if _, seen := v.items[item.ID]; !seen {
			v.order = append(v.order, item.ID)
		}
		v.items[item.ID] = item
	}
	v.mu.Unlock()

	v.publish(events.Event{Type: events.TypeRefreshed})
}

// Append merges an additional page into the view, keeping existing
// records (and their toggle state) for IDs already present.
func (v *View) Append(items []models.ProcessedItem) {
	v.mu.Lock()
	for _, item := range items {
		if _, seen := v.items[item.ID]; seen {
			continue
		}
		v.items[item.ID] = item
		v.order = append(v.order, item.ID)
	}
	v.mu.Unlock()

	v.publish(events.Event{Type: events.TypeRefreshed})
}

// Len returns the number of records held.
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.items)
}

// Get returns the record for an ID.
func (v *View) Get(id string) (models.ProcessedItem, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	item, ok := v.items[id]
	return item, ok
}

// ToggleExpanded flips the expand/collapse flag for one item and returns
// the replacement record.
func (v *View) ToggleExpanded(id string) (models.ProcessedItem, error) {
	return v.update(id, func(item models.ProcessedItem) models.ProcessedItem {
		return item.WithExpanded(!item.Expanded)
	})
}

// ToggleHistory flips the history-visible flag for one item and returns
// the replacement record. Items without history are left unchanged.
func (v *View) ToggleHistory(id string) (models.ProcessedItem, error) {
	return v.update(id, func(item models.ProcessedItem) models.ProcessedItem {
		if !item.HasHistory {
			return item
		}
		return item.WithHistoryVisible(!item.HistoryVisible)
	})
}

func (v *View) update(id string, fn func(models.ProcessedItem) models.ProcessedItem) (models.ProcessedItem, error) {
	v.mu.Lock()
	item, ok := v.items[id]
	if !ok {
		v.mu.Unlock()
		return models.ProcessedItem{}, ErrItemNotFound
	}
	next := fn(item)
	v.items[id] = next
	v.mu.Unlock()

	if next != item {
		v.publish(events.Event{Type: events.TypeItemToggled, ItemID: id})
	}
	return next, nil
}

// publish emits an event when a publisher is attached. Publishing
// happens outside the view lock; handlers may read the view back.
func (v *View) publish(event events.Event) {
	if v.publisher != nil {
		v.publisher.Publish(event)
	}
}

// Visible returns the records passing the category filter, ordered by
// creation timestamp in the given direction. Ties keep insertion order
// (the sort is stable).
func (v *View) Visible(vis models.CategoryVisibility, dir models.SortDirection) []models.ProcessedItem {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.ProcessedItem, 0, len(v.order))
	for _, id := range v.order {
		item := v.items[id]
		if vis.Includes(item.Category) {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == models.SortOldestFirst {
			return out[i].CreatedDate.Before(out[j].CreatedDate)
		}
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out
}
