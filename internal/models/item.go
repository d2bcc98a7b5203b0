// Package models defines the core domain types for Caseline.
package models

import (
	"time"
)

// Category classifies a timeline item by its origin.
type Category string

const (
	CategoryEmail    Category = "email"
	CategoryPublic   Category = "public"
	CategoryInternal Category = "internal"
	CategorySystem   Category = "system"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryEmail, CategoryPublic, CategoryInternal, CategorySystem:
		return true
	}
	return false
}

// TimelineItem is a single case activity record as fetched from the
// remote data service. Items are immutable once fetched.
type TimelineItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// Category classifies the item (email, public, internal, system).
	Category Category `json:"category"`

	// Body is the raw HTML body as delivered by the data service.
	Body string `json:"body"`

	// CreatedDate is when the item was created.
	CreatedDate time.Time `json:"created_date"`

	// IsOutgoing is true for items sent from the case owner's side.
	IsOutgoing bool `json:"is_outgoing"`

	// IsInternal marks items not visible to the customer.
	IsInternal bool `json:"is_internal"`

	// Author is the display name of the item's author, when known.
	Author string `json:"author,omitempty"`

	// Subject is the email subject or activity title, when known.
	Subject string `json:"subject,omitempty"`
}

// ParseResult is the outcome of reducing an email thread body into new
// content and quoted history.
type ParseResult struct {
	// NewContent is the HTML shown by default.
	NewContent string `json:"new_content"`

	// HistoryContent is the quoted/older HTML, hidden by default.
	HistoryContent string `json:"history_content"`

	// HasHistory is true when HistoryContent carries anything worth
	// toggling.
	HasHistory bool `json:"has_history"`
}

// ProcessedItem is a timeline item prepared for rendering. It embeds the
// parse result plus derived display fields. Instances are replaced, not
// mutated, when a toggle flips.
type ProcessedItem struct {
	// ID matches the source item's identifier so toggle updates target
	// the correct record.
	ID string `json:"id"`

	// Category is carried over from the source item.
	Category Category `json:"category"`

	// Body is the processed new-content HTML.
	Body string `json:"body"`

	// HistoryBody is the processed quoted-history HTML.
	HistoryBody string `json:"history_body"`

	// HasHistory is true when HistoryBody is renderable.
	HasHistory bool `json:"has_history"`

	// Preview is the plain-text summary line.
	Preview string `json:"preview"`

	// Expanded is the current expand/collapse state.
	Expanded bool `json:"expanded"`

	// HistoryVisible is the current history-toggle state.
	HistoryVisible bool `json:"history_visible"`

	// IsEmail, IsPublic, IsInternal and IsSystem are category flags for
	// the rendering layer.
	IsEmail    bool `json:"is_email"`
	IsPublic   bool `json:"is_public"`
	IsInternal bool `json:"is_internal"`
	IsSystem   bool `json:"is_system"`

	// IsOutgoing is carried over from the source item.
	IsOutgoing bool `json:"is_outgoing"`

	// StyleClass is the rendering style directive for the item row.
	StyleClass string `json:"style_class"`

	// CreatedDate is carried over from the source item.
	CreatedDate time.Time `json:"created_date"`

	// Author is carried over from the source item.
	Author string `json:"author,omitempty"`

	// Subject is carried over from the source item.
	Subject string `json:"subject,omitempty"`
}

// WithExpanded returns a copy of the item with the expand flag set.
func (p ProcessedItem) WithExpanded(expanded bool) ProcessedItem {
	p.Expanded = expanded
	return p
}

// WithHistoryVisible returns a copy of the item with the history flag set.
func (p ProcessedItem) WithHistoryVisible(visible bool) ProcessedItem {
	p.HistoryVisible = visible
	return p
}

// SortDirection orders a timeline view by creation timestamp.
type SortDirection string

const (
	SortNewestFirst SortDirection = "newest-first"
	SortOldestFirst SortDirection = "oldest-first"
)

// CategoryVisibility selects which categories a timeline view includes.
type CategoryVisibility struct {
	Email    bool `json:"email"`
	Public   bool `json:"public"`
	Internal bool `json:"internal"`
	System   bool `json:"system"`
}

// AllVisible returns visibility flags with every category enabled.
func AllVisible() CategoryVisibility {
	return CategoryVisibility{Email: true, Public: true, Internal: true, System: true}
}

// Includes reports whether the given category passes the filter.
func (v CategoryVisibility) Includes(c Category) bool {
	switch c {
	case CategoryEmail:
		return v.Email
	case CategoryPublic:
		return v.Public
	case CategoryInternal:
		return v.Internal
	case CategorySystem:
		return v.System
	}
	return false
}

// Validate checks that a fetched item carries the fields the pipeline
// requires. A missing identifier is fatal and must be rejected before
// the item reaches the reduction engine.
func (t *TimelineItem) Validate() error {
	v := &ValidationErrors{}

	if t.ID == "" {
		v.AddMessage("id", "identifier is required")
	}
	if t.Category == "" {
		v.AddMessage("category", "category is required")
	} else if !t.Category.Valid() {
		v.AddMessage("category", "must be one of email, public, internal, system")
	}
	if t.CreatedDate.IsZero() {
		v.AddMessage("created_date", "creation timestamp is required")
	}

	return v.Err()
}
