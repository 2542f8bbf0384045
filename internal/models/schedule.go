package models

import (
	"sort"
	"strings"
)

// WasteCategory is the closed set of pickup categories a household can track.
type WasteCategory string

const (
	CategoryOrganic WasteCategory = "organic"
	CategoryPlastic WasteCategory = "plastic"
	CategoryPaper   WasteCategory = "paper"
	CategoryGlass   WasteCategory = "glass"
	CategoryMixed   WasteCategory = "mixed"
	CategoryCustom  WasteCategory = "custom"
)

// CategoryDefault holds the display defaults applied when a built-in category
// is created without an explicit name, color or icon.
type CategoryDefault struct {
	Name  string
	Color string
	Icon  string
}

var categoryDefaults = map[WasteCategory]CategoryDefault{
	CategoryOrganic: {Name: "Organico", Color: "green", Icon: "🗑️"},
	CategoryPlastic: {Name: "Plastica", Color: "blue", Icon: "♻️"},
	CategoryPaper:   {Name: "Carta", Color: "yellow", Icon: "📄"},
	CategoryGlass:   {Name: "Vetro", Color: "purple", Icon: "🫙"},
	CategoryMixed:   {Name: "Indifferenziato", Color: "gray", Icon: "🗑️"},
}

// DefaultsFor returns the display defaults for a built-in category.
// The second return value is false for custom (no defaults exist).
func DefaultsFor(category WasteCategory) (CategoryDefault, bool) {
	d, ok := categoryDefaults[category]
	return d, ok
}

// Schedule is a recurring pickup rule: a waste category collected on a fixed
// set of weekdays. The next occurrence is always derived from Days and the
// current date, never stored.
type Schedule struct {
	ID    string        `json:"id"`
	Type  WasteCategory `json:"type"`
	Name  string        `json:"name"`
	Days  []int         `json:"days"` // 0 = Sunday ... 6 = Saturday
	Color string        `json:"color"`
	Icon  string        `json:"icon"`
}

// ScheduleResponse is what we send to the client, with the derived next
// occurrence as an ISO date.
type ScheduleResponse struct {
	ID             string        `json:"id"`
	Type           WasteCategory `json:"type"`
	Name           string        `json:"name"`
	Days           []int         `json:"days"`
	Color          string        `json:"color"`
	Icon           string        `json:"icon"`
	NextCollection string        `json:"nextCollection"` // YYYY-MM-DD
}

// CreateScheduleRequest is the request body for POST /api/schedules
type CreateScheduleRequest struct {
	Type  WasteCategory `json:"type"`
	Name  string        `json:"name"`
	Days  []int         `json:"days"`
	Color string        `json:"color"`
	Icon  string        `json:"icon"`
}

// UpdateScheduleRequest is the request body for PATCH /api/schedules/:id
type UpdateScheduleRequest struct {
	Name  *string `json:"name,omitempty"`
	Days  *[]int  `json:"days,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// ToSchedule builds a Schedule from a creation request, filling in category
// defaults for anything the request leaves blank.
func (r *CreateScheduleRequest) ToSchedule(id string) Schedule {
	s := Schedule{
		ID:    id,
		Type:  r.Type,
		Name:  strings.TrimSpace(r.Name),
		Days:  r.Days,
		Color: r.Color,
		Icon:  strings.TrimSpace(r.Icon),
	}
	if d, ok := categoryDefaults[r.Type]; ok {
		if s.Name == "" {
			s.Name = d.Name
		}
		if s.Color == "" {
			s.Color = d.Color
		}
		if s.Icon == "" {
			s.Icon = d.Icon
		}
	}
	s.Normalize()
	return s
}

// Normalize canonicalizes the weekday set: ascending order, no duplicates.
func (s *Schedule) Normalize() {
	if len(s.Days) == 0 {
		return
	}
	sort.Ints(s.Days)
	out := s.Days[:0]
	for i, d := range s.Days {
		if i == 0 || d != s.Days[i-1] {
			out = append(out, d)
		}
	}
	s.Days = out
}

// Validate rejects schedules the rest of the system must never see: an empty
// weekday set, weekdays outside 0..6, an unknown category, or a custom
// category without its own name and icon.
func (s *Schedule) Validate() error {
	switch s.Type {
	case CategoryOrganic, CategoryPlastic, CategoryPaper, CategoryGlass, CategoryMixed:
	case CategoryCustom:
		if s.Name == "" {
			return &ValidationError{Field: "name", Reason: "custom category requires a name"}
		}
		if s.Icon == "" {
			return &ValidationError{Field: "icon", Reason: "custom category requires an icon"}
		}
	default:
		return &ValidationError{Field: "type", Reason: "unknown waste category"}
	}
	if len(s.Days) == 0 {
		return &ValidationError{Field: "days", Reason: "at least one weekday is required"}
	}
	for _, d := range s.Days {
		if d < 0 || d > 6 {
			return &ValidationError{Field: "days", Reason: "weekdays must be in 0..6"}
		}
	}
	if s.Name == "" {
		return &ValidationError{Field: "name", Reason: "name is required"}
	}
	return nil
}
