package models

import "time"

// VacationWindow is a date range during which reminders are suppressed.
// At most one window is stored at a time.
type VacationWindow struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// Validate rejects windows with unparseable dates or end not after start.
func (v *VacationWindow) Validate() error {
	start, err := time.ParseInLocation(DayKeyLayout, v.Start, time.Local)
	if err != nil {
		return &ValidationError{Field: "start", Reason: "date must be YYYY-MM-DD"}
	}
	end, err := time.ParseInLocation(DayKeyLayout, v.End, time.Local)
	if err != nil {
		return &ValidationError{Field: "end", Reason: "date must be YYYY-MM-DD"}
	}
	if !end.After(start) {
		return &ValidationError{Field: "end", Reason: "end date must be after start date"}
	}
	return nil
}

// Active reports whether t falls inside the window, inclusive on both ends.
// Comparison is at day granularity in local time.
func (v *VacationWindow) Active(t time.Time) bool {
	day := DayKey(t)
	return day >= v.Start && day <= v.End
}
