package services

import (
	"strings"
	"testing"
	"time"

	"ecotracker-backend/internal/models"
)

func TestBuildCalendar(t *testing.T) {
	schedules := []models.Schedule{
		{ID: "a", Type: models.CategoryOrganic, Name: "Organico", Days: []int{1}, Icon: "🗑️"},
	}
	// Monday
	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cal := BuildCalendar(schedules, from)
	// 4 weeks starting on a due day: 4 Mondays in the window.
	if len(cal.Children) != 4 {
		t.Fatalf("events = %d, want 4", len(cal.Children))
	}

	body, err := SerializeCalendar(cal)
	if err != nil {
		t.Fatalf("SerializeCalendar: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"SUMMARY:🗑️ Organico",
		"UID:a-2024-01-01@ecotracker",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("serialized calendar missing %q", want)
		}
	}
}

func TestSerializeCalendarWithoutEvents(t *testing.T) {
	cal := BuildCalendar(nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if len(cal.Children) != 0 {
		t.Fatalf("events = %d, want none", len(cal.Children))
	}

	body, err := SerializeCalendar(cal)
	if err != nil {
		t.Fatalf("SerializeCalendar on empty calendar: %v", err)
	}
	if !strings.HasPrefix(body, "BEGIN:VCALENDAR") || !strings.Contains(body, "END:VCALENDAR") {
		t.Errorf("empty feed is not a well-formed document:\n%s", body)
	}
	if !strings.Contains(body, "VERSION:2.0") || !strings.Contains(body, "PRODID:") {
		t.Errorf("empty feed missing calendar metadata:\n%s", body)
	}
	if strings.Contains(body, "BEGIN:VEVENT") {
		t.Errorf("empty feed must not contain events:\n%s", body)
	}
}
