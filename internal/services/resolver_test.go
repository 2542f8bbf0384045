package services

import (
	"testing"
	"time"

	"ecotracker-backend/internal/models"
)

// Wednesday
var refWed = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name string
		days []int
		ref  time.Time
		want int
	}{
		{"due today counts as zero", []int{3}, refWed, 0},
		{"tomorrow", []int{4}, refWed, 1},
		{"wraps past the weekend", []int{1}, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 3},
		{"picks the nearest of several days", []int{1, 4}, refWed, 1},
		{"empty set falls back to a week", nil, refWed, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.days, tt.ref); got != tt.want {
				t.Errorf("DaysUntil(%v, %s) = %d, want %d", tt.days, tt.ref.Weekday(), got, tt.want)
			}
		})
	}
}

func TestDaysUntilNext(t *testing.T) {
	tests := []struct {
		name string
		days []int
		ref  time.Time
		want int
	}{
		{"today resolves to next week", []int{3}, refWed, 7},
		{"tomorrow", []int{4}, refWed, 1},
		{"monday seen from friday", []int{1}, time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC), 3},
		{"nearest of monday and thursday from wednesday", []int{1, 4}, refWed, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilNext(tt.days, tt.ref); got != tt.want {
				t.Errorf("DaysUntilNext(%v, %s) = %d, want %d", tt.days, tt.ref.Weekday(), got, tt.want)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	s := models.Schedule{ID: "a", Type: models.CategoryOrganic, Name: "Organico", Days: []int{1, 4}}

	got := NextOccurrence(s, refWed)
	if models.DayKey(got) != "2024-01-04" {
		t.Errorf("NextOccurrence from Wednesday = %s, want 2024-01-04", models.DayKey(got))
	}

	fri := time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC)
	got = NextOccurrence(s, fri)
	if models.DayKey(got) != "2024-01-08" {
		t.Errorf("NextOccurrence from Friday = %s, want 2024-01-08", models.DayKey(got))
	}

	// Due on the reference day itself: strictly future means next week.
	mon := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	got = NextOccurrence(s, mon)
	if models.DayKey(got) != "2024-01-04" {
		t.Errorf("NextOccurrence from Monday = %s, want 2024-01-04", models.DayKey(got))
	}
}

func TestDueTodayAndTomorrow(t *testing.T) {
	schedules := []models.Schedule{
		{ID: "a", Name: "Organico", Days: []int{1, 4}},
		{ID: "b", Name: "Plastica", Days: []int{3}},
		{ID: "c", Name: "Carta", Days: []int{5}},
	}

	today := DueToday(schedules, refWed)
	if len(today) != 1 || today[0].Name != "Plastica" {
		t.Fatalf("DueToday = %+v, want only Plastica", today)
	}

	tomorrow := DueTomorrow(schedules, refWed)
	if len(tomorrow) != 1 || tomorrow[0].Name != "Organico" {
		t.Fatalf("DueTomorrow = %+v, want only Organico", tomorrow)
	}

	none := DueTomorrow(schedules, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))
	if len(none) != 0 {
		t.Fatalf("DueTomorrow on Saturday = %+v, want empty", none)
	}
}
