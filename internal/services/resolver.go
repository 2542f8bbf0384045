package services

import (
	"time"

	"ecotracker-backend/internal/models"
)

// DaysUntil returns the smallest offset d >= 0 such that ref's weekday plus d
// falls in days. Today counts: a schedule due on ref's own weekday yields 0.
// An empty weekday set (rejected by validation, but tolerated here) yields 7.
func DaysUntil(days []int, ref time.Time) int {
	wd := int(ref.Weekday())
	best := 7
	for _, d := range days {
		off := (d - wd + 7) % 7
		if off < best {
			best = off
		}
	}
	return best
}

// DaysUntilNext is the strictly-future variant used for display and sorting:
// the result is always in 1..7, so a pickup happening today resolves to the
// same weekday next week.
func DaysUntilNext(days []int, ref time.Time) int {
	wd := int(ref.Weekday())
	best := 7
	for _, d := range days {
		off := d - wd
		if off <= 0 {
			off += 7
		}
		if off < best {
			best = off
		}
	}
	return best
}

// NextOccurrence returns the next future calendar date on which the schedule's
// pickup happens, at day granularity in ref's location.
func NextOccurrence(s models.Schedule, ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return day.AddDate(0, 0, DaysUntilNext(s.Days, ref))
}

// DueOn reports whether the schedule's weekday set contains t's weekday.
func DueOn(s models.Schedule, t time.Time) bool {
	wd := int(t.Weekday())
	for _, d := range s.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// DueToday filters the schedules due on ref's own day.
func DueToday(schedules []models.Schedule, ref time.Time) []models.Schedule {
	due := make([]models.Schedule, 0)
	for _, s := range schedules {
		if DueOn(s, ref) {
			due = append(due, s)
		}
	}
	return due
}

// DueTomorrow filters the schedules due on the day after ref.
func DueTomorrow(schedules []models.Schedule, ref time.Time) []models.Schedule {
	return DueToday(schedules, ref.AddDate(0, 0, 1))
}
