package services

import (
	"bytes"
	"fmt"
	"time"

	"ecotracker-backend/internal/models"

	"github.com/emersion/go-ical"
)

// calendarWeeksAhead bounds the ICS feed; subscribed calendars refresh, so a
// rolling window is enough.
const calendarWeeksAhead = 4

// BuildCalendar renders upcoming pickups as an iCalendar document with one
// all-day event per occurrence, starting at from's day.
func BuildCalendar(schedules []models.Schedule, from time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//EcoTracker//Raccolta Differenziata//IT")

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	stamp := time.Now().UTC()

	for _, s := range schedules {
		for offset := 0; offset < calendarWeeksAhead*7; offset++ {
			day := start.AddDate(0, 0, offset)
			if !DueOn(s, day) {
				continue
			}
			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@ecotracker", s.ID, models.DayKey(day)))
			event.Props.SetText(ical.PropSummary, fmt.Sprintf("%s %s", s.Icon, s.Name))
			event.Props.SetText(ical.PropDescription, fmt.Sprintf("Raccolta: %s", s.Name))
			event.Props.SetDate(ical.PropDateTimeStart, day)
			event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
			event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
			cal.Children = append(cal.Children, event.Component)
		}
	}
	return cal
}

// emptyCalendarBody is served when no pickups are scheduled. The encoder
// rejects a VCALENDAR without components, but subscribed calendar apps still
// expect a well-formed document.
const emptyCalendarBody = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//EcoTracker//Raccolta Differenziata//IT\r\n" +
	"END:VCALENDAR\r\n"

// SerializeCalendar writes the calendar in iCalendar text format.
func SerializeCalendar(cal *ical.Calendar) (string, error) {
	if len(cal.Children) == 0 {
		return emptyCalendarBody, nil
	}
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("encode calendar: %w", err)
	}
	return buf.String(), nil
}
