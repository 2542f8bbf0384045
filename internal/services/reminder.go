package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/storage"
)

// ErrNoPermission is reported when push delivery is unavailable (no messaging
// client or no registered devices). Arming simply refuses; it never retries.
var ErrNoPermission = errors.New("notification permission not granted")

const (
	// DefaultReminderHour is the evening slot used until the user picks one.
	DefaultReminderHour = 19

	// fallbackMorningHour is where a reminder lands when the evening slot for
	// today has already passed.
	fallbackMorningHour = 8

	reminderTitle = "♻️ Promemoria Raccolta Differenziata"
)

// Notifier is the external notification capability consumed by the scheduler.
type Notifier interface {
	HasPermission() bool
	Send(title, body string) error
}

// ReminderScheduler arms at most one deferred notification per day for the
// pickups due tomorrow. It owns the single pending timer: arming always
// cancels the previous one first, and re-arming within the same day is a
// no-op.
type ReminderScheduler struct {
	notifier       Notifier
	vacationActive func(time.Time) bool

	mu           sync.Mutex
	scheduled    bool
	pending      *time.Timer
	lastArmedDay string

	now func() time.Time
}

// NewReminderScheduler wires the scheduler to the notification capability and
// a vacation-window probe. Either may be nil (no pushes / no vacation state).
func NewReminderScheduler(notifier Notifier, vacationActive func(time.Time) bool) *ReminderScheduler {
	return &ReminderScheduler{
		notifier:       notifier,
		vacationActive: vacationActive,
		now:            time.Now,
	}
}

// Arm schedules tomorrow's reminder at reminderHour:00 today, shifting to
// tomorrow 08:00 when that moment has already passed. Calling it again on the
// same calendar day is a no-op, so it is safe to invoke from every schedule
// mutation and from the periodic sweep.
func (rs *ReminderScheduler) Arm(schedules []models.Schedule, reminderHour int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	now := rs.now()

	if rs.vacationActive != nil && rs.vacationActive(now) {
		rs.cancelLocked()
		return
	}
	if rs.notifier == nil || !rs.notifier.HasPermission() {
		return
	}

	today := models.DayKey(now)
	if rs.scheduled && rs.lastArmedDay == today {
		return // already armed today
	}

	rs.cancelLocked()
	rs.lastArmedDay = today

	due := DueTomorrow(schedules, now)
	if len(due) == 0 {
		return
	}

	fireAt := NextFireTime(now, reminderHour)
	names := make([]string, len(due))
	for i, s := range due {
		names[i] = s.Name
	}
	body := fmt.Sprintf("Ricordati di portare fuori: %s", strings.Join(names, ", "))

	rs.pending = time.AfterFunc(fireAt.Sub(now), func() {
		if err := rs.notifier.Send(reminderTitle, body); err != nil {
			log.Printf("❌ Failed to deliver reminder: %v", err)
		}
		rs.mu.Lock()
		rs.pending = nil
		rs.scheduled = false
		rs.mu.Unlock()
	})
	rs.scheduled = true

	log.Printf("🔔 Reminder armed for %s (%d categorie: %s)",
		fireAt.Format("2006-01-02 15:04"), len(due), strings.Join(names, ", "))
}

// Reconfigure drops all arming state so the next Arm call recomputes with the
// newly persisted hour. The pending timer is cancelled immediately; persisting
// the hour itself happens at the boundary that owns the store.
func (rs *ReminderScheduler) Reconfigure() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.cancelLocked()
	rs.lastArmedDay = ""
}

// CancelAll releases the pending timer and clears the armed flag. Used when
// entering vacation mode or when settings change.
func (rs *ReminderScheduler) CancelAll() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.cancelLocked()
}

// Armed reports whether a reminder is currently pending.
func (rs *ReminderScheduler) Armed() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.scheduled && rs.pending != nil
}

func (rs *ReminderScheduler) cancelLocked() {
	if rs.pending != nil {
		rs.pending.Stop()
		rs.pending = nil
	}
	rs.scheduled = false
}

// NextFireTime resolves the reminder target: today at hour:00, or tomorrow at
// the fixed morning fallback when that slot is already in the past.
func NextFireTime(now time.Time, hour int) time.Time {
	target := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !target.After(now) {
		next := now.AddDate(0, 0, 1)
		target = time.Date(next.Year(), next.Month(), next.Day(), fallbackMorningHour, 0, 0, 0, now.Location())
	}
	return target
}

// ReminderHour reads the configured hour, falling back to the default.
func ReminderHour(store storage.Store) int {
	var hour int
	if err := store.Get(storage.KeyReminderTime, &hour); err != nil {
		return DefaultReminderHour
	}
	if hour < 0 || hour > 23 {
		return DefaultReminderHour
	}
	return hour
}

// VacationActive reports whether a stored vacation window covers t.
func VacationActive(store storage.Store, t time.Time) bool {
	var window models.VacationWindow
	if err := store.Get(storage.KeyVacation, &window); err != nil {
		return false
	}
	return window.Active(t)
}
