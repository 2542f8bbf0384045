package handlers

import (
	"errors"
	"log"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
)

func loadSchedules(store storage.Store) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := store.Get(storage.KeySchedules, &schedules)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Schedule{}, nil
	}
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func saveSchedules(store storage.Store, schedules []models.Schedule) error {
	return store.Put(storage.KeySchedules, schedules)
}

// rearm recomputes tomorrow's reminder. Called after every mutation of the
// schedule set or the reminder settings; same-day duplicates are absorbed by
// the scheduler itself.
func rearm(store storage.Store, scheduler *services.ReminderScheduler) {
	schedules, err := loadSchedules(store)
	if err != nil {
		log.Printf("⚠️ Skipping reminder re-arm, schedules unavailable: %v", err)
		return
	}
	scheduler.Arm(schedules, services.ReminderHour(store))
}

func scheduleResponse(s models.Schedule, ref time.Time) models.ScheduleResponse {
	return models.ScheduleResponse{
		ID:             s.ID,
		Type:           s.Type,
		Name:           s.Name,
		Days:           s.Days,
		Color:          s.Color,
		Icon:           s.Icon,
		NextCollection: models.DayKey(services.NextOccurrence(s, ref)),
	}
}

func scheduleResponses(schedules []models.Schedule, ref time.Time) []models.ScheduleResponse {
	responses := make([]models.ScheduleResponse, len(schedules))
	for i, s := range schedules {
		responses[i] = scheduleResponse(s, ref)
	}
	return responses
}
