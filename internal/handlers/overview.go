package handlers

import (
	"net/http"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/pkg/utils"
)

// OverviewResponse is the dashboard payload: what is due today and tomorrow,
// plus the full collection sorted by next occurrence on the client.
type OverviewResponse struct {
	Today         []models.ScheduleResponse `json:"today"`
	Tomorrow      []models.ScheduleResponse `json:"tomorrow"`
	TodayDate     string                    `json:"todayDate"`
	TomorrowDate  string                    `json:"tomorrowDate"`
	Schedules     []models.ScheduleResponse `json:"schedules"`
	VacationMode  bool                      `json:"vacationMode"`
	ReminderArmed bool                      `json:"reminderArmed"`
}

func GetOverview(store storage.Store, scheduler *services.ReminderScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		now := time.Now()
		utils.Success(w, OverviewResponse{
			Today:         scheduleResponses(services.DueToday(schedules, now), now),
			Tomorrow:      scheduleResponses(services.DueTomorrow(schedules, now), now),
			TodayDate:     models.DayKey(now),
			TomorrowDate:  models.DayKey(now.AddDate(0, 0, 1)),
			Schedules:     scheduleResponses(schedules, now),
			VacationMode:  services.VacationActive(store, now),
			ReminderArmed: scheduler.Armed(),
		})
	}
}
