package handlers

import (
	"net/http"
	"time"

	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/pkg/utils"
)

// GetCalendarFeed serves the upcoming pickups as a subscribable ICS feed.
func GetCalendarFeed(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		cal := services.BuildCalendar(schedules, time.Now())
		body, err := services.SerializeCalendar(cal)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to build calendar")
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="ecotracker.ics"`)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}
}
