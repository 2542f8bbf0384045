package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/internal/websocket"
	"ecotracker-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func GetSchedules(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}
		utils.Success(w, scheduleResponses(schedules, time.Now()))
	}
}

func CreateSchedule(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		schedule := req.ToSchedule(uuid.New().String())
		if err := schedule.Validate(); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}
		schedules = append(schedules, schedule)
		if err := saveSchedules(store, schedules); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		hub.Broadcast("schedules_updated", scheduleResponses(schedules, time.Now()))
		utils.JSON(w, http.StatusCreated, scheduleResponse(schedule, time.Now()))
	}
}

func UpdateSchedule(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		var req models.UpdateScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		idx := -1
		for i := range schedules {
			if schedules[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			utils.Error(w, http.StatusNotFound, "Schedule not found")
			return
		}

		updated := schedules[idx]
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.Days != nil {
			updated.Days = *req.Days
		}
		if req.Color != nil {
			updated.Color = *req.Color
		}
		if req.Icon != nil {
			updated.Icon = *req.Icon
		}
		updated.Normalize()
		if err := updated.Validate(); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		schedules[idx] = updated
		if err := saveSchedules(store, schedules); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		hub.Broadcast("schedules_updated", scheduleResponses(schedules, time.Now()))
		utils.Success(w, scheduleResponse(updated, time.Now()))
	}
}

func DeleteSchedule(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "Bad Request")
			return
		}

		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		remaining := make([]models.Schedule, 0, len(schedules))
		for _, s := range schedules {
			if s.ID != id {
				remaining = append(remaining, s)
			}
		}
		if len(remaining) == len(schedules) {
			utils.Error(w, http.StatusNotFound, "Schedule not found")
			return
		}

		if err := saveSchedules(store, remaining); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		hub.Broadcast("schedules_updated", scheduleResponses(remaining, time.Now()))
		w.WriteHeader(http.StatusNoContent)
	}
}
