package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/internal/websocket"
	"ecotracker-backend/pkg/utils"
)

type ReminderTimeRequest struct {
	Hour int `json:"hour"`
}

type ReminderTimeResponse struct {
	Hour  int    `json:"hour"`
	Armed bool   `json:"armed"`
	Label string `json:"label"`
}

func GetReminderTime(store storage.Store, scheduler *services.ReminderScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hour := services.ReminderHour(store)
		utils.Success(w, ReminderTimeResponse{
			Hour:  hour,
			Armed: scheduler.Armed(),
			Label: time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04"),
		})
	}
}

func UpdateReminderTime(store storage.Store, scheduler *services.ReminderScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReminderTimeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Hour < 0 || req.Hour > 23 {
			utils.Error(w, http.StatusBadRequest, "Hour must be between 0 and 23")
			return
		}

		if err := store.Put(storage.KeyReminderTime, req.Hour); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save reminder time")
			return
		}

		// A changed hour invalidates the same-day guard, then the reminder is
		// recomputed immediately with the new slot.
		scheduler.Reconfigure()
		rearm(store, scheduler)

		utils.Success(w, ReminderTimeResponse{
			Hour:  req.Hour,
			Armed: scheduler.Armed(),
			Label: time.Date(2000, 1, 1, req.Hour, 0, 0, 0, time.UTC).Format("15:04"),
		})
	}
}

type VacationResponse struct {
	Window *models.VacationWindow `json:"window"`
	Active bool                   `json:"active"`
}

func GetVacation(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var window models.VacationWindow
		err := store.Get(storage.KeyVacation, &window)
		if errors.Is(err, storage.ErrNotFound) {
			utils.Success(w, VacationResponse{})
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load vacation window")
			return
		}
		utils.Success(w, VacationResponse{Window: &window, Active: window.Active(time.Now())})
	}
}

func SetVacation(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var window models.VacationWindow
		if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := window.Validate(); err != nil {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := store.Put(storage.KeyVacation, window); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save vacation window")
			return
		}

		if window.Active(time.Now()) {
			scheduler.CancelAll()
		}
		hub.Broadcast("vacation_updated", VacationResponse{Window: &window, Active: window.Active(time.Now())})
		utils.Success(w, VacationResponse{Window: &window, Active: window.Active(time.Now())})
	}
}

func DeleteVacation(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Delete(storage.KeyVacation); err != nil && !errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, http.StatusInternalServerError, "Failed to clear vacation window")
			return
		}

		scheduler.Reconfigure()
		rearm(store, scheduler)
		hub.Broadcast("vacation_updated", VacationResponse{})
		w.WriteHeader(http.StatusNoContent)
	}
}
