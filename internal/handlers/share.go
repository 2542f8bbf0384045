package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/internal/websocket"
	"ecotracker-backend/pkg/utils"
)

type ShareCodeResponse struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

type ShareTokenResponse struct {
	Token string `json:"token"`
}

type ImportRequest struct {
	Code string `json:"code"`
}

type ImportResponse struct {
	Imported  int         `json:"imported"`
	Message   string      `json:"message"`
	Schedules interface{} `json:"schedules"`
}

// CreateShareCode snapshots the current collection behind a short family code.
// The full transfer token is returned too, for channels where pasting a long
// string is fine.
func CreateShareCode(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}
		if len(schedules) == 0 {
			utils.Error(w, http.StatusBadRequest, "Nessun calendario da condividere")
			return
		}

		token := services.EncodeSchedules(schedules, time.Now())
		code := services.GenerateFamilyCode()
		if err := store.Put(storage.ShareCodeKey(code), token); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save share code")
			return
		}

		utils.JSON(w, http.StatusCreated, ShareCodeResponse{Code: code, Token: token})
	}
}

// GetShareToken returns the raw transfer token without minting a family code.
func GetShareToken(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}
		if len(schedules) == 0 {
			utils.Error(w, http.StatusBadRequest, "Nessun calendario da condividere")
			return
		}
		utils.Success(w, ShareTokenResponse{Token: services.EncodeSchedules(schedules, time.Now())})
	}
}

// ImportShareCode accepts either a 6-character family code or a full transfer
// token. Family codes resolve through the store first; anything else is
// treated as a token directly.
func ImportShareCode(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		input := strings.TrimSpace(req.Code)
		if input == "" {
			utils.Error(w, http.StatusBadRequest, "Codice mancante")
			return
		}

		token := input
		var stored string
		if err := store.Get(storage.ShareCodeKey(strings.ToUpper(input)), &stored); err == nil {
			token = stored
		}

		shared, err := services.DecodeToken(token)
		if errors.Is(err, services.ErrInvalidCode) {
			utils.Error(w, http.StatusBadRequest, "Codice non valido o corrotto")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to import schedules")
			return
		}

		imported := services.MaterializeSchedules(shared)
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}
		schedules = append(schedules, imported...)
		if err := saveSchedules(store, schedules); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		now := time.Now()
		hub.Broadcast("schedules_updated", scheduleResponses(schedules, now))
		utils.Success(w, ImportResponse{
			Imported:  len(imported),
			Message:   "Calendario importato",
			Schedules: scheduleResponses(imported, now),
		})
	}
}
