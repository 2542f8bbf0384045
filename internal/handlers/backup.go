package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/storage"
	"ecotracker-backend/internal/websocket"
	"ecotracker-backend/pkg/utils"
)

// maxBackupSize caps uploaded backup files at 1MB, far above any realistic
// household collection.
const maxBackupSize = 1 << 20

// ExportBackup streams the collection as a downloadable JSON file.
func ExportBackup(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		now := time.Now()
		filename := fmt.Sprintf("ecotracker-backup-%s.json", models.DayKey(now))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		utils.JSON(w, http.StatusOK, services.NewBackupDocument(schedules, now))
	}
}

// ImportBackup restores from an exported file, replacing the whole collection.
func ImportBackup(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		schedules, err := services.ParseBackupDocument(raw)
		if errors.Is(err, services.ErrInvalidCode) {
			utils.Error(w, http.StatusBadRequest, "File di backup non valido")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to import backup")
			return
		}

		if err := saveSchedules(store, schedules); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		now := time.Now()
		hub.Broadcast("schedules_updated", scheduleResponses(schedules, now))
		utils.Success(w, map[string]interface{}{
			"imported":  len(schedules),
			"message":   "Backup ripristinato",
			"schedules": scheduleResponses(schedules, now),
		})
	}
}

// SaveLocalBackup snapshots the current collection server-side, so a restore
// is possible without having kept the exported file.
func SaveLocalBackup(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		schedules, err := loadSchedules(store)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load schedules")
			return
		}

		doc := services.NewBackupDocument(schedules, time.Now())
		if err := store.Put(storage.KeyLocalBackup, doc); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save backup")
			return
		}
		utils.Success(w, doc)
	}
}

// RestoreLocalBackup replaces the collection with the server-side snapshot.
func RestoreLocalBackup(store storage.Store, scheduler *services.ReminderScheduler, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc services.BackupDocument
		err := store.Get(storage.KeyLocalBackup, &doc)
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, http.StatusNotFound, "Nessun backup salvato")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load backup")
			return
		}

		if err := saveSchedules(store, doc.Schedules); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to save schedules")
			return
		}

		rearm(store, scheduler)
		now := time.Now()
		hub.Broadcast("schedules_updated", scheduleResponses(doc.Schedules, now))
		utils.Success(w, map[string]interface{}{
			"restored":  len(doc.Schedules),
			"message":   "Backup ripristinato",
			"schedules": scheduleResponses(doc.Schedules, now),
		})
	}
}
