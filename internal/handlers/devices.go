package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"ecotracker-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type RegisterTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"deviceType"`
}

// RegisterDeviceToken stores an FCM registration token so reminders reach the
// device. Re-registering the same token just refreshes it.
func RegisterDeviceToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			utils.Error(w, http.StatusServiceUnavailable, "Push notifications are not configured")
			return
		}

		var req RegisterTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			utils.Error(w, http.StatusBadRequest, "Token is required")
			return
		}
		switch req.DeviceType {
		case "ios", "android", "web":
		default:
			utils.Error(w, http.StatusBadRequest, "Device type must be ios, android or web")
			return
		}

		now := time.Now().Unix()
		_, err := db.Exec(`
			INSERT INTO device_tokens (token, device_type, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (token) DO UPDATE SET device_type = $2, updated_at = $3
		`, req.Token, req.DeviceType, now)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to register device token")
			return
		}

		utils.Message(w, http.StatusCreated, "Device registered")
	}
}

// UnregisterDeviceToken removes a registration, e.g. on logout or when FCM
// reports the token stale.
func UnregisterDeviceToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			utils.Error(w, http.StatusServiceUnavailable, "Push notifications are not configured")
			return
		}

		var req RegisterTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			utils.Error(w, http.StatusBadRequest, "Token is required")
			return
		}

		if _, err := db.Exec(`DELETE FROM device_tokens WHERE token = $1`, req.Token); err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to remove device token")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
