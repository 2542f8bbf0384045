package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ecotracker-backend/internal/services"
	"ecotracker-backend/internal/websocket"
	"ecotracker-backend/pkg/utils"
)

// ConfirmCollectionRequest names the category being taken out, for the
// history log. The field is optional.
type ConfirmCollectionRequest struct {
	Category string `json:"category"`
}

func ConfirmCollection(engine *services.StreakEngine, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmCollectionRequest
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&req)
		}

		result, err := engine.Confirm(req.Category)
		if errors.Is(err, services.ErrAlreadyConfirmed) {
			utils.Error(w, http.StatusConflict, "Hai già confermato la raccolta di oggi")
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to confirm collection")
			return
		}

		hub.Broadcast("collection_confirmed", result)
		for _, a := range result.Unlocked {
			hub.Broadcast("achievement_unlocked", a)
		}
		utils.Success(w, result)
	}
}

// StatsResponse decorates the raw stats record with display helpers.
type StatsResponse struct {
	TotalCollections int      `json:"totalCollections"`
	Streak           int      `json:"streak"`
	StreakEmoji      string   `json:"streakEmoji"`
	BestStreak       int      `json:"bestStreak"`
	LastCollection   string   `json:"lastCollection,omitempty"`
	Achievements     []string `json:"achievements"`
	Level            int      `json:"level"`
	Points           int      `json:"points"`
	PointsToNext     int      `json:"pointsToNextLevel"`
}

func GetStats(engine *services.StreakEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := engine.Stats()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load stats")
			return
		}
		best, err := engine.BestStreak()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load stats")
			return
		}

		utils.Success(w, StatsResponse{
			TotalCollections: stats.TotalCollections,
			Streak:           stats.Streak,
			StreakEmoji:      services.StreakEmoji(stats.Streak),
			BestStreak:       best,
			LastCollection:   stats.LastCollection,
			Achievements:     stats.Achievements,
			Level:            stats.Level,
			Points:           stats.Points,
			PointsToNext:     100 - stats.Points%100,
		})
	}
}

func GetHistory(engine *services.StreakEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history, err := engine.History()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "Failed to load history")
			return
		}

		utils.Success(w, map[string]interface{}{
			"entries": history,
			"days":    services.LastThirtyDays(history, time.Now()),
		})
	}
}
