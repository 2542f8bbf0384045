package services

import (
	"errors"
	"fmt"
	"time"

	"ecotracker-backend/internal/models"
	"ecotracker-backend/internal/storage"
)

// ErrAlreadyConfirmed signals a second confirmation attempt on the same
// calendar day. No state changes.
var ErrAlreadyConfirmed = errors.New("collection already confirmed today")

const pointsPerCollection = 10

// StreakEngine is the state machine behind "mark pickup done": totals,
// consecutive-day streak, points/level and achievement unlocks, all persisted
// through the store.
type StreakEngine struct {
	store storage.Store
	now   func() time.Time
}

func NewStreakEngine(store storage.Store) *StreakEngine {
	return &StreakEngine{store: store, now: time.Now}
}

// ConfirmResult is everything the presentation layer needs to announce a
// confirmation: the committed stats plus the badges unlocked by this action.
type ConfirmResult struct {
	Stats        models.UserStats     `json:"stats"`
	BestStreak   int                  `json:"bestStreak"`
	PointsEarned int                  `json:"pointsEarned"`
	Unlocked     []models.Achievement `json:"unlocked"`
}

// Confirm records one completed pickup for today. At most one confirmation
// per calendar day is accepted; the streak grows only when yesterday was also
// confirmed, otherwise it restarts at 1.
func (e *StreakEngine) Confirm(categoryName string) (*ConfirmResult, error) {
	now := e.now()
	today := models.DayKey(now)
	yesterday := models.DayKey(now.AddDate(0, 0, -1))

	stats, err := e.Stats()
	if err != nil {
		return nil, err
	}
	if stats.LastCollection == today {
		return nil, ErrAlreadyConfirmed
	}

	stats.TotalCollections++
	if stats.LastCollection == yesterday {
		stats.Streak++
	} else {
		stats.Streak = 1
	}
	stats.Points += pointsPerCollection
	stats.Level = stats.Points/100 + 1
	stats.LastCollection = today

	unlocked := unlockAchievements(&stats)

	history, err := e.History()
	if err != nil {
		return nil, err
	}
	history = recordConfirmation(history, today, categoryName)

	best, err := e.BestStreak()
	if err != nil {
		return nil, err
	}
	bestImproved := stats.Streak > best
	if bestImproved {
		best = stats.Streak
	}

	// Stats carries the same-day guard, so it commits first: if a later write
	// fails, a retried confirmation is rejected instead of double-counting
	// today's history entry.
	if err := e.store.Put(storage.KeyUserStats, stats); err != nil {
		return nil, fmt.Errorf("save user stats: %w", err)
	}
	if bestImproved {
		if err := e.store.Put(storage.KeyBestStreak, best); err != nil {
			return nil, fmt.Errorf("save best streak: %w", err)
		}
	}
	if err := e.store.Put(storage.KeyHistory, history); err != nil {
		return nil, fmt.Errorf("save collection history: %w", err)
	}

	return &ConfirmResult{
		Stats:        stats,
		BestStreak:   best,
		PointsEarned: pointsPerCollection,
		Unlocked:     unlocked,
	}, nil
}

// Stats loads the current stats record, returning zero-value stats (level 1)
// when nothing was ever confirmed.
func (e *StreakEngine) Stats() (models.UserStats, error) {
	var stats models.UserStats
	err := e.store.Get(storage.KeyUserStats, &stats)
	if errors.Is(err, storage.ErrNotFound) {
		return models.UserStats{Level: 1, Achievements: []string{}}, nil
	}
	if err != nil {
		return stats, fmt.Errorf("load user stats: %w", err)
	}
	if stats.Level == 0 {
		stats.Level = 1
	}
	if stats.Achievements == nil {
		stats.Achievements = []string{}
	}
	return stats, nil
}

// History loads the full confirmation log.
func (e *StreakEngine) History() ([]models.CollectionHistoryEntry, error) {
	var history []models.CollectionHistoryEntry
	err := e.store.Get(storage.KeyHistory, &history)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.CollectionHistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection history: %w", err)
	}
	return history, nil
}

// BestStreak loads the persisted best-streak record.
func (e *StreakEngine) BestStreak() (int, error) {
	var best int
	err := e.store.Get(storage.KeyBestStreak, &best)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load best streak: %w", err)
	}
	return best, nil
}

// unlockAchievements appends any badge whose condition first holds now.
// Membership in stats.Achievements guards every badge, so each fires once.
func unlockAchievements(stats *models.UserStats) []models.Achievement {
	var unlocked []models.Achievement
	unlock := func(id string) {
		if stats.HasAchievement(id) {
			return
		}
		stats.Achievements = append(stats.Achievements, id)
		if a, ok := models.AchievementByID(id); ok {
			unlocked = append(unlocked, a)
		}
	}
	if stats.TotalCollections == 1 {
		unlock(models.AchievementFirstCollection)
	}
	if stats.Streak == 7 {
		unlock(models.AchievementWeekStreak)
	}
	if stats.TotalCollections == 50 {
		unlock(models.AchievementEcoWarrior)
	}
	return unlocked
}

// recordConfirmation updates today's history entry in place, or appends one.
func recordConfirmation(history []models.CollectionHistoryEntry, day, categoryName string) []models.CollectionHistoryEntry {
	for i := range history {
		if history[i].Date == day {
			history[i].Count++
			history[i].Types = append(history[i].Types, categoryName)
			return history
		}
	}
	return append(history, models.CollectionHistoryEntry{
		Date:  day,
		Count: 1,
		Types: []string{categoryName},
	})
}

// StreakEmoji maps a streak length to its display tier.
func StreakEmoji(streak int) string {
	switch {
	case streak >= 30:
		return "🔥🔥🔥"
	case streak >= 14:
		return "🔥🔥"
	case streak >= 7:
		return "🔥"
	case streak >= 3:
		return "✨"
	default:
		return "⭐"
	}
}

// DaySummary is one cell of the 30-day visualization.
type DaySummary struct {
	Date          string `json:"date"`
	Count         int    `json:"count"`
	HasCollection bool   `json:"hasCollection"`
	IsToday       bool   `json:"isToday"`
}

// LastThirtyDays builds the visualization row ending on ref's day.
func LastThirtyDays(history []models.CollectionHistoryEntry, ref time.Time) []DaySummary {
	byDate := make(map[string]int, len(history))
	for _, h := range history {
		byDate[h.Date] = h.Count
	}
	days := make([]DaySummary, 30)
	for i := 0; i < 30; i++ {
		day := models.DayKey(ref.AddDate(0, 0, i-29))
		count := byDate[day]
		days[i] = DaySummary{
			Date:          day,
			Count:         count,
			HasCollection: count > 0,
			IsToday:       i == 29,
		}
	}
	return days
}
