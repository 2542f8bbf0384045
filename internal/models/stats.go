package models

import "time"

// DayKeyLayout is the calendar-day key used everywhere streaks and history
// compare dates. Day granularity, never elapsed hours, so late-night use and
// DST shifts cannot corrupt a streak.
const DayKeyLayout = "2006-01-02"

// DayKey returns t's calendar day as a YYYY-MM-DD key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// UserStats is the single gamification record for the household.
type UserStats struct {
	TotalCollections int      `json:"totalCollections"`
	Streak           int      `json:"streak"`
	LastCollection   string   `json:"lastCollection"` // day key of the last confirmation, "" if never
	Achievements     []string `json:"achievements"`
	Level            int      `json:"level"`
	Points           int      `json:"points"`
}

// HasAchievement reports whether the given badge was already unlocked.
func (s *UserStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// CollectionHistoryEntry is one calendar day in the confirmation log.
// Same-day confirmations update the entry in place.
type CollectionHistoryEntry struct {
	Date  string   `json:"date"` // YYYY-MM-DD
	Count int      `json:"count"`
	Types []string `json:"types"`
}

// Achievement describes an unlockable badge.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

const (
	AchievementFirstCollection = "first-collection"
	AchievementWeekStreak      = "week-streak"
	AchievementEcoWarrior      = "eco-warrior"
)

// Achievements lists every badge the engine can unlock, in display order.
var Achievements = []Achievement{
	{ID: AchievementFirstCollection, Name: "Primo Passo", Description: "Prima raccolta segnata", Icon: "🌟"},
	{ID: AchievementWeekStreak, Name: "Settimana Verde", Description: "7 giorni consecutivi", Icon: "🔥"},
	{ID: AchievementEcoWarrior, Name: "Eco Guerriero", Description: "50 raccolte completate", Icon: "🌱"},
}

// AchievementByID looks up a badge definition.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
