package storage

import (
	"errors"
	"log"

	"ecotracker-backend/internal/models"

	"github.com/google/uuid"
)

// SeedDefaultSchedules installs the starter calendar on first run, matching
// what a fresh install shows before the user configures anything.
func SeedDefaultSchedules(store Store) error {
	var existing []models.Schedule
	err := store.Get(KeySchedules, &existing)
	if err == nil {
		log.Println("✓ Schedules already present, skipping seed")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	log.Println("🌱 Seeding default schedules...")
	defaults := []models.Schedule{
		{ID: uuid.New().String(), Type: models.CategoryOrganic, Name: "Organico", Days: []int{1, 4}, Color: "green", Icon: "🗑️"},
		{ID: uuid.New().String(), Type: models.CategoryPlastic, Name: "Plastica", Days: []int{2}, Color: "blue", Icon: "♻️"},
		{ID: uuid.New().String(), Type: models.CategoryPaper, Name: "Carta", Days: []int{3}, Color: "yellow", Icon: "📄"},
	}
	return store.Put(KeySchedules, defaults)
}
