package storage

import (
	"errors"
	"testing"

	"ecotracker-backend/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()

	in := []models.Schedule{{ID: "a", Type: models.CategoryOrganic, Name: "Organico", Days: []int{1, 4}}}
	if err := store.Put(KeySchedules, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out []models.Schedule
	if err := store.Get(KeySchedules, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Organico" {
		t.Fatalf("Get = %+v", out)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemory()
	var out int
	if err := store.Get(KeyBestStreak, &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on missing key = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemory()
	store.Put(KeyReminderTime, 19)
	if err := store.Delete(KeyReminderTime); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var out int
	if err := store.Get(KeyReminderTime, &out); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestSeedDefaultSchedules(t *testing.T) {
	store := NewMemory()

	if err := SeedDefaultSchedules(store); err != nil {
		t.Fatalf("SeedDefaultSchedules: %v", err)
	}
	var schedules []models.Schedule
	if err := store.Get(KeySchedules, &schedules); err != nil {
		t.Fatalf("Get after seed: %v", err)
	}
	if len(schedules) != 3 {
		t.Fatalf("seeded %d schedules, want 3", len(schedules))
	}

	// A second run must not overwrite user data.
	schedules = schedules[:1]
	store.Put(KeySchedules, schedules)
	if err := SeedDefaultSchedules(store); err != nil {
		t.Fatalf("second SeedDefaultSchedules: %v", err)
	}
	var after []models.Schedule
	store.Get(KeySchedules, &after)
	if len(after) != 1 {
		t.Fatalf("re-seed overwrote data, got %d schedules", len(after))
	}
}
