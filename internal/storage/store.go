package storage

import "errors"

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Store is the persistence collaborator: opaque JSON values by logical key.
// Implementations must marshal on Put and unmarshal into dest on Get.
type Store interface {
	Get(key string, dest interface{}) error
	Put(key string, value interface{}) error
	Delete(key string) error
}

// Logical keys for every record the app persists.
const (
	KeySchedules    = "waste-schedules"
	KeyUserStats    = "user-stats"
	KeyHistory      = "collection-history"
	KeyBestStreak   = "best-streak"
	KeyReminderTime = "reminder-time"
	KeyVacation     = "vacation-mode"
	KeyLocalBackup  = "waste-schedules-backup"
)

// ShareCodeKey returns the key under which a family share code's encoded
// payload is stored.
func ShareCodeKey(code string) string {
	return "share-code-" + code
}
