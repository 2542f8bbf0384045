package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"ecotracker-backend/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidCode marks a malformed or unrecognized transfer token. Nothing is
// imported from a batch that fails to decode.
var ErrInvalidCode = errors.New("invalid or corrupted share code")

const (
	appVersion       = "1.0"
	familyCodeLength = 6
	familyCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ShareSchedule is the portable shape of one schedule. Local ids and derived
// dates are deliberately absent: recipients mint their own ids on import.
type ShareSchedule struct {
	Type  models.WasteCategory `json:"type"`
	Name  string               `json:"name"`
	Days  []int                `json:"days"`
	Color string               `json:"color"`
	Icon  string               `json:"icon"`
}

// SharePayload is the JSON document wrapped by a transfer token.
type SharePayload struct {
	Schedules []ShareSchedule `json:"schedules"`
	Timestamp int64           `json:"timestamp"`
	Code      string          `json:"code,omitempty"`
}

// BackupDocument is the file-export interchange shape.
type BackupDocument struct {
	Schedules  []models.Schedule `json:"schedules"`
	ExportDate string            `json:"exportDate"`
	AppVersion string            `json:"appVersion"`
}

// EncodeSchedules produces the opaque copy-pasteable transfer token: the JSON
// payload taken as raw bytes, then base64. Going through bytes keeps
// multi-byte icon glyphs intact.
func EncodeSchedules(schedules []models.Schedule, now time.Time) string {
	payload := SharePayload{
		Schedules: make([]ShareSchedule, len(schedules)),
		Timestamp: now.UnixMilli(),
	}
	for i, s := range schedules {
		payload.Schedules[i] = ShareSchedule{
			Type:  s.Type,
			Name:  s.Name,
			Days:  s.Days,
			Color: s.Color,
			Icon:  s.Icon,
		}
	}
	raw, _ := json.Marshal(payload)
	return base64.StdEncoding.EncodeToString(raw)
}

// DecodeToken parses a transfer token back into schedule inputs. The byte-safe
// encoding is tried first; tokens from the old encoder carried Latin-1 bytes
// instead of UTF-8 and are re-expanded before parsing, so previously
// distributed codes keep working. Every schedule in the batch must validate or
// the whole import is rejected.
func DecodeToken(token string) ([]ShareSchedule, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return nil, ErrInvalidCode
	}
	if !utf8.Valid(raw) {
		raw = latin1ToUTF8(raw)
	}

	var payload SharePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidCode
	}
	if payload.Schedules == nil {
		return nil, ErrInvalidCode
	}
	for i := range payload.Schedules {
		s := payload.Schedules[i].toSchedule("")
		if err := s.Validate(); err != nil {
			return nil, ErrInvalidCode
		}
	}
	return payload.Schedules, nil
}

// MaterializeSchedules turns decoded inputs into local schedules with fresh
// ids, ready to merge into the collection.
func MaterializeSchedules(shared []ShareSchedule) []models.Schedule {
	schedules := make([]models.Schedule, len(shared))
	for i, s := range shared {
		schedules[i] = s.toSchedule(uuid.New().String())
		schedules[i].Normalize()
	}
	return schedules
}

func (s ShareSchedule) toSchedule(id string) models.Schedule {
	return models.Schedule{
		ID:    id,
		Type:  s.Type,
		Name:  s.Name,
		Days:  s.Days,
		Color: s.Color,
		Icon:  s.Icon,
	}
}

// GenerateFamilyCode returns a 6-character uppercase alphanumeric code used as
// the short lookup key for a stored transfer token.
func GenerateFamilyCode() string {
	code := make([]byte, familyCodeLength)
	for i := range code {
		code[i] = familyCodeChars[rand.Intn(len(familyCodeChars))]
	}
	return string(code)
}

// NewBackupDocument wraps the current collection for file export.
func NewBackupDocument(schedules []models.Schedule, now time.Time) BackupDocument {
	return BackupDocument{
		Schedules:  schedules,
		ExportDate: now.Format(time.RFC3339),
		AppVersion: appVersion,
	}
}

// ParseBackupDocument reads an exported file back. Extra fields are ignored,
// but a document without a schedules array is rejected outright. Restored
// schedules get fresh ids.
func ParseBackupDocument(raw []byte) ([]models.Schedule, error) {
	var doc BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, ErrInvalidCode
	}
	if doc.Schedules == nil {
		return nil, ErrInvalidCode
	}
	shared := make([]ShareSchedule, len(doc.Schedules))
	for i, s := range doc.Schedules {
		shared[i] = ShareSchedule{Type: s.Type, Name: s.Name, Days: s.Days, Color: s.Color, Icon: s.Icon}
		check := shared[i].toSchedule("")
		if err := check.Validate(); err != nil {
			return nil, ErrInvalidCode
		}
	}
	return MaterializeSchedules(shared), nil
}

// latin1ToUTF8 reinterprets each byte as a Latin-1 code point. The legacy
// encoder worked on text code units, so its tokens decode to Latin-1 bytes
// rather than UTF-8.
func latin1ToUTF8(b []byte) []byte {
	var sb strings.Builder
	sb.Grow(len(b) * 2)
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return []byte(sb.String())
}
