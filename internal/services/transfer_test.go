package services

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"ecotracker-backend/internal/models"
)

var transferNow = time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)

func sampleSchedules() []models.Schedule {
	return []models.Schedule{
		{ID: "id-1", Type: models.CategoryOrganic, Name: "Organico", Days: []int{1, 4}, Color: "green", Icon: "🗑️"},
		{ID: "id-2", Type: models.CategoryCustom, Name: "Olio esausto", Days: []int{6}, Color: "orange", Icon: "🛢️"},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	token := EncodeSchedules(sampleSchedules(), transferNow)

	shared, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if len(shared) != 2 {
		t.Fatalf("decoded %d schedules, want 2", len(shared))
	}
	if shared[0].Name != "Organico" || shared[0].Icon != "🗑️" {
		t.Errorf("first schedule = %+v, emoji and name must survive the round trip", shared[0])
	}
	if shared[1].Type != models.CategoryCustom || shared[1].Icon != "🛢️" {
		t.Errorf("second schedule = %+v", shared[1])
	}
	if len(shared[0].Days) != 2 || shared[0].Days[0] != 1 || shared[0].Days[1] != 4 {
		t.Errorf("days = %v, want [1 4]", shared[0].Days)
	}
}

func TestDecodeTokenToleratesWhitespace(t *testing.T) {
	token := "  " + EncodeSchedules(sampleSchedules(), transferNow) + "\n"
	if _, err := DecodeToken(token); err != nil {
		t.Fatalf("DecodeToken with padding: %v", err)
	}
}

// Tokens from the old encoder hold Latin-1 bytes: each 8-bit code unit of the
// JSON text became one byte. Multi-byte glyphs are unrepresentable there, so a
// realistic legacy token carries accented Latin text.
func TestDecodeLegacyLatin1Token(t *testing.T) {
	payload := SharePayload{
		Schedules: []ShareSchedule{
			{Type: models.CategoryCustom, Name: "Più riciclo", Days: []int{2}, Color: "teal", Icon: "x"},
		},
		Timestamp: transferNow.UnixMilli(),
	}
	jsonText, _ := json.Marshal(payload)

	latin1 := make([]byte, 0, len(jsonText))
	for _, r := range string(jsonText) {
		latin1 = append(latin1, byte(r))
	}
	token := base64.StdEncoding.EncodeToString(latin1)

	shared, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken on legacy token: %v", err)
	}
	if shared[0].Name != "Più riciclo" {
		t.Errorf("name = %q, accented characters must survive the fallback", shared[0].Name)
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"base64 of non-json", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"json without schedules", base64.StdEncoding.EncodeToString([]byte(`{"timestamp":1}`))},
		{"schedule failing validation", base64.StdEncoding.EncodeToString([]byte(`{"schedules":[{"type":"organic","days":[9]}]}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeToken(tt.token); !errors.Is(err, ErrInvalidCode) {
				t.Errorf("DecodeToken(%q) err = %v, want ErrInvalidCode", tt.token, err)
			}
		})
	}
}

func TestMaterializeSchedulesMintsFreshIDs(t *testing.T) {
	shared, err := DecodeToken(EncodeSchedules(sampleSchedules(), transferNow))
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}

	materialized := MaterializeSchedules(shared)
	if len(materialized) != 2 {
		t.Fatalf("materialized %d, want 2", len(materialized))
	}
	if materialized[0].ID == "" || materialized[0].ID == "id-1" {
		t.Errorf("ID = %q, want a freshly minted one", materialized[0].ID)
	}
	if materialized[0].ID == materialized[1].ID {
		t.Error("materialized schedules share an ID")
	}
}

func TestGenerateFamilyCodeFormat(t *testing.T) {
	format := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code := GenerateFamilyCode()
		if !format.MatchString(code) {
			t.Fatalf("GenerateFamilyCode() = %q, want 6 uppercase alphanumerics", code)
		}
	}
}

func TestBackupDocumentRoundTrip(t *testing.T) {
	doc := NewBackupDocument(sampleSchedules(), transferNow)
	if doc.AppVersion == "" || doc.ExportDate == "" {
		t.Fatalf("document missing metadata: %+v", doc)
	}

	raw, _ := json.Marshal(doc)
	restored, err := ParseBackupDocument(raw)
	if err != nil {
		t.Fatalf("ParseBackupDocument: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("restored %d schedules, want 2", len(restored))
	}
	if restored[0].ID == "id-1" {
		t.Error("restored schedule kept the exported ID, want a fresh one")
	}
	if restored[1].Name != "Olio esausto" {
		t.Errorf("restored name = %q", restored[1].Name)
	}
}

func TestParseBackupDocumentRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "nope"},
		{"missing schedules", `{"exportDate":"2024-01-10","appVersion":"1.0"}`},
		{"invalid schedule", `{"schedules":[{"type":"organic","days":[]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBackupDocument([]byte(tt.raw)); !errors.Is(err, ErrInvalidCode) {
				t.Errorf("err = %v, want ErrInvalidCode", err)
			}
		})
	}
}

func TestEncodeSchedulesIsPlainBase64(t *testing.T) {
	token := EncodeSchedules(sampleSchedules(), transferNow)
	if strings.TrimSpace(token) != token {
		t.Error("token must not carry surrounding whitespace")
	}
	if _, err := base64.StdEncoding.DecodeString(token); err != nil {
		t.Fatalf("token is not standard base64: %v", err)
	}
}
