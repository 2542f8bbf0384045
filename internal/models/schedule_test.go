package models

import (
	"errors"
	"testing"
)

func TestToScheduleAppliesCategoryDefaults(t *testing.T) {
	req := CreateScheduleRequest{Type: CategoryOrganic, Days: []int{4, 1}}
	s := req.ToSchedule("abc")

	if s.ID != "abc" {
		t.Errorf("ID = %q", s.ID)
	}
	if s.Name != "Organico" || s.Color != "green" || s.Icon != "🗑️" {
		t.Errorf("defaults not applied: %+v", s)
	}
	if len(s.Days) != 2 || s.Days[0] != 1 || s.Days[1] != 4 {
		t.Errorf("Days = %v, want sorted [1 4]", s.Days)
	}
}

func TestToScheduleKeepsExplicitValues(t *testing.T) {
	req := CreateScheduleRequest{
		Type:  CategoryPlastic,
		Name:  " Plastica dura ",
		Days:  []int{2},
		Color: "cyan",
		Icon:  "🧴",
	}
	s := req.ToSchedule("x")

	if s.Name != "Plastica dura" {
		t.Errorf("Name = %q, want trimmed explicit name", s.Name)
	}
	if s.Color != "cyan" || s.Icon != "🧴" {
		t.Errorf("explicit display fields overridden: %+v", s)
	}
}

func TestNormalizeSortsAndDeduplicates(t *testing.T) {
	s := Schedule{Days: []int{4, 1, 4, 1, 2}}
	s.Normalize()
	want := []int{1, 2, 4}
	if len(s.Days) != len(want) {
		t.Fatalf("Days = %v, want %v", s.Days, want)
	}
	for i := range want {
		if s.Days[i] != want[i] {
			t.Fatalf("Days = %v, want %v", s.Days, want)
		}
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name      string
		schedule  Schedule
		wantField string
	}{
		{"valid builtin", Schedule{Type: CategoryPaper, Name: "Carta", Days: []int{3}, Icon: "📄"}, ""},
		{"valid custom", Schedule{Type: CategoryCustom, Name: "Olio", Days: []int{6}, Icon: "🛢️"}, ""},
		{"unknown category", Schedule{Type: "metal", Name: "Metallo", Days: []int{1}}, "type"},
		{"custom without name", Schedule{Type: CategoryCustom, Days: []int{1}, Icon: "x"}, "name"},
		{"custom without icon", Schedule{Type: CategoryCustom, Name: "Olio", Days: []int{1}}, "icon"},
		{"no days", Schedule{Type: CategoryGlass, Name: "Vetro", Days: nil}, "days"},
		{"day out of range", Schedule{Type: CategoryGlass, Name: "Vetro", Days: []int{7}}, "days"},
		{"negative day", Schedule{Type: CategoryGlass, Name: "Vetro", Days: []int{-1}}, "days"},
		{"builtin without name", Schedule{Type: CategoryMixed, Days: []int{0}}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestDefaultsFor(t *testing.T) {
	if _, ok := DefaultsFor(CategoryCustom); ok {
		t.Error("custom category must not have defaults")
	}
	d, ok := DefaultsFor(CategoryGlass)
	if !ok || d.Name != "Vetro" {
		t.Errorf("DefaultsFor(glass) = %+v, %v", d, ok)
	}
}
