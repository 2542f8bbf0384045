package models

import (
	"testing"
	"time"
)

func TestVacationWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  VacationWindow
		wantErr bool
	}{
		{"valid", VacationWindow{Start: "2024-07-01", End: "2024-07-15"}, false},
		{"end before start", VacationWindow{Start: "2024-07-15", End: "2024-07-01"}, true},
		{"end equals start", VacationWindow{Start: "2024-07-01", End: "2024-07-01"}, true},
		{"malformed start", VacationWindow{Start: "01/07/2024", End: "2024-07-15"}, true},
		{"missing end", VacationWindow{Start: "2024-07-01"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVacationWindowActive(t *testing.T) {
	w := VacationWindow{Start: "2024-07-01", End: "2024-07-15"}
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before", time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC), false},
		{"first day", time.Date(2024, 7, 1, 0, 0, 1, 0, time.UTC), true},
		{"middle", time.Date(2024, 7, 8, 12, 0, 0, 0, time.UTC), true},
		{"last day inclusive", time.Date(2024, 7, 15, 23, 0, 0, 0, time.UTC), true},
		{"after", time.Date(2024, 7, 16, 0, 0, 1, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Active(tt.at); got != tt.want {
				t.Errorf("Active(%s) = %v, want %v", tt.at.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
