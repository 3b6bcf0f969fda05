package models

import (
	"testing"
	"time"
)

func dow(d DayOfWeek) *DayOfWeek {
	return &d
}

func TestAvailabilityValidate(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	slots := SlotList{{StartTime: "09:00", EndTime: "10:00"}}

	tests := []struct {
		name    string
		row     ExpertAvailability
		wantErr bool
	}{
		{
			name: "valid recurring",
			row:  ExpertAvailability{Recurring: true, DayOfWeek: dow(Monday), Slots: slots},
		},
		{
			name: "valid one-off",
			row:  ExpertAvailability{Date: &date, Slots: slots},
		},
		{
			name:    "recurring without day_of_week",
			row:     ExpertAvailability{Recurring: true, Slots: slots},
			wantErr: true,
		},
		{
			name:    "recurring with date set",
			row:     ExpertAvailability{Recurring: true, DayOfWeek: dow(Monday), Date: &date, Slots: slots},
			wantErr: true,
		},
		{
			name:    "one-off without date",
			row:     ExpertAvailability{Slots: slots},
			wantErr: true,
		},
		{
			name:    "day_of_week out of range",
			row:     ExpertAvailability{Recurring: true, DayOfWeek: dow(DayOfWeek(7)), Slots: slots},
			wantErr: true,
		},
		{
			name:    "no slots",
			row:     ExpertAvailability{Recurring: true, DayOfWeek: dow(Monday)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestAvailabilityMatchesDate(t *testing.T) {
	// 2025-03-10 is a Monday
	monday := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	tuesday := monday.Add(24 * time.Hour)

	recurring := ExpertAvailability{Recurring: true, DayOfWeek: dow(Monday)}
	if !recurring.MatchesDate(monday) {
		t.Fatal("recurring Monday row should match a Monday")
	}
	if recurring.MatchesDate(tuesday) {
		t.Fatal("recurring Monday row should not match a Tuesday")
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	oneOff := ExpertAvailability{Date: &date}
	if !oneOff.MatchesDate(monday) {
		t.Fatal("one-off row should match its date regardless of clock time")
	}
	if oneOff.MatchesDate(tuesday) {
		t.Fatal("one-off row should not match another date")
	}

	var empty ExpertAvailability
	if empty.MatchesDate(monday) {
		t.Fatal("row with neither day nor date should never match")
	}
}
