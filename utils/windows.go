package utils

import (
	"fmt"
	"time"

	"github.com/mindmatch/therapy-api/db"
	"github.com/mindmatch/therapy-api/models"
)

const clockLayout = "15:04"

// ListAvailability returns every availability row for an expert, recurring
// and one-off alike, in insertion order.
func ListAvailability(expertID uint) ([]models.ExpertAvailability, error) {
	var rows []models.ExpertAvailability
	if err := db.DB.Where("expert_id = ?", expertID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load availability")
	}
	return rows, nil
}

// WindowsForDate returns the expert's published windows for the given day as
// "HH:MM - HH:MM" strings. A day without availability is an empty slice, not
// an error.
func WindowsForDate(expertID uint, date time.Time) ([]string, error) {
	rows, err := ListAvailability(expertID)
	if err != nil {
		return nil, err
	}
	return FlattenWindows(rows, date), nil
}

// FlattenWindows filters rows to those publishing windows on date and
// flattens their slots, preserving slot insertion order within a day.
func FlattenWindows(rows []models.ExpertAvailability, date time.Time) []string {
	windows := []string{}
	for _, row := range rows {
		if !row.MatchesDate(date) {
			continue
		}
		for _, slot := range row.Slots {
			windows = append(windows, fmt.Sprintf("%s - %s", slot.StartTime, slot.EndTime))
		}
	}
	return windows
}

// SlotsForDate is FlattenWindows without the string formatting, used by the
// booking check.
func SlotsForDate(rows []models.ExpertAvailability, date time.Time) []models.TimeSlot {
	slots := []models.TimeSlot{}
	for _, row := range rows {
		if !row.MatchesDate(date) {
			continue
		}
		slots = append(slots, row.Slots...)
	}
	return slots
}

// WithinSlots reports whether t's wall-clock time falls inside any of the
// published slots. Comparison is wall-clock only; the stored timezone label
// is not applied.
func WithinSlots(t time.Time, slots []models.TimeSlot) bool {
	clock := t.Hour()*60 + t.Minute()
	for _, slot := range slots {
		start, err := time.Parse(clockLayout, slot.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(clockLayout, slot.EndTime)
		if err != nil {
			continue
		}
		startMin := start.Hour()*60 + start.Minute()
		endMin := end.Hour()*60 + end.Minute()
		if clock >= startMin && clock < endMin {
			return true
		}
	}
	return false
}
