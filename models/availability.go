package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// TimeSlot is a published bookable window, wall-clock "HH:MM" in 24h
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SlotList stores the ordered slot list as JSONB, preserving insertion order
type SlotList []TimeSlot

// Value implements the driver.Valuer interface
func (s SlotList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *SlotList) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal SlotList: unsupported type %T", value)
	}

	return json.Unmarshal(data, s)
}

// ExpertAvailability defines when an expert can be booked. A row is either
// recurring (DayOfWeek set, Date nil) or one-off (Date set). Multiple rows
// per expert per day are allowed.
type ExpertAvailability struct {
	gorm.Model
	ExpertID  uint       `json:"expert_id"`
	Expert    Expert     `json:"expert,omitempty" gorm:"foreignKey:ExpertID"`
	DayOfWeek *DayOfWeek `json:"day_of_week"`
	Date      *time.Time `json:"date"`
	Slots     SlotList   `json:"slots" gorm:"type:jsonb"`
	Recurring bool       `json:"recurring"`
	Timezone  string     `json:"timezone"` // stored label only, no conversion applied
}

// Validate enforces the recurring-XOR-date invariant
func (a *ExpertAvailability) Validate() error {
	if a.Recurring {
		if a.DayOfWeek == nil || a.Date != nil {
			return fmt.Errorf("recurring availability requires day_of_week and no date")
		}
		if *a.DayOfWeek < Sunday || *a.DayOfWeek > Saturday {
			return fmt.Errorf("day_of_week must be between 0 and 6")
		}
	} else {
		if a.Date == nil {
			return fmt.Errorf("one-off availability requires a date")
		}
	}
	if len(a.Slots) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	return nil
}

// MatchesDate reports whether this row publishes windows for the given day
func (a *ExpertAvailability) MatchesDate(date time.Time) bool {
	if a.Recurring {
		return a.DayOfWeek != nil && int(*a.DayOfWeek) == int(date.Weekday())
	}
	if a.Date == nil {
		return false
	}
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
