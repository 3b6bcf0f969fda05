package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// IsSessionStatus reports whether s belongs to the session vocabulary
func IsSessionStatus(s string) bool {
	switch SessionStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Feedback is the client's post-session rating, stored as JSONB
type Feedback struct {
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}

// Value implements the driver.Valuer interface
func (f Feedback) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (f *Feedback) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal Feedback: unsupported type %T", value)
	}

	return json.Unmarshal(data, f)
}

// Session is a confirmed, scheduled meeting between a client and an expert,
// created when the expert accepts a session request.
type Session struct {
	gorm.Model
	ClientID    uint          `json:"client_id"`
	Client      Client        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ExpertID    uint          `json:"expert_id"`
	Expert      Expert        `json:"expert,omitempty" gorm:"foreignKey:ExpertID"`
	SessionType string        `json:"session_type"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	MeetingURL  string        `json:"meeting_url"`
	Status      SessionStatus `json:"status"`
	Feedback    *Feedback     `json:"feedback,omitempty" gorm:"type:jsonb"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.Status == "" {
		s.Status = StatusScheduled
	}
	return nil
}

// ValidateTransition reports whether a session may move between statuses.
// Completed and cancelled are terminal.
func ValidateTransition(from, to SessionStatus) error {
	switch from {
	case StatusScheduled:
		if to != StatusCompleted && to != StatusCancelled {
			return fmt.Errorf("invalid transition from scheduled to %s", to)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", from)
	default:
		return fmt.Errorf("unknown session status %q", from)
	}
	return nil
}

// UpdateStatus validates and persists a status transition
func (s *Session) UpdateStatus(tx *gorm.DB, newStatus SessionStatus) error {
	if err := ValidateTransition(s.Status, newStatus); err != nil {
		return err
	}

	s.Status = newStatus
	if err := tx.Save(s).Error; err != nil {
		return err
	}
	return nil
}
