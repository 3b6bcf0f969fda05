package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending     RequestStatus = "pending"
	RequestAccepted    RequestStatus = "accepted"
	RequestDeclined    RequestStatus = "declined"
	RequestRescheduled RequestStatus = "rescheduled"
)

// IsRequestStatus reports whether s belongs to the session-request vocabulary
func IsRequestStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestPending, RequestAccepted, RequestDeclined, RequestRescheduled:
		return true
	}
	return false
}

// TimeList stores proposed alternative timestamps as JSONB
type TimeList []time.Time

// Value implements the driver.Valuer interface
func (t TimeList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (t *TimeList) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal TimeList: unsupported type %T", value)
	}

	return json.Unmarshal(data, t)
}

// SessionRequest is a client's proposal to book time with an expert,
// pending expert action. Only the owning client may mutate or delete it.
type SessionRequest struct {
	gorm.Model
	ClientID      uint          `json:"client_id"`
	Client        Client        `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ExpertID      uint          `json:"expert_id"`
	Expert        Expert        `json:"expert,omitempty" gorm:"foreignKey:ExpertID"`
	RequestedTime time.Time     `json:"requested_time"`
	SessionType   string        `json:"session_type"`
	Reason        string        `json:"reason"`
	Status        RequestStatus `json:"status"`
	ProposedTimes TimeList      `json:"proposed_times" gorm:"type:jsonb"`
}

func (r *SessionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.Status == "" {
		r.Status = RequestPending
	}
	return nil
}
