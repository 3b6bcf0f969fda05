package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a list of tags as JSONB
type StringList []string

// Value implements the driver.Valuer interface
func (s StringList) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringList) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal StringList: unsupported type %T", value)
	}

	return json.Unmarshal(data, s)
}

// Contains reports whether the list holds the given tag
func (s StringList) Contains(tag string) bool {
	for _, v := range s {
		if v == tag {
			return true
		}
	}
	return false
}

// ExpertOnboarding mirrors the client onboarding sub-document for experts
type ExpertOnboarding struct {
	Completed     bool   `json:"completed"`
	LicenseNumber string `json:"license_number"`
	Education     string `json:"education"`
}

// Value implements the driver.Valuer interface
func (o ExpertOnboarding) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (o *ExpertOnboarding) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal ExpertOnboarding: unsupported type %T", value)
	}

	return json.Unmarshal(data, o)
}

// Expert is the public therapist profile, referenced by id from requests,
// sessions and availability. Managed by the expert-side surface.
type Expert struct {
	ID           uint                 `json:"id" gorm:"primaryKey"`
	Name         string               `json:"name"`
	Email        string               `json:"email" gorm:"unique"`
	Password     string               `json:"password,omitempty"`
	Bio          string               `json:"bio"`
	Avatar       string               `json:"avatar"`
	Location     string               `json:"location"`
	Experience   int                  `json:"experience"`
	Specialties  StringList           `json:"specialties" gorm:"type:jsonb"`
	SessionTypes StringList           `json:"session_types" gorm:"type:jsonb"`
	Languages    StringList           `json:"languages" gorm:"type:jsonb"`
	Onboarding   ExpertOnboarding     `json:"onboarding" gorm:"type:jsonb"`
	Availability []ExpertAvailability `json:"availability,omitempty" gorm:"foreignKey:ExpertID"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Sanitize strips credential material before the record leaves the API
func (e *Expert) Sanitize() {
	e.Password = ""
}
