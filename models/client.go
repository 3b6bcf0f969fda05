package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Onboarding is the profile-completion sub-document stored as JSONB
type Onboarding struct {
	Completed            bool     `json:"completed"`
	AgeRange             string   `json:"age_range"`
	Concerns             []string `json:"concerns"`
	PreferredSessionType string   `json:"preferred_session_type"`
	PreferredLanguage    string   `json:"preferred_language"`
}

// Value implements the driver.Valuer interface
func (o Onboarding) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (o *Onboarding) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal Onboarding: unsupported type %T", value)
	}

	return json.Unmarshal(data, o)
}

const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type Client struct {
	ID                uint             `json:"id" gorm:"primaryKey"`
	Name              string           `json:"name"`
	Email             string           `json:"email" gorm:"unique"`
	Password          string           `json:"password,omitempty"`
	IsVerified        bool             `json:"is_verified"`
	OTP               string           `json:"otp,omitempty"`
	OTPExpiresAt      time.Time        `json:"otp_expires_at,omitempty"`
	ResetOTP          string           `json:"reset_otp,omitempty"`
	ResetOTPExpiresAt time.Time        `json:"reset_otp_expires_at,omitempty"`
	Provider          string           `json:"provider" gorm:"default:email"`
	ProfilePicture    string           `json:"profile_picture"`
	Onboarding        Onboarding       `json:"onboarding" gorm:"type:jsonb"`
	SessionRequests   []SessionRequest `json:"session_requests,omitempty" gorm:"foreignKey:ClientID"`
	Sessions          []Session        `json:"sessions,omitempty" gorm:"foreignKey:ClientID"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// Sanitize strips credential and OTP material before the record leaves the API
func (c *Client) Sanitize() {
	c.Password = ""
	c.OTP = ""
	c.ResetOTP = ""
}
