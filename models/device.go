package models

import "time"

// Device is a client installation registered for an account.
// Revoked devices may not push or pull.
type Device struct {
	// DeviceID is a client-generated UUID persisted locally.
	DeviceID string `json:"device_id"`

	// UserID is the owning account. Never exposed.
	UserID int64 `json:"-"`

	Label     string `json:"label"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`

	LastSeen  time.Time  `json:"last_seen"`
	Revoked   bool       `json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// TableName returns the name of the database table associated with [Device].
func (Device) TableName() string {
	return "devices"
}
