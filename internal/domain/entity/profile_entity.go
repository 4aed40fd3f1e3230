package entity

import (
	"time"
)

// Profile is the aggregate root for the user profile domain.
// AvatarURL holds either an inline data URI or a public object URL,
// depending on the configured avatar storage.
type Profile struct {
	ID        string
	Email     string
	Password  string
	Username  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAvatar reports whether the user has uploaded a custom avatar.
func (p *Profile) HasAvatar() bool {
	return p != nil && p.AvatarURL != ""
}
