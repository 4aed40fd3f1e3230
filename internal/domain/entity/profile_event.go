package entity

import "time"

const (
	EventUsernameUpdated = "profile.username_updated"
	EventAvatarUpdated   = "profile.avatar_updated"
)

// ProfileEvent is published on the profile queue after a successful update.
type ProfileEvent struct {
	Type       string            `json:"type"`
	UserID     string            `json:"user_id"`
	Email      string            `json:"email"`
	Username   string            `json:"username"`
	Changes    map[string]string `json:"changes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
