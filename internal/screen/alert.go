package screen

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/oksasatya/go-recipe-profile/internal/application"
)

// Alert is a blocking, user-facing message. The view is left as it was
// before the action that raised it.
type Alert struct {
	Message string
}

func (a *Alert) Error() string { return a.Message }

func alertf(format string, args ...any) *Alert {
	return &Alert{Message: fmt.Sprintf(format, args...)}
}

// IsAlert reports whether err should be shown to the user as an alert.
func IsAlert(err error) bool {
	var a *Alert
	return errors.As(err, &a)
}

var (
	ErrProfileUnavailable = errors.New("profile is not loaded")
	ErrNotEditing         = errors.New("username is not being edited")
	ErrUploadInProgress   = errors.New("avatar upload already in progress")
	ErrUnmounted          = errors.New("screen is unmounted")
)

func avatarAlert(err error, maxBytes int64) *Alert {
	switch {
	case errors.Is(err, application.ErrUnsupportedAvatarType):
		return alertf("File must be .jpg, .jpeg, .png, or .webp")
	case errors.Is(err, application.ErrAvatarTooLarge):
		return alertf("Maximum file size is %s", humanize.IBytes(uint64(maxBytes)))
	default:
		return alertf("Failed to update photo: %s", err.Error())
	}
}
