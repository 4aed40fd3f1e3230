package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidArgument    = errors.New("invalid argument")

	ErrUsernameTooShort = errors.New("username is too short")
	ErrUsernameTooLong  = errors.New("username is too long")

	ErrUnsupportedAvatarType = errors.New("avatar must be .jpg, .jpeg, .png, or .webp")
	ErrAvatarTooLarge        = errors.New("avatar exceeds the maximum file size")
	ErrInvalidDataURI        = errors.New("avatar is not a valid base64 data URI")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrToggleInFlight = errors.New("favorite toggle already in progress")
)
