package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/go-recipe-profile/internal/application"
	"github.com/oksasatya/go-recipe-profile/internal/screen"
	"github.com/oksasatya/go-recipe-profile/pkg/response"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case screen.IsAlert(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, application.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrAvatarTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, application.ErrUnsupportedAvatarType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, application.ErrInvalidArgument),
		errors.Is(err, application.ErrUsernameTooShort),
		errors.Is(err, application.ErrUsernameTooLong),
		errors.Is(err, application.ErrInvalidDataURI):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrToggleInFlight), errors.Is(err, screen.ErrUploadInProgress):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error envelope. Internal errors get a generic message.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	response.Error[any](c, status, msg, nil)
}

func currentUser(c *gin.Context) (string, bool) {
	uid := c.GetString("userID")
	if uid == "" {
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		return "", false
	}
	return uid, true
}

// pathUUID reads a UUID path parameter. Anything else is answered with 400
// before it reaches a query.
func pathUUID(c *gin.Context, name string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, application.ErrInvalidArgument.Error(), map[string]string{name: "must be a valid UUID"})
		return "", false
	}
	return id.String(), true
}
