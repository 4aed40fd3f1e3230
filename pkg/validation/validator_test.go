package validation

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usernameReq struct {
	Username string `json:"username" validate:"required,username"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestUsernameAlias(t *testing.T) {
	v := newValidator()

	require.NoError(t, v.Struct(usernameReq{Username: "abc"}))

	err := v.Struct(usernameReq{Username: "ab"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"username": "must be between 3 and 50 characters long"}, ToDetails(err))
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(loginReq{Email: "nope", Password: "short"})
	require.Error(t, err)

	d := ToDetails(err)
	assert.Equal(t, "must be a valid email", d["email"])
	assert.Equal(t, "min length 8", d["password"])
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var dst map[string]any
	err := json.Unmarshal([]byte("{"), &dst)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
