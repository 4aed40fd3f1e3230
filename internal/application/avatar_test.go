package application

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAvatarFile(t *testing.T) {
	const limit = 5 * 1024 * 1024

	assert.NoError(t, ValidateAvatarFile("image/jpeg", 1024, limit))
	assert.NoError(t, ValidateAvatarFile("IMAGE/PNG; charset=binary", 1024, limit))
	assert.NoError(t, ValidateAvatarFile("image/webp", limit, limit))
	assert.ErrorIs(t, ValidateAvatarFile("image/gif", 1024, limit), ErrUnsupportedAvatarType)
	assert.ErrorIs(t, ValidateAvatarFile("", 1024, limit), ErrUnsupportedAvatarType)
	assert.ErrorIs(t, ValidateAvatarFile("image/png", limit+1, limit), ErrAvatarTooLarge)
	assert.ErrorIs(t, ValidateAvatarFile("image/png", DefaultAvatarMaxBytes+1, 0), ErrAvatarTooLarge)
}

func TestReadAvatar(t *testing.T) {
	img := pngBytes(t)

	uri, err := ReadAvatar(bytes.NewReader(img), "image/png", 1<<20)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	ct, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, img, data)
}

func TestReadAvatarStopsAtLimit(t *testing.T) {
	img := pngBytes(t)
	_, err := ReadAvatar(bytes.NewReader(img), "image/png", int64(len(img)-1))
	assert.ErrorIs(t, err, ErrAvatarTooLarge)
}

func TestReadAvatarRejectsMismatchedType(t *testing.T) {
	jpeg := append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 32)...)

	_, err := ReadAvatar(bytes.NewReader(jpeg), "image/png", 1<<20)
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)
	_, err = ReadAvatar(bytes.NewReader(pngBytes(t)), "image/webp", 1<<20)
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)

	uri, err := ReadAvatar(bytes.NewReader(jpeg), "image/jpeg", 1<<20)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}

func TestParseDataURIRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:;base64,AAAA",
		"data:image/png;base64,***",
	} {
		_, _, err := ParseDataURI(in)
		assert.ErrorIs(t, err, ErrInvalidDataURI, in)
	}
}

func TestInlineAvatarStore(t *testing.T) {
	got, err := InlineAvatarStore{}.Store(context.Background(), "u1", "image/webp", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "data:image/webp;base64,AQID", got)
}

func TestGCSAvatarStoreNotConfigured(t *testing.T) {
	_, err := NewGCSAvatarStore(nil, "").Store(context.Background(), "u1", "image/png", []byte{1})
	assert.Error(t, err)
}
