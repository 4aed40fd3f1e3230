package application

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

// DefaultAvatarMaxBytes is the upload ceiling applied when none is configured.
const DefaultAvatarMaxBytes int64 = 5 * 1024 * 1024

var avatarExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// ValidateAvatarFile checks the declared type and size before anything is read.
func ValidateAvatarFile(contentType string, size, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultAvatarMaxBytes
	}
	if _, ok := avatarExt[normalizeContentType(contentType)]; !ok {
		return ErrUnsupportedAvatarType
	}
	if size > maxBytes {
		return ErrAvatarTooLarge
	}
	return nil
}

// ReadAvatar reads at most maxBytes from r, checks that the real content is
// the declared allowed type and returns the file as a data URI.
func ReadAvatar(r io.Reader, contentType string, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultAvatarMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read avatar: %w", err)
	}
	if err := validateAvatarBytes(contentType, data, maxBytes); err != nil {
		return "", err
	}
	return EncodeDataURI(normalizeContentType(contentType), data), nil
}

func validateAvatarBytes(contentType string, data []byte, maxBytes int64) error {
	if err := ValidateAvatarFile(contentType, int64(len(data)), maxBytes); err != nil {
		return err
	}
	// the stored value is labelled with the declared type, so the bytes must agree
	if !mimetype.Detect(data).Is(normalizeContentType(contentType)) {
		return ErrUnsupportedAvatarType
	}
	return nil
}

func EncodeDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	ct, isB64 := strings.CutSuffix(meta, ";base64")
	if !isB64 || ct == "" {
		return "", nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return normalizeContentType(ct), data, nil
}

// AvatarStore persists avatar bytes and returns the value saved on the profile.
type AvatarStore interface {
	Store(ctx context.Context, userID, contentType string, data []byte) (string, error)
}

// InlineAvatarStore keeps the avatar embedded in the profile as a data URI.
type InlineAvatarStore struct{}

func (InlineAvatarStore) Store(_ context.Context, _ string, contentType string, data []byte) (string, error) {
	return EncodeDataURI(contentType, data), nil
}

// GCSAvatarStore uploads avatars to a bucket and returns the public object URL.
type GCSAvatarStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSAvatarStore(client *storage.Client, bucket string) *GCSAvatarStore {
	return &GCSAvatarStore{Client: client, Bucket: bucket}
}

func (s *GCSAvatarStore) Store(ctx context.Context, userID, contentType string, data []byte) (string, error) {
	if s.Client == nil || s.Bucket == "" {
		return "", errors.New("gcs not configured")
	}
	objectPath := path.Join("avatars", userID, uuid.NewString()+avatarExt[contentType])
	return helpers.UploadImageToGCS(ctx, s.Client, s.Bucket, objectPath, contentType, bytes.NewReader(data))
}
