package application

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

type profileFixture struct {
	svc    *ProfileService
	repo   *memProfiles
	rdb    *redis.Client
	events *capturePublisher
}

func newProfileFixture(t *testing.T, opts ProfileServiceOptions) profileFixture {
	t.Helper()
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	_, rdb := newRedis(t)
	r := newMemProfiles(entity.Profile{ID: "u1", Email: "chef@example.com", Password: hash, Username: "chef"})
	events := &capturePublisher{}

	opts.JWT = helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	opts.Redis = rdb
	opts.Events = events
	return profileFixture{
		svc:    NewProfileService(r, nil, quietLogger(), opts),
		repo:   r,
		rdb:    rdb,
		events: events,
	}
}

func TestLoginCreatesSession(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	ctx := context.Background()

	_, _, err := f.svc.Login(ctx, "chef@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	p, pair, err := f.svc.Login(ctx, "  CHEF@example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)

	claims, err := f.svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	sess := f.rdb.HGetAll(ctx, SessionKey("u1")).Val()
	assert.Equal(t, claims.SessionID, sess["sid"])
	assert.Equal(t, "chef", sess["username"])
	assert.Greater(t, f.rdb.TTL(ctx, SessionKey("u1")).Val(), 59*time.Minute)
}

func TestRefreshRotatesSession(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	ctx := context.Background()

	_, first, err := f.svc.Login(ctx, "chef@example.com", "password123")
	require.NoError(t, err)

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = f.svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "old refresh token belongs to a replaced session")

	f.svc.Logout(ctx, "u1")
	_, err = f.svc.Refresh(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileMissing(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	_, err := f.svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUsername(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	ctx := context.Background()
	_, _, err := f.svc.Login(ctx, "chef@example.com", "password123")
	require.NoError(t, err)

	_, err = f.svc.UpdateUsername(ctx, "u1", "  ab ")
	assert.ErrorIs(t, err, ErrUsernameTooShort)
	assert.Zero(t, f.repo.updates)

	p, err := f.svc.UpdateUsername(ctx, "u1", "  Sous Chef ")
	require.NoError(t, err)
	assert.Equal(t, "Sous Chef", p.Username)

	assert.Equal(t, "Sous Chef", f.rdb.HGet(ctx, SessionKey("u1"), "username").Val())
	assert.Greater(t, f.rdb.TTL(ctx, SessionKey("u1")).Val(), time.Duration(0))

	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, entity.EventUsernameUpdated, ev.Type)
	assert.Equal(t, "chef -> Sous Chef", ev.Changes["username"])
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestUpdateUsernameTooLong(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	long := make([]rune, UsernameMaxLen+1)
	for i := range long {
		long[i] = 'é'
	}
	_, err := f.svc.UpdateUsername(context.Background(), "u1", string(long))
	assert.ErrorIs(t, err, ErrUsernameTooLong)
}

func TestUpdateAvatar(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	ctx := context.Background()

	_, err := f.svc.UpdateAvatar(ctx, "u1", "not a data uri")
	assert.ErrorIs(t, err, ErrInvalidDataURI)

	_, err = f.svc.UpdateAvatar(ctx, "u1", EncodeDataURI("image/gif", []byte("GIF89a....")))
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)

	_, err = f.svc.UpdateAvatar(ctx, "u1", EncodeDataURI("image/png", []byte("plain text, not an image")))
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)
	_, err = f.svc.UpdateAvatar(ctx, "u1", EncodeDataURI("image/jpeg", pngBytes(t)))
	assert.ErrorIs(t, err, ErrUnsupportedAvatarType)
	assert.Zero(t, f.repo.updates)

	uri :=EncodeDataURI("image/png", pngBytes(t))
	p, err := f.svc.UpdateAvatar(ctx, "u1", uri)
	require.NoError(t, err)
	assert.Equal(t, uri, p.AvatarURL)
	assert.True(t, p.HasAvatar())

	require.Len(t, f.events.events, 1)
	assert.Equal(t, entity.EventAvatarUpdated, f.events.events[0].Type)
}

func TestUpdateAvatarTooLarge(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{AvatarMaxBytes: 16})
	_, err := f.svc.UpdateAvatar(context.Background(), "u1", EncodeDataURI("image/png", pngBytes(t)))
	assert.ErrorIs(t, err, ErrAvatarTooLarge)
}

func TestSearchWithoutElasticsearch(t *testing.T) {
	f := newProfileFixture(t, ProfileServiceOptions{})
	hits, err := f.svc.SearchProfiles(context.Background(), "che", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
