package application

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-profile/internal/domain/repository"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

type memProfiles struct {
	mu      sync.Mutex
	byID    map[string]*entity.Profile
	updates int
}

func newMemProfiles(ps ...entity.Profile) *memProfiles {
	m := &memProfiles{byID: map[string]*entity.Profile{}}
	for i := range ps {
		p := ps[i]
		m.byID[p.ID] = &p
	}
	return m
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memProfiles) update(id string, fn func(*entity.Profile)) (*entity.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	m.updates++
	fn(p)
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (m *memProfiles) UpdateUsername(_ context.Context, id, username string) (*entity.Profile, error) {
	return m.update(id, func(p *entity.Profile) { p.Username = username })
}

func (m *memProfiles) UpdateAvatar(_ context.Context, id, avatarURL string) (*entity.Profile, error) {
	return m.update(id, func(p *entity.Profile) { p.AvatarURL = avatarURL })
}

type capturePublisher struct {
	mu     sync.Mutex
	events []entity.ProfileEvent
}

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev, ok := body.(entity.ProfileEvent); ok {
		c.events = append(c.events, ev)
	}
	return nil
}
