package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-profile/internal/domain/repository"
	"github.com/oksasatya/go-recipe-profile/internal/inflight"
)

type memFavorites struct {
	mu      sync.Mutex
	recipes map[string]entity.Recipe
	favs    map[string]bool
	entered chan struct{}
	hold    chan struct{}
}

func newMemFavorites(ids ...string) *memFavorites {
	m := &memFavorites{recipes: map[string]entity.Recipe{}, favs: map[string]bool{}}
	for _, id := range ids {
		m.recipes[id] = entity.Recipe{ID: id, Name: "recipe " + id}
	}
	return m
}

func (m *memFavorites) ListByUser(context.Context, string) ([]entity.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Recipe
	for id, ok := range m.favs {
		if ok {
			out = append(out, m.recipes[id])
		}
	}
	return out, nil
}

func (m *memFavorites) Exists(_ context.Context, _, recipeID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favs[recipeID], nil
}

func (m *memFavorites) Toggle(_ context.Context, _, recipeID string) (bool, error) {
	if m.entered != nil {
		m.entered <- struct{}{}
		<-m.hold
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recipes[recipeID]; !ok {
		return false, repo.ErrNotFound
	}
	m.favs[recipeID] = !m.favs[recipeID]
	return m.favs[recipeID], nil
}

func (m *memFavorites) CountByRecipe(_ context.Context, recipeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.favs[recipeID] {
		return 1, nil
	}
	return 0, nil
}

func TestFavoriteService_Toggle(t *testing.T) {
	svc := NewFavoriteService(newMemFavorites("r1"), nil, quietLogger())
	ctx := context.Background()

	list, err := svc.Favorites(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	on, err := svc.Toggle(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.True(t, on)

	fav, err := svc.IsFavorited(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.True(t, fav)
	n, err := svc.FavoriteCount(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	on, err = svc.Toggle(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestFavoriteService_ValidatesIDs(t *testing.T) {
	svc := NewFavoriteService(newMemFavorites(), nil, quietLogger())
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.Favorites(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = svc.FavoriteCount(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFavoriteService_UnknownRecipe(t *testing.T) {
	svc := NewFavoriteService(newMemFavorites(), nil, quietLogger())
	_, err := svc.Toggle(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func testConcurrentToggleRejected(t *testing.T, guard inflight.Guard) {
	store := newMemFavorites("r1")
	store.entered = make(chan struct{})
	store.hold = make(chan struct{})
	svc := NewFavoriteService(store, guard, quietLogger())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Toggle(ctx, "u1", "r1")
		done <- err
	}()
	<-store.entered

	_, err := svc.Toggle(ctx, "u1", "r1")
	assert.ErrorIs(t, err, ErrToggleInFlight)

	close(store.hold)
	require.NoError(t, <-done)

	store.entered = nil
	on, err := svc.Toggle(ctx, "u1", "r1")
	require.NoError(t, err)
	assert.False(t, on, "second toggle after release flips back")
}

func TestFavoriteService_ConcurrentToggleRejected(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		testConcurrentToggleRejected(t, inflight.NewMemoryGuard())
	})
	t.Run("redis", func(t *testing.T) {
		_, rdb := newRedis(t)
		testConcurrentToggleRejected(t, inflight.NewRedisGuard(rdb, "favorite:toggle:", 5*time.Second))
	})
}
