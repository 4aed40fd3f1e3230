package screen

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/application"
)

type ToggleSize string

const (
	SizeSmall  ToggleSize = "sm"
	SizeMedium ToggleSize = "md"
	SizeLarge  ToggleSize = "lg"
)

const (
	defaultPulse  = 300 * time.Millisecond
	maxCountLabel = 999
)

// FavoriteToggle is the heart button bound to a single recipe.
type FavoriteToggle struct {
	store    FavoritesStore
	logger   *logrus.Logger
	userID   string
	recipeID string

	mu             sync.Mutex
	favorited      bool
	pending        bool
	count          int
	showCount      bool
	size           ToggleSize
	pulse          time.Duration
	animatingUntil time.Time
	onToggle       func(recipeID string, favorited bool)
	now            func() time.Time
}

type ToggleOption func(*FavoriteToggle)

// WithInitialCount seeds the count shown before the first toggle. After a
// successful toggle the count is re-read from the store and replaces the
// seed, so a stale seed does not carry over.
func WithInitialCount(n int) ToggleOption {
	return func(t *FavoriteToggle) {
		if n > 0 {
			t.count = n
		}
	}
}

func WithShowCount() ToggleOption {
	return func(t *FavoriteToggle) { t.showCount = true }
}

func WithSize(size ToggleSize) ToggleOption {
	return func(t *FavoriteToggle) {
		switch size {
		case SizeSmall, SizeMedium, SizeLarge:
			t.size = size
		}
	}
}

func WithPulse(d time.Duration) ToggleOption {
	return func(t *FavoriteToggle) { t.pulse = d }
}

// WithOnToggle registers a callback run after every successful toggle.
func WithOnToggle(fn func(recipeID string, favorited bool)) ToggleOption {
	return func(t *FavoriteToggle) { t.onToggle = fn }
}

func WithLogger(l *logrus.Logger) ToggleOption {
	return func(t *FavoriteToggle) { t.logger = l }
}

// NewFavoriteToggle reads the current favorited state from the store.
func NewFavoriteToggle(ctx context.Context, store FavoritesStore, userID, recipeID string, opts ...ToggleOption) (*FavoriteToggle, error) {
	t := &FavoriteToggle{
		store:    store,
		logger:   logrus.StandardLogger(),
		userID:   userID,
		recipeID: recipeID,
		size:     SizeMedium,
		pulse:    defaultPulse,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	fav, err := store.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	t.favorited = fav
	return t, nil
}

// SetInitialCount resyncs the displayed count when the parent's count changes.
func (t *FavoriteToggle) SetInitialCount(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	t.count = n
}

// Activate flips the favorite. It returns false without touching the store
// when a toggle is still pending. On store failure the state and count stay
// as they were and the error is returned.
func (t *FavoriteToggle) Activate(ctx context.Context) (bool, error) {
	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return false, nil
	}
	t.pending = true
	wasFavorited := t.favorited
	t.animatingUntil = t.now().Add(t.pulse)
	t.mu.Unlock()

	favorited, err := t.store.Toggle(ctx, t.userID, t.recipeID)
	if err != nil {
		t.mu.Lock()
		t.pending = false
		t.mu.Unlock()
		if errors.Is(err, application.ErrToggleInFlight) {
			return false, nil
		}
		return false, err
	}

	count, countErr := t.store.FavoriteCount(ctx, t.recipeID)
	if countErr != nil {
		t.logger.WithError(countErr).WithField("recipe_id", t.recipeID).Warn("favorite count re-read failed, using local count")
	}

	t.mu.Lock()
	t.pending = false
	t.favorited = favorited
	switch {
	case countErr == nil:
		t.count = count
	case wasFavorited:
		t.count = max(0, t.count-1)
	default:
		t.count++
	}
	cb := t.onToggle
	t.mu.Unlock()

	if cb != nil {
		cb(t.recipeID, favorited)
	}
	return true, nil
}

// ToggleView is what the button renders.
type ToggleView struct {
	RecipeID   string     `json:"recipe_id"`
	Favorited  bool       `json:"favorited"`
	Count      int        `json:"count"`
	CountLabel string     `json:"count_label,omitempty"`
	ShowCount  bool       `json:"show_count"`
	Animating  bool       `json:"animating"`
	Disabled   bool       `json:"disabled"`
	Title      string     `json:"title"`
	Size       ToggleSize `json:"size"`
}

func (t *FavoriteToggle) View() ToggleView {
	t.mu.Lock()
	defer t.mu.Unlock()
	v := ToggleView{
		RecipeID:  t.recipeID,
		Favorited: t.favorited,
		Count:     t.count,
		ShowCount: t.showCount && t.count > 0,
		Animating: t.now().Before(t.animatingUntil),
		Disabled:  t.pending,
		Title:     "Add to favorites",
		Size:      t.size,
	}
	if t.favorited {
		v.Title = "Remove from favorites"
	}
	if v.ShowCount {
		v.CountLabel = CountLabel(t.count)
	}
	return v
}

// CountLabel caps large counts at "999+".
func CountLabel(n int) string {
	if n > maxCountLabel {
		return strconv.Itoa(maxCountLabel) + "+"
	}
	return strconv.Itoa(n)
}
