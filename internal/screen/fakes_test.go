package screen

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeProfiles struct {
	mu          sync.Mutex
	profile     *entity.Profile
	getErr      error
	updateErr   error
	usernameCnt int
	avatarCnt   int
	lastAvatar  string
	block       chan struct{}
	afterUpdate func()
}

func (f *fakeProfiles) GetProfile(ctx context.Context, _ string) (*entity.Profile, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeProfiles) UpdateUsername(_ context.Context, _ string, name string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.usernameCnt++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.profile.Username = name
	cp := *f.profile
	if f.afterUpdate != nil {
		f.afterUpdate()
	}
	return &cp, nil
}

func (f *fakeProfiles) UpdateAvatar(_ context.Context, _ string, uri string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.avatarCnt++
	f.lastAvatar = uri
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.profile.AvatarURL = uri
	cp := *f.profile
	if f.afterUpdate != nil {
		f.afterUpdate()
	}
	return &cp, nil
}

type fakeFavorites struct {
	mu        sync.Mutex
	list      []entity.Recipe
	listErr   error
	state     map[string]bool
	counts    map[string]int
	toggleErr error
	countErr  error
	toggles   int

	// when set, Toggle signals entered and waits on release
	entered chan struct{}
	release chan struct{}
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{state: map[string]bool{}, counts: map[string]int{}}
}

func (f *fakeFavorites) Favorites(context.Context, string) ([]entity.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list, f.listErr
}

func (f *fakeFavorites) Toggle(_ context.Context, _ string, recipeID string) (bool, error) {
	f.mu.Lock()
	f.toggles++
	entered, release := f.entered, f.release
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.toggleErr != nil {
		return false, f.toggleErr
	}
	next := !f.state[recipeID]
	f.state[recipeID] = next
	if next {
		f.counts[recipeID]++
	} else if f.counts[recipeID] > 0 {
		f.counts[recipeID]--
	}
	return next, nil
}

func (f *fakeFavorites) IsFavorited(_ context.Context, _ string, recipeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state[recipeID], nil
}

func (f *fakeFavorites) FavoriteCount(_ context.Context, recipeID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[recipeID], nil
}

func (f *fakeFavorites) toggleCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toggles
}

type fakeReviews struct {
	list  []entity.Review
	err   error
	block chan struct{}
}

func (f *fakeReviews) GetUserReviews(ctx context.Context, _ string) ([]entity.Review, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.list, f.err
}

var errStore = errors.New("database unavailable")
