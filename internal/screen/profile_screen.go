package screen

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/application"
	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

// AvatarFile is a picked file before it is read.
type AvatarFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Screen is the profile screen for one user. Each data source loads and
// fails on its own; nothing waits on another section.
type Screen struct {
	deps   Deps
	userID string
	log    *logrus.Entry

	mu        sync.Mutex
	profile   section[*entity.Profile]
	favorites section[[]entity.Recipe]
	reviews   section[[]entity.Review]
	editing   bool
	draft     string
	uploading bool

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	mounted  bool
	disposed bool
}

func NewScreen(deps Deps, userID string) *Screen {
	deps = deps.withDefaults()
	s := &Screen{
		deps:   deps,
		userID: userID,
		log:    deps.Logger.WithField("user_id", userID),
		done:   make(chan struct{}),
	}
	s.profile.loading()
	s.favorites.loading()
	s.reviews.loading()
	return s
}

// Mount starts loading every section. Loads run under a context owned by the
// screen, so Unmount cancels whatever is still in flight.
func (s *Screen) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted || s.disposed {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.wg.Add(3)
	go s.load(s.loadProfile)
	go s.load(s.loadFavorites)
	go s.load(s.loadReviews)
	go func() {
		s.wg.Wait()
		close(s.done)
	}()
}

func (s *Screen) load(fn func(context.Context)) {
	defer s.wg.Done()
	fn(s.ctx)
}

// Wait blocks until every section has settled or ctx ends.
func (s *Screen) Wait(ctx context.Context) error {
	s.mu.Lock()
	mounted := s.mounted
	s.mu.Unlock()
	if !mounted {
		return ErrUnmounted
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount cancels pending loads and waits for them to return. Results that
// arrive afterwards are dropped.
func (s *Screen) Unmount() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	mounted := s.mounted
	cancel := s.cancel
	s.mu.Unlock()

	if !mounted {
		return
	}
	cancel()
	<-s.done
}

// apply runs fn under the lock unless the screen was disposed meanwhile.
func (s *Screen) apply(ctx context.Context, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || ctx.Err() != nil {
		return false
	}
	fn()
	return true
}

// commit applies a write the store has already persisted. The caller's
// context no longer matters at that point; only disposal drops it.
func (s *Screen) commit(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	fn()
}

func (s *Screen) loadProfile(ctx context.Context) {
	p, err := s.deps.Profiles.GetProfile(ctx, s.userID)
	s.apply(ctx, func() {
		if err != nil {
			s.profile.fail(err.Error())
			return
		}
		s.profile.set(p, false)
	})
}

func (s *Screen) loadFavorites(ctx context.Context) {
	list, err := s.deps.Favorites.Favorites(ctx, s.userID)
	s.apply(ctx, func() {
		if err != nil {
			s.log.WithError(err).Warn("favorites section failed")
			s.favorites.fail(err.Error())
			return
		}
		s.favorites.set(list, len(list) == 0)
	})
}

func (s *Screen) loadReviews(ctx context.Context) {
	list, err := s.deps.Reviews.GetUserReviews(ctx, s.userID)
	s.apply(ctx, func() {
		if err != nil {
			s.log.WithError(err).Warn("reviews section failed")
			s.reviews.fail(err.Error())
			return
		}
		s.reviews.set(list, len(list) == 0)
	})
}

// BeginEdit switches the username into an editable field seeded with the current name.
func (s *Screen) BeginEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.state != StateReady {
		return ErrProfileUnavailable
	}
	s.editing = true
	s.draft = s.profile.data.Username
	return nil
}

func (s *Screen) SetDraft(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	s.draft = name
	return nil
}

func (s *Screen) CancelEdit() {
	s.mu.Lock()
	s.editing = false
	s.mu.Unlock()
}

// SaveUsername validates the draft and asks the profile store to persist it.
// A short draft or a store failure returns an *Alert and keeps edit mode on.
func (s *Screen) SaveUsername(ctx context.Context) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrUnmounted
	}
	if !s.editing {
		s.mu.Unlock()
		return ErrNotEditing
	}
	draft := strings.TrimSpace(s.draft)
	s.mu.Unlock()

	if utf8.RuneCountInString(draft) < s.deps.UsernameMinLen {
		return alertf("Username must be at least %d characters", s.deps.UsernameMinLen)
	}

	p, err := s.deps.Profiles.UpdateUsername(ctx, s.userID, draft)
	if err != nil {
		s.log.WithError(err).Info("username save rejected")
		return alertf("Failed to save name: %s", err.Error())
	}
	s.commit(func() {
		s.profile.set(p, false)
		s.editing = false
	})
	return nil
}

// UploadAvatar validates the file, reads it into a data URI and hands it to
// the profile store. Invalid files never reach the store.
func (s *Screen) UploadAvatar(ctx context.Context, f AvatarFile) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrUnmounted
	}
	if s.uploading {
		s.mu.Unlock()
		return ErrUploadInProgress
	}
	if err := application.ValidateAvatarFile(f.ContentType, f.Size, s.deps.AvatarMaxBytes); err != nil {
		s.mu.Unlock()
		return avatarAlert(err, s.deps.AvatarMaxBytes)
	}
	s.uploading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
	}()

	dataURI, err := application.ReadAvatar(f.Body, f.ContentType, s.deps.AvatarMaxBytes)
	if err != nil {
		if errors.Is(err, application.ErrUnsupportedAvatarType) || errors.Is(err, application.ErrAvatarTooLarge) {
			return avatarAlert(err, s.deps.AvatarMaxBytes)
		}
		return alertf("Failed to update photo: %s", err.Error())
	}

	p, err := s.deps.Profiles.UpdateAvatar(ctx, s.userID, dataURI)
	if err != nil {
		s.log.WithError(err).Info("avatar update rejected")
		return alertf("Failed to update photo: %s", err.Error())
	}
	s.commit(func() { s.profile.set(p, false) })
	return nil
}
