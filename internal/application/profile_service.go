package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	repo "github.com/oksasatya/go-recipe-profile/internal/domain/repository"
	"github.com/oksasatya/go-recipe-profile/pkg/helpers"
)

const (
	DefaultUsernameMinLen = 3
	UsernameMaxLen        = 50
)

// EventPublisher is satisfied by helpers.RabbitPublisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type ProfileService struct {
	Repo            repo.ProfileRepository
	Avatars         AvatarStore
	JWT             *helpers.JWTManager
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProfilesIndex string
	Events          EventPublisher

	UsernameMinLen int
	AvatarMaxBytes int64
}

type ProfileServiceOptions struct {
	JWT             *helpers.JWTManager
	Redis           *redis.Client
	ES              *elasticsearch.Client
	ESProfilesIndex string
	Events          EventPublisher
	UsernameMinLen  int
	AvatarMaxBytes  int64
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewProfileService(r repo.ProfileRepository, avatars AvatarStore, logger *logrus.Logger, opts ProfileServiceOptions) *ProfileService {
	if avatars == nil {
		avatars = InlineAvatarStore{}
	}
	if opts.UsernameMinLen <= 0 {
		opts.UsernameMinLen = DefaultUsernameMinLen
	}
	if opts.AvatarMaxBytes <= 0 {
		opts.AvatarMaxBytes = DefaultAvatarMaxBytes
	}
	return &ProfileService{
		Repo:            r,
		Avatars:         avatars,
		JWT:             opts.JWT,
		Redis:           opts.Redis,
		Logger:          logger,
		ES:              opts.ES,
		ESProfilesIndex: opts.ESProfilesIndex,
		Events:          opts.Events,
		UsernameMinLen:  opts.UsernameMinLen,
		AvatarMaxBytes:  opts.AvatarMaxBytes,
	}
}

// Authenticate validates email/password and returns the profile without issuing tokens.
func (s *ProfileService) Authenticate(ctx context.Context, email, password string) (*entity.Profile, error) {
	p, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || p == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(p.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *ProfileService) IssueTokens(ctx context.Context, p *entity.Profile) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(p.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(p.ID, sid)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := SessionKey(p.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    p.ID,
			"email":      p.Email,
			"username":   p.Username,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *ProfileService) Login(ctx context.Context, email, password string) (*entity.Profile, TokenPair, error) {
	p, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, p)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return p, pair, nil
}

// Refresh rotates the session id and both tokens when the refresh token matches the live session.
func (s *ProfileService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	p, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil || p == nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	if s.Redis != nil {
		sid, rErr := s.Redis.HGet(ctx, SessionKey(p.ID), "sid").Result()
		if rErr != nil || sid != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, p)
}

// Logout drops the Redis session so outstanding access tokens stop working.
func (s *ProfileService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, SessionKey(userID)).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Repo.GetByID(ctx, userID)
	if err != nil || p == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithError(err).WithField("user_id", userID).Error("load profile failed")
		}
		return nil, ErrUserNotFound
	}
	return p, nil
}

// ValidateUsername trims name and checks its length in runes.
func (s *ProfileService) ValidateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < s.UsernameMinLen {
		return "", ErrUsernameTooShort
	}
	if n > UsernameMaxLen {
		return "", ErrUsernameTooLong
	}
	return name, nil
}

func (s *ProfileService) UpdateUsername(ctx context.Context, userID, name string) (*entity.Profile, error) {
	name, err := s.ValidateUsername(name)
	if err != nil {
		return nil, err
	}
	prev, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Repo.UpdateUsername(ctx, userID, name)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.Logger.WithError(err).WithField("user_id", userID).Error("update username failed")
		return nil, fmt.Errorf("update username: %w", err)
	}

	s.touchSession(ctx, p)
	_ = s.indexProfile(ctx, p)
	s.publish(ctx, entity.ProfileEvent{
		Type:     entity.EventUsernameUpdated,
		UserID:   p.ID,
		Email:    p.Email,
		Username: p.Username,
		Changes:  map[string]string{"username": prev.Username + " -> " + p.Username},
	})
	return p, nil
}

// UpdateAvatar accepts the avatar as a base64 data URI, re-validates it and
// persists it through the configured AvatarStore.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID, dataURI string) (*entity.Profile, error) {
	ct, data, err := ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	if err := validateAvatarBytes(ct, data, s.AvatarMaxBytes); err != nil {
		return nil, err
	}
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	url, err := s.Avatars.Store(ctx, userID, ct, data)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("store avatar failed")
		return nil, fmt.Errorf("store avatar: %w", err)
	}
	p, err := s.Repo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.Logger.WithError(err).WithField("user_id", userID).Error("update avatar failed")
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	s.touchSession(ctx, p)
	_ = s.indexProfile(ctx, p)
	s.publish(ctx, entity.ProfileEvent{
		Type:     entity.EventAvatarUpdated,
		UserID:   p.ID,
		Email:    p.Email,
		Username: p.Username,
		Changes:  map[string]string{"avatar": ct},
	})
	return p, nil
}

// touchSession refreshes cached session fields and keeps the existing TTL.
func (s *ProfileService) touchSession(ctx context.Context, p *entity.Profile) {
	if s.Redis == nil {
		return
	}
	key := SessionKey(p.ID)
	ttl, tErr := s.Redis.TTL(ctx, key).Result()
	if tErr != nil || ttl <= 0 {
		return
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"username":   p.Username,
		"updated_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, ttl)
	if _, pErr := pipe.Exec(ctx); pErr != nil {
		s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *ProfileService) publish(ctx context.Context, ev entity.ProfileEvent) {
	if s.Events == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(c, ev); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": ev.UserID, "type": ev.Type}).Warn("publish profile event failed")
	}
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) error {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         p.ID,
		"username":   p.Username,
		"has_avatar": p.HasAvatar(),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", p.ID).Warn("es index failed")
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", p.ID).Warn("es index response error")
	}
	return nil
}

// SearchProfiles runs a prefix-friendly match on usernames.
func (s *ProfileService) SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"match_bool_prefix": map[string]any{
				"username": q,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESProfilesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search profiles: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
