package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
	"github.com/oksasatya/go-recipe-profile/internal/screen"
	"github.com/oksasatya/go-recipe-profile/pkg/response"
	"github.com/oksasatya/go-recipe-profile/pkg/validation"
)

// ProfileService is implemented by application.ProfileService.
type ProfileService interface {
	screen.ProfileStore
	SearchProfiles(ctx context.Context, q string, size int) ([]map[string]any, error)
}

type ProfileHandler struct {
	Svc         ProfileService
	Deps        screen.Deps
	LoadTimeout time.Duration
	Logger      *logrus.Logger
}

// NewProfileHandler builds screens from deps; deps.Profiles should be svc.
func NewProfileHandler(svc ProfileService, deps screen.Deps, loadTimeout time.Duration, logger *logrus.Logger) *ProfileHandler {
	if deps.Profiles == nil {
		deps.Profiles = svc
	}
	if deps.Logger == nil {
		deps.Logger = logger
	}
	if loadTimeout <= 0 {
		loadTimeout = 3 * time.Second
	}
	return &ProfileHandler{Svc: svc, Deps: deps, LoadTimeout: loadTimeout, Logger: logger}
}

type updateUsernameRequest struct {
	Username string `json:"username" binding:"required,username"`
}

func profileBody(p *entity.Profile) gin.H {
	return gin.H{
		"id":         p.ID,
		"email":      p.Email,
		"username":   p.Username,
		"avatar_url": p.AvatarURL,
		"has_avatar": p.HasAvatar(),
		"created_at": p.CreatedAt,
		"updated_at": p.UpdatedAt,
	}
}

// GetProfile GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	p, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileBody(p), "profile", nil)
}

// UpdateUsername PUT /api/profile/username
func (h *ProfileHandler) UpdateUsername(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateUsername(c.Request.Context(), uid, req.Username)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, profileBody(p), "username updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "avatar").
// The upload goes through the screen so the user sees the same alerts.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"avatar": "is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Warn("open avatar part failed")
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	s := screen.NewScreen(h.Deps, uid)
	defer s.Unmount()
	err = s.UploadAvatar(c.Request.Context(), screen.AvatarFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, s.View().Header, "avatar updated", nil)
}

// Search GET /api/users/search?q=&size=
func (h *ProfileHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchProfiles(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("profile search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// Screen GET /api/profile/screen. Sections that do not settle within the
// load timeout are returned in their loading state.
func (h *ProfileHandler) Screen(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	s := screen.NewScreen(h.Deps, uid)
	s.Mount(c.Request.Context())

	wctx, cancel := context.WithTimeout(c.Request.Context(), h.LoadTimeout)
	if err := s.Wait(wctx); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Info("profile screen returned before all sections settled")
	}
	cancel()
	v := s.View()
	s.Unmount()

	if wantsHTML(c) {
		page, err := screen.RenderHTML(v)
		if err != nil {
			h.Logger.WithError(err).Error("render profile page failed")
			response.Error[any](c, http.StatusInternalServerError, "render failed", nil)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
		return
	}
	response.Success(c, http.StatusOK, v, "profile screen", nil)
}

func wantsHTML(c *gin.Context) bool {
	if f := c.Query("format"); f != "" {
		return strings.EqualFold(f, "html")
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
