package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-recipe-profile/internal/screen"
	"github.com/oksasatya/go-recipe-profile/pkg/response"
)

type FavoriteHandler struct {
	Store  screen.FavoritesStore
	Logger *logrus.Logger
}

func NewFavoriteHandler(store screen.FavoritesStore, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{Store: store, Logger: logger}
}

// List GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.Store.Favorites(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	cards := make([]screen.RecipeCard, 0, len(list))
	for _, r := range list {
		cards = append(cards, screen.NewRecipeCard(r))
	}
	response.Success(c, http.StatusOK, cards, "favorites", gin.H{"count": len(cards)})
}

// toggleFor builds the button for the recipe in the path, seeded with the
// current count. Query: size=sm|md|lg, show_count=false hides the counter.
func (h *FavoriteHandler) toggleFor(c *gin.Context, uid, recipeID string, extra ...screen.ToggleOption) (*screen.FavoriteToggle, error) {
	ctx := c.Request.Context()
	count, err := h.Store.FavoriteCount(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	opts := []screen.ToggleOption{
		screen.WithInitialCount(count),
		screen.WithSize(screen.ToggleSize(c.DefaultQuery("size", string(screen.SizeMedium)))),
		screen.WithLogger(h.Logger),
	}
	if c.Query("show_count") != "false" {
		opts = append(opts, screen.WithShowCount())
	}
	opts = append(opts, extra...)
	return screen.NewFavoriteToggle(ctx, h.Store, uid, recipeID, opts...)
}

// Status GET /api/favorites/:recipeID
func (h *FavoriteHandler) Status(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "recipeID")
	if !ok {
		return
	}
	t, err := h.toggleFor(c, uid, recipeID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t.View(), "favorite status", nil)
}

// Toggle POST /api/favorites/:recipeID/toggle. A toggle that is already
// running for the same recipe is ignored rather than queued.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "recipeID")
	if !ok {
		return
	}
	var toggledTo *bool
	t, err := h.toggleFor(c, uid, recipeID, screen.WithOnToggle(func(_ string, favorited bool) { toggledTo = &favorited }))
	if err != nil {
		fail(c, err)
		return
	}

	changed, err := t.Activate(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	msg := "favorite toggled"
	if !changed {
		msg = "toggle already in progress"
	}
	response.Success(c, http.StatusOK, t.View(), msg, gin.H{"ignored": !changed, "changed_to": toggledTo})
}
