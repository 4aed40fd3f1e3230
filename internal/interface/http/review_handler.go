package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-recipe-profile/internal/screen"
	"github.com/oksasatya/go-recipe-profile/pkg/response"
)

type ReviewHandler struct {
	Store screen.ReviewStore
}

func NewReviewHandler(store screen.ReviewStore) *ReviewHandler {
	return &ReviewHandler{Store: store}
}

// ListByUser GET /api/users/:id/reviews
func (h *ReviewHandler) ListByUser(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	list, err := h.Store.GetUserReviews(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	cards := make([]screen.ReviewCard, 0, len(list))
	for _, r := range list {
		cards = append(cards, screen.NewReviewCard(r))
	}
	response.Success(c, http.StatusOK, cards, "reviews", gin.H{"count": len(cards)})
}
