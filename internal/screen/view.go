package screen

import (
	"strconv"
	"time"

	"github.com/oksasatya/go-recipe-profile/internal/domain/entity"
)

// DefaultAvatarURL is shown until the user uploads a photo.
const DefaultAvatarURL = "https://avatar.vercel.sh/user.png?size=200"

const dateLayout = "02 January 2006"

type HeaderView struct {
	State     SectionState `json:"state"`
	Error     string       `json:"error,omitempty"`
	Username  string       `json:"username"`
	AvatarURL string       `json:"avatar_url"`
	Editing   bool         `json:"editing"`
	Draft     string       `json:"draft,omitempty"`
	Uploading bool         `json:"uploading"`
}

type SectionView[T any] struct {
	State SectionState `json:"state"`
	Error string       `json:"error,omitempty"`
	Items []T          `json:"items"`
}

type RecipeCard struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CategoryColor string `json:"category_color"`
	ImageURL      string `json:"image_url"`
	PrepTime      int    `json:"prep_time"`
	PrepTimeLabel string `json:"prep_time_label"`
	Difficulty    string `json:"difficulty"`
}

type ReviewCard struct {
	ID         string    `json:"id"`
	RecipeName string    `json:"recipe_name"`
	Rating     int       `json:"rating"`
	Stars      []bool    `json:"stars"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	DateLabel  string    `json:"date_label"`
}

type ScreenView struct {
	UserID    string                  `json:"user_id"`
	Header    HeaderView              `json:"header"`
	Favorites SectionView[RecipeCard] `json:"favorites"`
	Reviews   SectionView[ReviewCard] `json:"reviews"`
}

// View returns a snapshot of the screen.
func (s *Screen) View() ScreenView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := ScreenView{
		UserID: s.userID,
		Header: HeaderView{
			State:     s.profile.state,
			Error:     s.profile.err,
			AvatarURL: DefaultAvatarURL,
			Editing:   s.editing,
			Uploading: s.uploading,
		},
		Favorites: SectionView[RecipeCard]{State: s.favorites.state, Error: s.favorites.err, Items: []RecipeCard{}},
		Reviews:   SectionView[ReviewCard]{State: s.reviews.state, Error: s.reviews.err, Items: []ReviewCard{}},
	}
	if s.editing {
		v.Header.Draft = s.draft
	}
	if p := s.profile.data; p != nil {
		v.Header.Username = p.Username
		if p.HasAvatar() {
			v.Header.AvatarURL = p.AvatarURL
		}
	}
	for _, r := range s.favorites.data {
		v.Favorites.Items = append(v.Favorites.Items, NewRecipeCard(r))
	}
	for _, r := range s.reviews.data {
		v.Reviews.Items = append(v.Reviews.Items, NewReviewCard(r))
	}
	return v
}

func NewRecipeCard(r entity.Recipe) RecipeCard {
	color := "blue"
	if r.Category == entity.CategoryDrink {
		color = "green"
	}
	return RecipeCard{
		ID:            r.ID,
		Name:          r.Name,
		Category:      r.Category,
		CategoryColor: color,
		ImageURL:      r.ImageURL,
		PrepTime:      r.PrepTime,
		PrepTimeLabel: strconv.Itoa(r.PrepTime) + " mnt",
		Difficulty:    r.Difficulty,
	}
}

func NewReviewCard(r entity.Review) ReviewCard {
	rating := r.ClampedRating()
	return ReviewCard{
		ID:         r.ID,
		RecipeName: r.RecipeName,
		Rating:     rating,
		Stars:      Stars(rating),
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		DateLabel:  r.CreatedAt.Format(dateLayout),
	}
}

// Stars returns the five star slots, the first rating of them filled.
func Stars(rating int) []bool {
	out := make([]bool, entity.MaxRating)
	for i := range out {
		out[i] = i < rating
	}
	return out
}
