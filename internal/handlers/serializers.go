package handlers

import (
	"time"

	"reviewhub/internal/models"
)

type titleResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description string           `json:"description"`
	Genre       []models.Genre   `json:"genre"`
	Category    *models.Category `json:"category"`
}

func newTitleResponse(t *models.Title) titleResponse {
	genres := t.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    t.Category,
	}
}

func newTitleResponses(titles []models.Title) []titleResponse {
	out := make([]titleResponse, 0, len(titles))
	for i := range titles {
		out = append(out, newTitleResponse(&titles[i]))
	}
	return out
}

// reviewResponse names the title and author rather than exposing their ids.
type reviewResponse struct {
	ID      uint      `json:"id"`
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func newReviewResponse(r *models.Review) reviewResponse {
	return reviewResponse{
		ID:      r.ID,
		Title:   r.Title.Name,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.CreatedAt,
	}
}

func newReviewResponses(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, newReviewResponse(&reviews[i]))
	}
	return out
}

// commentResponse shows the parent review by its text.
type commentResponse struct {
	ID      uint      `json:"id"`
	Review  string    `json:"review"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func newCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{
		ID:      c.ID,
		Review:  c.Review.Text,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.CreatedAt,
	}
}

func newCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, newCommentResponse(&comments[i]))
	}
	return out
}

func nonNilUsers(users []models.User) []models.User {
	if users == nil {
		return []models.User{}
	}
	return users
}
