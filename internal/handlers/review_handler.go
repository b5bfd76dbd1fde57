package handlers

import (
	"reviewhub/internal/middleware"
	"reviewhub/internal/permissions"
	"reviewhub/internal/services"
	"reviewhub/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler serves reviews under a title and comments under a review.
type ReviewHandler struct {
	reviews  *services.ReviewService
	comments *services.CommentService
	pager    Paginator
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService, comments *services.CommentService, pager Paginator) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, comments: comments, pager: pager, validate: validation.New()}
}

// RegisterRoutes registers the review and comment routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	policy := middleware.Authorize(permissions.OwnerOrModeratorOrAdminOrReadOnly)

	reviews := router.Group("/titles/:title_id/reviews")
	reviews.Get("/", policy, h.ListReviews)
	reviews.Post("/", policy, h.CreateReview)
	reviews.Get("/:review_id", policy, h.GetReview)
	reviews.Patch("/:review_id", policy, h.UpdateReview)
	reviews.Delete("/:review_id", policy, h.DeleteReview)

	comments := reviews.Group("/:review_id/comments")
	comments.Get("/", policy, h.ListComments)
	comments.Post("/", policy, h.CreateComment)
	comments.Get("/:comment_id", policy, h.GetComment)
	comments.Patch("/:comment_id", policy, h.UpdateComment)
	comments.Delete("/:comment_id", policy, h.DeleteComment)
}

// CreateReviewRequest is the body of a new review.
type CreateReviewRequest struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,min=1,max=10"`
}

// UpdateReviewRequest is the body of a review PATCH.
type UpdateReviewRequest struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,min=1,max=10"`
}

// CommentRequest is the body of a new or patched comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

type route struct {
	titleID, reviewID, commentID uint
}

// ids parses the named route ids; a malformed one is a 404.
func ids(c *fiber.Ctx, names ...string) (route, error) {
	var r route
	for _, name := range names {
		id, err := paramID(c, name)
		if err != nil {
			return r, err
		}
		switch name {
		case "title_id":
			r.titleID = id
		case "review_id":
			r.reviewID = id
		case "comment_id":
			r.commentID = id
		}
	}
	return r, nil
}

func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	r, err := ids(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}
	reviews, total, err := h.reviews.List(c.UserContext(), r.titleID, page)
	if err != nil {
		return respondError(c, err)
	}
	return h.pager.Respond(c, page, total, newReviewResponses(reviews))
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	r, err := ids(c, "title_id")
	if err != nil {
		return respondError(c, err)
	}
	var req CreateReviewRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviews.Create(c.UserContext(), middleware.Actor(c), r.titleID, req.Text, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newReviewResponse(review))
}

func (h *ReviewHandler) GetReview(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id")
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.reviews.Get(c.UserContext(), r.titleID, r.reviewID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newReviewResponse(review))
}

func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateReviewRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	review, err := h.reviews.Update(c.UserContext(), middleware.Actor(c), r.titleID, r.reviewID, req.Text, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newReviewResponse(review))
}

func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reviews.Delete(c.UserContext(), middleware.Actor(c), r.titleID, r.reviewID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ReviewHandler) ListComments(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id")
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.pager.Page(c)
	if err != nil {
		return respondError(c, err)
	}
	comments, total, err := h.comments.List(c.UserContext(), r.titleID, r.reviewID, page)
	if err != nil {
		return respondError(c, err)
	}
	return h.pager.Respond(c, page, total, newCommentResponses(comments))
}

func (h *ReviewHandler) CreateComment(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id")
	if err != nil {
		return respondError(c, err)
	}
	var req CommentRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := h.comments.Create(c.UserContext(), middleware.Actor(c), r.titleID, r.reviewID, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCommentResponse(comment))
}

func (h *ReviewHandler) GetComment(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id", "comment_id")
	if err != nil {
		return respondError(c, err)
	}
	comment, err := h.comments.Get(c.UserContext(), r.titleID, r.reviewID, r.commentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

func (h *ReviewHandler) UpdateComment(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id", "comment_id")
	if err != nil {
		return respondError(c, err)
	}
	var req CommentRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}
	comment, err := h.comments.Update(c.UserContext(), middleware.Actor(c), r.titleID, r.reviewID, r.commentID, &req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newCommentResponse(comment))
}

func (h *ReviewHandler) DeleteComment(c *fiber.Ctx) error {
	r, err := ids(c, "title_id", "review_id", "comment_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.comments.Delete(c.UserContext(), middleware.Actor(c), r.titleID, r.reviewID, r.commentID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
