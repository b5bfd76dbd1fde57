package services

import (
	"context"
	"fmt"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
)

// CommentService manages comments under /titles/{title}/reviews/{review}.
type CommentService struct {
	titles   repositories.TitleRepository
	reviews  repositories.ReviewRepository
	comments repositories.CommentRepository
	policy   permissions.Policy
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	titles repositories.TitleRepository,
	reviews repositories.ReviewRepository,
	comments repositories.CommentRepository,
) *CommentService {
	return &CommentService{
		titles:   titles,
		reviews:  reviews,
		comments: comments,
		policy:   permissions.OwnerOrModeratorOrAdminOrReadOnly,
	}
}

// review loads the parent review. The title only has to exist.
func (s *CommentService) review(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	if err := requireTitle(ctx, s.titles, titleID); err != nil {
		return nil, err
	}
	return s.reviews.GetByID(ctx, reviewID)
}

func (s *CommentService) List(ctx context.Context, titleID, reviewID uint, page repositories.Page) ([]models.Comment, int64, error) {
	review, err := s.review(ctx, titleID, reviewID)
	if err != nil {
		return nil, 0, err
	}
	comments, total, err := s.comments.ListByReview(ctx, review.ID, page)
	if err != nil {
		return nil, 0, err
	}
	for i := range comments {
		comments[i].Review = *review
	}
	return comments, total, nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID uint) (*models.Comment, error) {
	review, err := s.review(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %d of review %d: %w", commentID, reviewID, ErrNotFound)
	}
	comment.Review = *review
	return comment, nil
}

func (s *CommentService) Create(ctx context.Context, actor *models.User, titleID, reviewID uint, text string) (*models.Comment, error) {
	if err := s.policy.Allow(actor, permissions.Write); err != nil {
		return nil, err
	}
	review, err := s.review(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{ReviewID: review.ID, AuthorID: actor.ID, Text: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *actor
	comment.Review = *review
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID uint, text *string) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AllowObject(actor, permissions.Write, comment.AuthorID); err != nil {
		return nil, err
	}
	if text != nil {
		comment.Text = *text
		if err := s.comments.Update(ctx, comment); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID uint) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := s.policy.AllowObject(actor, permissions.Write, comment.AuthorID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment.ID)
}
