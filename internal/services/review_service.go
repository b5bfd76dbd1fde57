package services

import (
	"context"
	"fmt"

	"reviewhub/internal/models"
	"reviewhub/internal/permissions"
	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"
)

const duplicateReviewMessage = "you have already reviewed this title"

// ReviewService manages the reviews nested under a title. Every write is checked
// against the owner/moderator/admin policy for the review being changed.
type ReviewService struct {
	titles  repositories.TitleRepository
	reviews repositories.ReviewRepository
	policy  permissions.Policy
}

// NewReviewService creates a new ReviewService.
func NewReviewService(titles repositories.TitleRepository, reviews repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		titles:  titles,
		reviews: reviews,
		policy:  permissions.OwnerOrModeratorOrAdminOrReadOnly,
	}
}

func (s *ReviewService) List(ctx context.Context, titleID uint, page repositories.Page) ([]models.Review, int64, error) {
	if err := requireTitle(ctx, s.titles, titleID); err != nil {
		return nil, 0, err
	}
	return s.reviews.ListByTitle(ctx, titleID, page)
}

// Get returns the review only if it belongs to the title.
func (s *ReviewService) Get(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, fmt.Errorf("review %d of title %d: %w", reviewID, titleID, ErrNotFound)
	}
	return review, nil
}

// Create posts the actor's review of the title. A second review by the same
// author is a validation error, whether caught up front or by the unique index.
func (s *ReviewService) Create(ctx context.Context, actor *models.User, titleID uint, text string, score int) (*models.Review, error) {
	if err := s.policy.Allow(actor, permissions.Write); err != nil {
		return nil, err
	}
	if err := requireTitle(ctx, s.titles, titleID); err != nil {
		return nil, err
	}

	exists, err := s.reviews.ExistsForAuthor(ctx, titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validation.NewError("non_field_errors", duplicateReviewMessage)
	}

	review := &models.Review{TitleID: titleID, AuthorID: actor.ID, Text: text, Score: score}
	if err := s.reviews.Create(ctx, review); err != nil {
		if isDuplicate(err) {
			return nil, validation.NewError("non_field_errors", duplicateReviewMessage)
		}
		return nil, err
	}
	return s.reviews.GetByID(ctx, review.ID)
}

// Update changes the text and/or score of a review.
func (s *ReviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID uint, text *string, score *int) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.AllowObject(actor, permissions.Write, review.AuthorID); err != nil {
		return nil, err
	}

	if text != nil {
		review.Text = *text
	}
	if score != nil {
		review.Score = *score
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID uint) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := s.policy.AllowObject(actor, permissions.Write, review.AuthorID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, review.ID)
}

func requireTitle(ctx context.Context, titles repositories.TitleRepository, id uint) error {
	exists, err := titles.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("title with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
