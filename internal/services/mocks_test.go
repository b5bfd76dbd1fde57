package services_test

import (
	"context"
	"time"

	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if user.ID == "" {
		user.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateIdentity(ctx context.Context, user *models.User, t time.Time) error {
	return m.Called(ctx, user, t).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return userResult(m.Called(ctx, username))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) List(ctx context.Context, search string, page repositories.Page) ([]models.User, int64, error) {
	args := m.Called(ctx, search, page)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCodeRepository is a mock implementation of repositories.ConfirmationCodeRepository
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) Replace(ctx context.Context, code *models.ConfirmationCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockCodeRepository) Latest(ctx context.Context, userID string, t time.Time) (*models.ConfirmationCode, error) {
	args := m.Called(ctx, userID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfirmationCode), args.Error(1)
}

func (m *MockCodeRepository) Consume(ctx context.Context, id uint, t time.Time) error {
	return m.Called(ctx, id, t).Error(0)
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mailer.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// MockTitleRepository is a mock implementation of repositories.TitleRepository
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, filter repositories.TitleFilter, page repositories.Page) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, title *models.Title) error {
	return m.Called(ctx, title).Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, title *models.Title, replaceGenres bool) error {
	return m.Called(ctx, title, replaceGenres).Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID uint, page repositories.Page) ([]models.Review, int64, error) {
	args := m.Called(ctx, titleID, page)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForAuthor(ctx context.Context, titleID uint, authorID string) (bool, error) {
	args := m.Called(ctx, titleID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
