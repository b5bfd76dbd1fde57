package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reviewhub/internal/mailer"
	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds the token and code lifetimes of AuthService.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	CodeTTL   time.Duration
}

// AuthService handles signup, confirmation codes and access tokens.
type AuthService struct {
	users     repositories.UserRepository
	codes     repositories.ConfirmationCodeRepository
	mail      mailer.Sender
	logger    *slog.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	codeTTL   time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users repositories.UserRepository,
	codes repositories.ConfirmationCodeRepository,
	mail mailer.Sender,
	cfg AuthConfig,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		codes:     codes,
		mail:      mail,
		logger:    logger,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  cfg.TokenTTL,
		codeTTL:   cfg.CodeTTL,
		now:       time.Now,
	}
}

// Signup registers a pending user, or reuses the one with exactly the same
// username and email, and mails them a fresh confirmation code.
func (s *AuthService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}

	user, err := s.reusableUser(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if err := checkUnique(ctx, s.users, username, email, ""); err != nil {
			return nil, err
		}
		user = &models.User{Username: username, Email: email, Role: models.RoleUser}
		if err := s.users.Create(ctx, user); err != nil {
			if isDuplicate(err) {
				return nil, duplicateUserError(ctx, s.users, username, email, "")
			}
			return nil, fmt.Errorf("failed to register user: %w", err)
		}
	}

	if err := s.sendCode(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// reusableUser returns the existing user owning both username and email. Such
// a user gets a fresh code, which voids any code mailed earlier.
func (s *AuthService) reusableUser(ctx context.Context, username, email string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !strings.EqualFold(user.Email, email) {
		return nil, nil
	}
	return user, nil
}

func (s *AuthService) sendCode(ctx context.Context, user *models.User) error {
	code := strings.ReplaceAll(uuid.NewString(), "-", "")
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash confirmation code: %w", err)
	}

	record := &models.ConfirmationCode{
		UserID:    user.ID,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.codeTTL),
	}
	if err := s.codes.Replace(ctx, record); err != nil {
		return err
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: "Your confirmation code",
		Body: fmt.Sprintf("Hello %s,\n\nyour confirmation code is %s\nIt expires at %s.\n",
			user.Username, code, record.ExpiresAt.UTC().Format(time.RFC1123)),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "confirmation mail not sent",
			slog.String("username", user.Username), slog.Any("error", err))
	}
	return nil
}

// IssueToken exchanges the newest outstanding confirmation code of username for
// an access token. The code is consumed and the user becomes active.
func (s *AuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	now := s.now()
	record, err := s.codes.Latest(ctx, user.ID, now)
	if isNotFound(err) {
		return "", ErrInvalidCode
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up confirmation code: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)); err != nil {
		return "", ErrInvalidCode
	}
	if err := s.codes.Consume(ctx, record.ID, now); err != nil {
		if isNotFound(err) {
			return "", ErrInvalidCode
		}
		return "", err
	}

	user.Status = models.StatusActive
	if user.ConfirmedAt == nil {
		user.ConfirmedAt = &now
	}
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	return s.signToken(user, now)
}

func (s *AuthService) signToken(user *models.User, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
