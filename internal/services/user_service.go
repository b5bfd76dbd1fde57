package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"
	"reviewhub/internal/validation"
)

// UserPatch carries the user fields a request sets; nil fields are left alone.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *models.Role
}

// UserService handles admin user management and the current-user profile.
type UserService struct {
	users repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, search string, page repositories.Page) ([]models.User, int64, error) {
	return s.users.List(ctx, search, page)
}

func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Create adds a user on behalf of an admin. The user stays pending until they
// sign up with the same username and email and confirm the mailed code.
func (s *UserService) Create(ctx context.Context, user *models.User) error {
	if err := validation.ValidateUsername(user.Username); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := checkUnique(ctx, s.users, user.Username, user.Email, ""); err != nil {
		return err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return duplicateUserError(ctx, s.users, user.Username, user.Email, "")
		}
		return err
	}
	return nil
}

// Update applies patch to the user named username, role included.
func (s *UserService) Update(ctx context.Context, username string, patch UserPatch) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, user, patch); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

// UpdateMe applies patch to the actor's own record. The role never changes here,
// whoever the actor is.
func (s *UserService) UpdateMe(ctx context.Context, actor *models.User, patch UserPatch) (*models.User, error) {
	patch.Role = nil
	if err := s.apply(ctx, actor, patch); err != nil {
		return nil, err
	}
	return actor, nil
}

// apply saves patch onto user. Changing the username or email voids any
// confirmation code mailed for the old identity.
func (s *UserService) apply(ctx context.Context, user *models.User, patch UserPatch) error {
	identityChanged := false

	if patch.Username != nil && *patch.Username != user.Username {
		if err := validation.ValidateUsername(*patch.Username); err != nil {
			return err
		}
		user.Username = *patch.Username
		identityChanged = true
	}
	if patch.Email != nil && !strings.EqualFold(*patch.Email, user.Email) {
		user.Email = *patch.Email
		identityChanged = true
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return validation.NewError("role", fmt.Sprintf("%q is not a valid choice", *patch.Role))
		}
		user.Role = *patch.Role
	}

	var err error
	if identityChanged {
		if uerr := checkUnique(ctx, s.users, user.Username, user.Email, user.ID); uerr != nil {
			return uerr
		}
		err = s.users.UpdateIdentity(ctx, user, time.Now())
	} else {
		err = s.users.Update(ctx, user)
	}
	if isDuplicate(err) {
		return duplicateUserError(ctx, s.users, user.Username, user.Email, user.ID)
	}
	return err
}

// checkUnique reports, per field, a username or email already held by a user
// other than selfID.
func checkUnique(ctx context.Context, users repositories.UserRepository, username, email, selfID string) error {
	verr := &validation.Error{}

	other, err := users.GetByUsername(ctx, username)
	switch {
	case err == nil && other.ID != selfID:
		verr.Add("username", "a user with that username already exists")
	case err != nil && !isNotFound(err):
		return fmt.Errorf("failed to check username: %w", err)
	}

	other, err = users.GetByEmail(ctx, email)
	switch {
	case err == nil && other.ID != selfID:
		verr.Add("email", "a user with that email already exists")
	case err != nil && !isNotFound(err):
		return fmt.Errorf("failed to check email: %w", err)
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// duplicateUserError names the field behind a unique violation that slipped
// past checkUnique because of a concurrent write.
func duplicateUserError(ctx context.Context, users repositories.UserRepository, username, email, selfID string) error {
	if err := checkUnique(ctx, users, username, email, selfID); err != nil {
		return err
	}
	return validation.NewError("username", "a user with that username or email already exists")
}
