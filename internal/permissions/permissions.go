// Package permissions decides whether an actor may read or write a resource.
// A nil actor is an anonymous request.
package permissions

import (
	"errors"
	"net/http"

	"reviewhub/internal/models"
)

var (
	// ErrUnauthenticated means the action needs credentials the request lacks.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	// ErrForbidden means the actor is known but not allowed.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// Action is the kind of operation being attempted.
type Action int

const (
	Read Action = iota
	Write
)

// ActionFor maps an HTTP method to an Action; only safe methods read.
func ActionFor(method string) Action {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return Read
	}
	return Write
}

// Policy is checked once per request and, for owned resources, once per object.
type Policy interface {
	Allow(actor *models.User, action Action) error
	AllowObject(actor *models.User, action Action, ownerID string) error
}

type adminOnly struct{}

// AdminOnly lets admins and superusers do anything and nobody else anything.
var AdminOnly Policy = adminOnly{}

func (adminOnly) Allow(actor *models.User, _ Action) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func (p adminOnly) AllowObject(actor *models.User, action Action, _ string) error {
	return p.Allow(actor, action)
}

type readOnlyUnlessAdmin struct{}

// ReadOnlyUnlessAdmin lets anyone read and only admins write.
var ReadOnlyUnlessAdmin Policy = readOnlyUnlessAdmin{}

func (readOnlyUnlessAdmin) Allow(actor *models.User, action Action) error {
	if action == Read {
		return nil
	}
	return AdminOnly.Allow(actor, action)
}

func (p readOnlyUnlessAdmin) AllowObject(actor *models.User, action Action, _ string) error {
	return p.Allow(actor, action)
}

type ownerOrStaff struct{}

// OwnerOrModeratorOrAdminOrReadOnly lets anyone read, any authenticated user
// create, and only the author, moderators or admins change an existing object.
var OwnerOrModeratorOrAdminOrReadOnly Policy = ownerOrStaff{}

func (ownerOrStaff) Allow(actor *models.User, action Action) error {
	if action == Read {
		return nil
	}
	if actor == nil {
		return ErrUnauthenticated
	}
	return nil
}

func (p ownerOrStaff) AllowObject(actor *models.User, action Action, ownerID string) error {
	if err := p.Allow(actor, action); err != nil {
		return err
	}
	if action == Read {
		return nil
	}
	switch {
	case actor.ID == ownerID, actor.IsModerator(), actor.IsAdmin():
		return nil
	}
	return ErrForbidden
}

type authenticated struct{}

// Authenticated admits any signed-in user.
var Authenticated Policy = authenticated{}

func (authenticated) Allow(actor *models.User, _ Action) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	return nil
}

func (p authenticated) AllowObject(actor *models.User, action Action, _ string) error {
	return p.Allow(actor, action)
}
