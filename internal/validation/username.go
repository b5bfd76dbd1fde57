package validation

import (
	"regexp"
	"strings"
)

// ReservedUsername is the alias used by the current-user endpoint.
const ReservedUsername = "me"

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername rejects the reserved alias (in any case) and names outside
// letters, digits and @.+-_ characters.
func ValidateUsername(username string) error {
	if strings.EqualFold(username, ReservedUsername) {
		return NewError("username", "username 'me' is reserved")
	}
	if !usernamePattern.MatchString(username) {
		return NewError("username", "username may contain only letters, digits and @/./+/-/_ characters")
	}
	return nil
}
