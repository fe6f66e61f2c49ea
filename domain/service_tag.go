package domain

import (
	"fmt"
	"nearby-chat/errors"
	"regexp"
)

// Bonjour service types are limited to 15 lowercase ASCII letters, digits and hyphens.
var serviceTagPattern = regexp.MustCompile(`^[a-z0-9-]{1,15}$`)

// ValidateServiceTag checks the tag scoping discovery, so only sessions of the
// same application see each other.
func ValidateServiceTag(tag string) error {
	if !serviceTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q", errors.ErrInvalidServiceTag, tag)
	}
	return nil
}
