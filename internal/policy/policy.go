// Package policy implements the ownership rules that gate writes on
// author-owned resources.
package policy

import "github.com/gofiber/fiber/v2"

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Allow permits the operation.
	Allow Decision = iota
	// DenyUnauthenticated rejects the operation because no principal is
	// present. Reported as 401.
	DenyUnauthenticated
	// DenyNotOwner rejects the operation because the principal is not
	// the owner of the target entity. Reported as 403.
	DenyNotOwner
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "deny:unauthenticated"
	case DenyNotOwner:
		return "deny:not-owner"
	default:
		return "deny:unknown"
	}
}

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

// Authorize decides whether principalID may perform method on an entity
// owned by ownerID. principalID zero means no authenticated principal.
// Safe methods are always allowed; unsafe methods require an
// authenticated principal equal to the owner. The two deny outcomes are
// distinct so handlers can map them to 401 vs 403.
func Authorize(principalID uint, method string, ownerID uint) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if principalID == 0 {
		return DenyUnauthenticated
	}
	if principalID != ownerID {
		return DenyNotOwner
	}
	return Allow
}

// AuthorizeCreate gates creation, where no entity exists yet to compare
// owners against: the only requirement is an authenticated principal.
func AuthorizeCreate(principalID uint) Decision {
	if principalID == 0 {
		return DenyUnauthenticated
	}
	return Allow
}
