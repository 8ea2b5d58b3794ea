// Package guard decides whether a command surface may run for the
// current session, mirroring route protection: commands declare their
// requirement and the guard resolves it to a single decision.
package guard

import (
	"blogctl/cli/api"
	"blogctl/cli/authz"
	"blogctl/cli/session"
)

// Decision is the guard outcome.
type Decision int

const (
	// Allow lets the command proceed.
	Allow Decision = iota
	// SignIn means no live session exists; the user must authenticate.
	SignIn
	// Home means the session is live but lacks the required role.
	Home
)

func (d Decision) String() string {
	switch d {
	case SignIn:
		return "sign-in"
	case Home:
		return "home"
	default:
		return "allow"
	}
}

// Requirement declares what a command surface needs. The zero value is
// public. Role and Roles compose the same way route metadata does:
// either a single exact role or an any-of set, with admin always
// passing.
type Requirement struct {
	Authenticated bool
	Role          api.Role
	Roles         []api.Role
}

// Public is the open requirement.
var Public = Requirement{}

// Authenticated requires any live session.
var Authenticated = Requirement{Authenticated: true}

// RequireRole requires an exact role (admin always passes).
func RequireRole(role api.Role) Requirement {
	return Requirement{Authenticated: true, Role: role}
}

// RequireAnyRole requires membership in the given set (admin always
// passes).
func RequireAnyRole(roles ...api.Role) Requirement {
	return Requirement{Authenticated: true, Roles: roles}
}

// Check resolves a requirement against the session. The store must have
// been restored before calling; an unrestored store is treated as
// signed out.
func Check(store *session.Store, req Requirement) Decision {
	if !req.Authenticated && req.Role == "" && len(req.Roles) == 0 {
		return Allow
	}
	ident := store.Identity()
	if ident == nil {
		return SignIn
	}
	if authz.CanAccessRoute(ident, req.Role, req.Roles) {
		return Allow
	}
	return Home
}
