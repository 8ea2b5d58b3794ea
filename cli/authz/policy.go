// Package authz holds the pure authorization predicates shared by the
// route guard and the per-row action rendering. Both must consult the
// same predicate so the UI never diverges from navigation enforcement.
// The remote API re-checks everything independently; nothing here is a
// security boundary.
package authz

import (
	"slices"

	"blogctl/cli/api"
)

// CanAccessRoute gates navigation. Admin always passes; otherwise the
// identity's role must equal required or be a member of anyOf. A nil
// identity (signed out) always fails closed. Passing a zero required and
// empty anyOf gates on authentication only.
func CanAccessRoute(ident *api.User, required api.Role, anyOf []api.Role) bool {
	if ident == nil {
		return false
	}
	if ident.Role == api.RoleAdmin {
		return true
	}
	if required != "" && ident.Role != required {
		return false
	}
	if len(anyOf) > 0 && !slices.Contains(anyOf, ident.Role) {
		return false
	}
	return true
}

// CanEditPost allows only the author. Admin deliberately has no edit
// override here even though it has one for delete; the asymmetry is the
// product behavior.
func CanEditPost(ident *api.User, post *api.Post) bool {
	if ident == nil || post == nil {
		return false
	}
	return ident.ID == post.AuthorID
}

// CanDeletePost allows admin or the author.
func CanDeletePost(ident *api.User, post *api.Post) bool {
	if ident == nil || post == nil {
		return false
	}
	return ident.Role == api.RoleAdmin || ident.ID == post.AuthorID
}

// CanDeleteComment allows admin, any moderator, or the author.
func CanDeleteComment(ident *api.User, comment *api.Comment) bool {
	if ident == nil || comment == nil {
		return false
	}
	if ident.Role == api.RoleAdmin || ident.Role == api.RoleModerator {
		return true
	}
	return ident.ID == comment.AuthorID
}

// CanDeleteCategory is admin only.
func CanDeleteCategory(ident *api.User) bool {
	return ident != nil && ident.Role == api.RoleAdmin
}

// CanManageUsers gates the user administration surface.
func CanManageUsers(ident *api.User) bool {
	return ident != nil && ident.Role == api.RoleAdmin
}

// CanViewStats gates the stats dashboard.
func CanViewStats(ident *api.User) bool {
	if ident == nil {
		return false
	}
	return ident.Role == api.RoleAdmin || ident.Role == api.RoleModerator
}
