package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogctl/cli/api"
)

func user(id int64, role api.Role) *api.User {
	return &api.User{ID: id, Username: "u", Role: role, IsActive: true}
}

func TestCanAccessRoute(t *testing.T) {
	t.Run("Should fail closed for a nil identity", func(t *testing.T) {
		assert.False(t, CanAccessRoute(nil, "", nil))
		assert.False(t, CanAccessRoute(nil, api.RoleUser, nil))
	})

	t.Run("Should always pass admin", func(t *testing.T) {
		admin := user(1, api.RoleAdmin)
		assert.True(t, CanAccessRoute(admin, api.RoleModerator, nil))
		assert.True(t, CanAccessRoute(admin, "", []api.Role{api.RoleModerator}))
	})

	t.Run("Should match an exact required role", func(t *testing.T) {
		mod := user(2, api.RoleModerator)
		assert.True(t, CanAccessRoute(mod, api.RoleModerator, nil))
		assert.False(t, CanAccessRoute(mod, api.RoleUser, nil))
	})

	t.Run("Should match membership in an any-of set", func(t *testing.T) {
		mod := user(2, api.RoleModerator)
		assert.True(t, CanAccessRoute(mod, "", []api.Role{api.RoleAdmin, api.RoleModerator}))
		assert.False(t, CanAccessRoute(user(3, api.RoleUser), "", []api.Role{api.RoleAdmin, api.RoleModerator}))
	})

	t.Run("Should gate on authentication only with no role constraint", func(t *testing.T) {
		assert.True(t, CanAccessRoute(user(3, api.RoleUser), "", nil))
	})
}

func TestCanEditPost(t *testing.T) {
	post := &api.Post{ID: 10, AuthorID: 2}

	t.Run("Should allow only the author", func(t *testing.T) {
		assert.True(t, CanEditPost(user(2, api.RoleUser), post))
		assert.False(t, CanEditPost(user(3, api.RoleUser), post))
	})

	t.Run("Should not give admin an edit override", func(t *testing.T) {
		assert.False(t, CanEditPost(user(1, api.RoleAdmin), post))
	})

	t.Run("Should fail closed on nil inputs", func(t *testing.T) {
		assert.False(t, CanEditPost(nil, post))
		assert.False(t, CanEditPost(user(2, api.RoleUser), nil))
	})
}

func TestCanDeletePost(t *testing.T) {
	post := &api.Post{ID: 10, AuthorID: 2}

	t.Run("Should allow admin and the author", func(t *testing.T) {
		assert.True(t, CanDeletePost(user(1, api.RoleAdmin), post))
		assert.True(t, CanDeletePost(user(2, api.RoleUser), post))
	})

	t.Run("Should deny moderators and other users", func(t *testing.T) {
		assert.False(t, CanDeletePost(user(3, api.RoleModerator), post))
		assert.False(t, CanDeletePost(user(4, api.RoleUser), post))
	})
}

func TestCanDeleteComment(t *testing.T) {
	comment := &api.Comment{ID: 20, AuthorID: 5}

	t.Run("Should allow admin, moderator and the author", func(t *testing.T) {
		assert.True(t, CanDeleteComment(user(1, api.RoleAdmin), comment))
		assert.True(t, CanDeleteComment(user(2, api.RoleModerator), comment))
		assert.True(t, CanDeleteComment(user(5, api.RoleUser), comment))
	})

	t.Run("Should deny unrelated users", func(t *testing.T) {
		assert.False(t, CanDeleteComment(user(6, api.RoleUser), comment))
	})
}

func TestCategoryAndAdminGates(t *testing.T) {
	t.Run("Should restrict category deletion to admin", func(t *testing.T) {
		assert.True(t, CanDeleteCategory(user(1, api.RoleAdmin)))
		assert.False(t, CanDeleteCategory(user(2, api.RoleModerator)))
		assert.False(t, CanDeleteCategory(nil))
	})

	t.Run("Should restrict user management to admin", func(t *testing.T) {
		assert.True(t, CanManageUsers(user(1, api.RoleAdmin)))
		assert.False(t, CanManageUsers(user(2, api.RoleModerator)))
	})

	t.Run("Should open stats to admin and moderator", func(t *testing.T) {
		assert.True(t, CanViewStats(user(1, api.RoleAdmin)))
		assert.True(t, CanViewStats(user(2, api.RoleModerator)))
		assert.False(t, CanViewStats(user(3, api.RoleUser)))
		assert.False(t, CanViewStats(nil))
	})
}
