package users

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/helpers"
	"blogctl/pkg/logger"
)

func runListJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	roleFilter, err := c.Flags().GetString("role")
	if err != nil {
		return fmt.Errorf("failed to get role flag: %w", err)
	}
	filter, err := c.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}
	sortBy, err := c.Flags().GetString("sort")
	if err != nil {
		return fmt.Errorf("failed to get sort flag: %w", err)
	}
	logger.FromContext(ctx).Debug("listing users",
		"role", roleFilter, "filter", filter, "sort", sortBy)

	users, err := e.Users().List(ctx)
	if err != nil {
		return err
	}
	users = filterUsers(users, roleFilter, filter)
	sortUsers(users, sortBy)
	return helpers.OutputJSON(map[string]any{
		"users": users,
		"total": len(users),
	})
}

func filterUsers(users []api.User, role, term string) []api.User {
	if role == "" && term == "" {
		return users
	}
	term = strings.ToLower(term)
	filtered := make([]api.User, 0, len(users))
	for _, user := range users {
		if role != "" && string(user.Role) != role {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(user.Username), term) &&
			!strings.Contains(strings.ToLower(user.Email), term) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered
}

func sortUsers(users []api.User, sortBy string) {
	switch sortBy {
	case "username":
		sort.Slice(users, func(i, j int) bool {
			return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
		})
	case "email":
		sort.Slice(users, func(i, j int) bool {
			return strings.ToLower(users[i].Email) < strings.ToLower(users[j].Email)
		})
	case "role":
		sort.Slice(users, func(i, j int) bool {
			return users[i].Role < users[j].Role
		})
	case "created", "":
		sort.Slice(users, func(i, j int) bool {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		})
	}
}

func runSetRoleJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	role, err := roleFromFlags(c)
	if err != nil {
		return err
	}
	updated, err := e.Users().SetRole(ctx, id, role)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(updated)
}

func runSetStatusJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	active, err := c.Flags().GetBool("active")
	if err != nil {
		return fmt.Errorf("failed to get active flag: %w", err)
	}
	updated, err := e.Users().SetStatus(ctx, id, active)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(updated)
}
