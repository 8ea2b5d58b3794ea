// Package users implements the admin user-management commands.
package users

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/guard"
	"blogctl/cli/helpers"
)

// Cmd returns the users command group. Every subcommand is admin only.
func Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}
	c.AddCommand(listCmd(), setRoleCmd(), setStatusCmd())
	return c
}

func listCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List all user accounts",
		RunE:  runList,
	}
	c.Flags().String("role", "", "Filter by role: user, moderator or admin")
	c.Flags().String("filter", "", "Filter by username or email")
	c.Flags().String("sort", "created", "Sort by field: created, username, email, role")
	return c
}

func runList(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.RequireRole(api.RoleAdmin)}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListJSON(ctx, c, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListTUI(ctx, c, e)
		},
	}, args)
}

func setRoleCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set-role [user-id]",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetRole,
	}
	c.Flags().String("role", "", "New role: user, moderator or admin")
	return c
}

func runSetRole(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.RequireRole(api.RoleAdmin)}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runSetRoleJSON(ctx, c, e, args[0])
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runSetRoleTUI(ctx, c, e, args[0])
		},
	}, args)
}

func setStatusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set-status [user-id]",
		Short: "Activate or deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE:  runSetStatus,
	}
	c.Flags().Bool("active", true, "Whether the account is active")
	return c
}

func runSetStatus(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.RequireRole(api.RoleAdmin)}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runSetStatusJSON(ctx, c, e, args[0])
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runSetStatusJSON(ctx, c, e, args[0])
		},
	}, args)
}

func roleFromFlags(c *cobra.Command) (api.Role, error) {
	raw, err := c.Flags().GetString("role")
	if err != nil {
		return "", fmt.Errorf("failed to get role flag: %w", err)
	}
	role := api.Role(raw)
	if !role.Valid() {
		return "", helpers.NewCliError("INVALID_ROLE",
			"role must be user, moderator or admin", fmt.Sprintf("provided: %s", raw))
	}
	return role, nil
}
