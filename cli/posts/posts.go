// Package posts implements the post commands: listing, inspection and
// the full write path.
package posts

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"blogctl/cli/cmd"
	"blogctl/cli/guard"
)

// Cmd returns the posts command group.
func Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage blog posts",
	}
	c.AddCommand(
		listCmd(),
		mineCmd(),
		showCmd(),
		createCmd(),
		updateCmd(),
		deleteCmd(),
	)
	return c
}

func listCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List all posts",
		Long:  "List all posts with their comment counts. Interactive mode opens a filterable table.",
		RunE:  runList,
	}
	c.Flags().String("filter", "", "Filter by title, author or category")
	return c
}

func runList(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListJSON(ctx, c, e, false)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListTUI(ctx, c, e, false)
		},
	}, args)
}

func mineCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mine",
		Short: "List your own posts",
		RunE:  runMine,
	}
	c.Flags().String("filter", "", "Filter by title, author or category")
	return c
}

func runMine(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListJSON(ctx, c, e, true)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runListTUI(ctx, c, e, true)
		},
	}, args)
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [post-id]",
		Short: "Show a post with its comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runShowJSON(ctx, e, args[0])
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runShowTUI(ctx, e, args[0])
		},
	}, args)
}

func createCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		RunE:  runCreate,
	}
	addPostFlags(c)
	return c
}

func runCreate(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runCreateJSON(ctx, c, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runCreateTUI(ctx, c, e)
		},
	}, args)
}

func updateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update [post-id]",
		Short: "Update a post you authored",
		Long:  "Update one of your own posts. Only the author may edit a post.",
		Args:  cobra.ExactArgs(1),
		RunE:  runUpdate,
	}
	addPostFlags(c)
	return c
}

func runUpdate(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runUpdateJSON(ctx, c, e, args[0])
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runUpdateTUI(ctx, c, e, args[0])
		},
	}, args)
}

func deleteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "delete [post-id]",
		Short: "Delete a post",
		Long:  "Delete a post. Admins may delete any post; everyone else only their own.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	c.Flags().Bool("force", false, "Skip the confirmation prompt")
	return c
}

func runDelete(c *cobra.Command, args []string) error {
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runDeleteJSON(ctx, c, e, args[0])
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
			return runDeleteTUI(ctx, c, e, args[0])
		},
	}, args)
}

func addPostFlags(c *cobra.Command) {
	c.Flags().String("title", "", "Post title")
	c.Flags().String("content", "", "Post body")
	c.Flags().Int64("category", 0, "Category id")
	c.Flags().Bool("published", false, "Publish immediately")
}

func flagString(c *cobra.Command, name string) (string, error) {
	value, err := c.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return value, nil
}
