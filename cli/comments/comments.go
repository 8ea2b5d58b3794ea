// Package comments implements the comment commands.
package comments

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/authz"
	"blogctl/cli/cmd"
	"blogctl/cli/guard"
	"blogctl/cli/helpers"
	"blogctl/cli/tui/styles"
)

// Cmd returns the comments command group.
func Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "comments",
		Short: "Browse and manage post comments",
	}
	c.AddCommand(listCmd(), addCmd(), deleteCmd())
	return c
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [post-id]",
		Short: "List the comments on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runListJSON(ctx, e, args[0])
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runListTUI(ctx, e, args[0])
				},
			}, args)
		},
	}
}

func addCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add [post-id]",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runAddJSON(ctx, c, e, args[0])
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runAddTUI(ctx, c, e, args[0])
				},
			}, args)
		},
	}
	c.Flags().String("content", "", "Comment text")
	return c
}

func deleteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "delete [comment-id]",
		Short: "Delete a comment",
		Long:  "Delete a comment. Admins and moderators may delete any comment; everyone else only their own.",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runDeleteJSON(ctx, c, e, args[0])
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runDeleteTUI(ctx, c, e, args[0])
				},
			}, args)
		},
	}
	c.Flags().Int64("post", 0, "Post id the comment belongs to (needed to check ownership)")
	c.Flags().Bool("force", false, "Skip the confirmation prompt")
	return c
}

func runListJSON(ctx context.Context, e *cmd.CommandExecutor, arg string) error {
	postID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	comments, err := e.Comments().List(ctx, postID)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"comments": comments,
		"total":    len(comments),
	})
}

func runListTUI(ctx context.Context, e *cmd.CommandExecutor, arg string) error {
	postID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	comments, err := e.Comments().List(ctx, postID)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		fmt.Println(styles.HelpStyle.Render("No comments yet"))
		return nil
	}
	var b strings.Builder
	b.WriteString(styles.RenderTitle(fmt.Sprintf(
		"%d %s", len(comments), helpers.Pluralize(len(comments), "comment", "comments"))))
	for _, comment := range comments {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  [%d] %s: %s",
			comment.ID,
			styles.WarningStyle.Render(comment.Author),
			comment.Content))
	}
	fmt.Println(b.String())
	return nil
}

func runAddJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	postID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	content, err := c.Flags().GetString("content")
	if err != nil {
		return fmt.Errorf("failed to get content flag: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return helpers.NewCliError("INVALID_INPUT", "comment content is required")
	}
	created, err := e.Comments().Create(ctx, postID, api.CommentInput{Content: content})
	if err != nil {
		return err
	}
	return helpers.OutputJSON(created)
}

func runAddTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	postID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	content, err := c.Flags().GetString("content")
	if err != nil {
		return fmt.Errorf("failed to get content flag: %w", err)
	}
	if content == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("Comment").
				Value(&content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("comment content is required")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("comment canceled: %w", err)
		}
	}
	created, err := e.Comments().Create(ctx, postID, api.CommentInput{Content: content})
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Comment %d added", created.ID)))
	return nil
}

// findComment locates a comment by id within its post's thread. The API
// has no single-comment endpoint, so ownership checks need the post id.
func findComment(ctx context.Context, e *cmd.CommandExecutor, postID, commentID int64) (*api.Comment, error) {
	comments, err := e.Comments().List(ctx, postID)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID == commentID {
			return &comments[i], nil
		}
	}
	return nil, helpers.NewCliError("NOT_FOUND",
		fmt.Sprintf("comment %d not found on post %d", commentID, postID))
}

func checkDeleteAllowed(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, commentID int64) error {
	ident := e.Session().Identity()
	// Admins and moderators never need the ownership lookup.
	if ident != nil && (ident.Role == api.RoleAdmin || ident.Role == api.RoleModerator) {
		return nil
	}
	postID, err := c.Flags().GetInt64("post")
	if err != nil {
		return fmt.Errorf("failed to get post flag: %w", err)
	}
	if postID == 0 {
		return helpers.NewCliError("MISSING_FLAG",
			"--post is required to verify comment ownership")
	}
	comment, err := findComment(ctx, e, postID, commentID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteComment(ident, comment) {
		return helpers.NewCliError("FORBIDDEN",
			"only an admin, a moderator or the author may delete a comment")
	}
	return nil
}

func runDeleteJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	commentID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	if err := checkDeleteAllowed(ctx, c, e, commentID); err != nil {
		return err
	}
	force, err := c.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	if !force {
		return helpers.NewCliError("CONFIRMATION_REQUIRED",
			"deleting a comment cannot be undone", "re-run with --force to proceed")
	}
	if err := e.Comments().Delete(ctx, commentID); err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"message":    "comment deleted",
		"comment_id": commentID,
	})
}

func runDeleteTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	commentID, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	if err := checkDeleteAllowed(ctx, c, e, commentID); err != nil {
		return err
	}
	force, err := c.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	if !force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete comment %d?", commentID)).
				Description("This cannot be undone.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("delete canceled: %w", err)
		}
		if !confirmed {
			fmt.Println(styles.HelpStyle.Render("Delete canceled"))
			return nil
		}
	}
	if err := e.Comments().Delete(ctx, commentID); err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Comment %d deleted", commentID)))
	return nil
}
