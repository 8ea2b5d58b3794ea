// Package categories implements the category commands. Creation and
// updates are open to any signed-in user; deletion is admin only.
package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/controller"
	"blogctl/cli/guard"
	"blogctl/cli/helpers"
	"blogctl/cli/tui/styles"
)

// Cmd returns the categories command group.
func Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "categories",
		Short: "Browse and manage post categories",
	}
	c.AddCommand(listCmd(), createCmd(), updateCmd(), deleteCmd())
	return c
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runListJSON(ctx, e)
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runListTUI(ctx, e)
				},
			}, args)
		},
	}
}

func createCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runCreateJSON(ctx, c, e)
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
					return runCreateTUI(ctx, c, e)
				},
			}, args)
		},
	}
	c.Flags().String("name", "", "Category name")
	return c
}

func updateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "update [category-id]",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.Authenticated}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runUpdateJSON(ctx, c, e, args[0])
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runUpdateTUI(ctx, c, e, args[0])
				},
			}, args)
		},
	}
	c.Flags().String("name", "", "New category name")
	return c
}

func deleteCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "delete [category-id]",
		Short: "Delete a category (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: guard.RequireRole(api.RoleAdmin)}, cmd.ModeHandlers{
				JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runDeleteJSON(ctx, c, e, args[0])
				},
				TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, args []string) error {
					return runDeleteTUI(ctx, c, e, args[0])
				},
			}, args)
		},
	}
	c.Flags().Bool("force", false, "Skip the confirmation prompt")
	return c
}

func runListJSON(ctx context.Context, e *cmd.CommandExecutor) error {
	list := controller.NewList(e.Categories().List, e.Hub())
	if err := list.Load(ctx); err != nil {
		return err
	}
	categories := list.Items()
	return helpers.OutputJSON(map[string]any{
		"categories": categories,
		"total":      len(categories),
	})
}

func runListTUI(ctx context.Context, e *cmd.CommandExecutor) error {
	categories, err := e.Categories().List(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		fmt.Println(styles.HelpStyle.Render("No categories yet"))
		return nil
	}
	var b strings.Builder
	b.WriteString(styles.RenderTitle("Categories"))
	for _, category := range categories {
		b.WriteString(fmt.Sprintf("\n  [%d] %s", category.ID, category.Name))
	}
	fmt.Println(b.String())
	return nil
}

func nameFromFlags(c *cobra.Command) (string, error) {
	name, err := c.Flags().GetString("name")
	if err != nil {
		return "", fmt.Errorf("failed to get name flag: %w", err)
	}
	return name, nil
}

func runCreateJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	name, err := nameFromFlags(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return helpers.NewCliError("INVALID_INPUT", "category name is required")
	}
	created, err := e.Categories().Create(ctx, api.CategoryInput{Name: name})
	if err != nil {
		return err
	}
	return helpers.OutputJSON(created)
}

func runCreateTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	name, err := nameFromFlags(c)
	if err != nil {
		return err
	}
	if name == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Category name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category name is required")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("category form canceled: %w", err)
		}
	}
	created, err := e.Categories().Create(ctx, api.CategoryInput{Name: name})
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Category %q created", created.Name)))
	return nil
}

func runUpdateJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	name, err := nameFromFlags(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return helpers.NewCliError("INVALID_INPUT", "category name is required")
	}
	updated, err := e.Categories().Update(ctx, id, api.CategoryInput{Name: name})
	if err != nil {
		return err
	}
	return helpers.OutputJSON(updated)
}

func runUpdateTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	name, err := nameFromFlags(c)
	if err != nil {
		return err
	}
	if name == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("New name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("category name is required")
					}
					return nil
				}),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("category form canceled: %w", err)
		}
	}
	updated, err := e.Categories().Update(ctx, id, api.CategoryInput{Name: name})
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Category %d renamed to %q", id, updated.Name)))
	return nil
}

func runDeleteJSON(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	force, err := c.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	if !force {
		return helpers.NewCliError("CONFIRMATION_REQUIRED",
			"deleting a category cannot be undone", "re-run with --force to proceed")
	}
	if err := e.Categories().Delete(ctx, id); err != nil {
		return err
	}
	return helpers.OutputJSON(map[string]any{
		"message":     "category deleted",
		"category_id": id,
	})
}

func runDeleteTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
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
				Title(fmt.Sprintf("Delete category %d?", id)).
				Description("Posts keep their category id but the name disappears.").
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
	if err := e.Categories().Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Category %d deleted", id)))
	return nil
}
