// Package stats implements the dashboard command, available to admins
// and moderators.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/guard"
	"blogctl/cli/helpers"
	"blogctl/cli/tui/styles"
)

// Cmd returns the stats command.
func Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the blog dashboard (admin or moderator)",
		RunE:  runStats,
	}
}

func runStats(c *cobra.Command, args []string) error {
	require := guard.RequireAnyRole(api.RoleAdmin, api.RoleModerator)
	return cmd.ExecuteCommand(c, cmd.ExecutorOptions{Require: require}, cmd.ModeHandlers{
		JSON: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runStatsJSON(ctx, e)
		},
		TUI: func(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, _ []string) error {
			return runStatsTUI(ctx, e)
		},
	}, args)
}

func runStatsJSON(ctx context.Context, e *cmd.CommandExecutor) error {
	stats, err := e.Stats().Get(ctx)
	if err != nil {
		return err
	}
	return helpers.OutputJSON(stats)
}

func runStatsTUI(ctx context.Context, e *cmd.CommandExecutor) error {
	stats, err := e.Stats().Get(ctx)
	if err != nil {
		return err
	}
	ident := e.Session().Identity()
	showLastWeek := ident != nil && ident.Role == api.RoleAdmin
	fmt.Println(renderStats(stats, showLastWeek))
	return nil
}

func renderStats(stats *api.Stats, showLastWeek bool) string {
	var b strings.Builder
	b.WriteString(styles.RenderTitle("Blog dashboard"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Users:           %d\n", stats.TotalUsers))
	b.WriteString(fmt.Sprintf("  Posts:           %d\n", stats.TotalPosts))
	b.WriteString(fmt.Sprintf("  Comments:        %d\n", stats.TotalComments))
	if showLastWeek {
		b.WriteString(fmt.Sprintf("  Posts last week: %d\n", stats.PostsLastWeek))
	}

	if len(stats.PostsByCategory) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InfoStyle.Render("Posts by category"))
		b.WriteString("\n")
		writeSorted(&b, stats.PostsByCategory)
	}
	if len(stats.UsersByRole) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.InfoStyle.Render("Users by role"))
		b.WriteString("\n")
		writeSorted(&b, stats.UsersByRole)
	}
	return strings.TrimRight(b.String(), "\n")
}

// writeSorted prints map entries in descending count order so the
// output is stable across runs.
func writeSorted(b *strings.Builder, counts map[string]int) {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	for _, item := range entries {
		b.WriteString(fmt.Sprintf("  %-16s %d\n", item.name, item.count))
	}
}
