package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/cmd"
	"blogctl/cli/controller"
	"blogctl/cli/helpers"
	"blogctl/cli/tui/models"
	"blogctl/cli/tui/styles"
	"blogctl/pkg/logger"
)

func runListTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	filter, err := c.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("failed to get filter flag: %w", err)
	}
	logger.FromContext(ctx).Debug("opening user listing")

	list := controller.NewList(e.Users().List, e.Hub())
	m := newListUsersModel(ctx, list, filter)
	p := tea.NewProgram(&m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if model, ok := finalModel.(*listUsersModel); ok && model.Error() != nil {
		return model.Error()
	}
	return nil
}

// listUsersModel renders the admin user table with client-side filter
// and sort.
type listUsersModel struct {
	models.BaseModel
	list    *controller.List[api.User]
	table   table.Model
	spinner spinner.Model
	loading bool
	filter  string
	sortBy  string
}

type usersLoadedMsg struct{}
type usersLoadFailedMsg struct{ err error }

func newListUsersModel(ctx context.Context, list *controller.List[api.User], filter string) listUsersModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.InfoStyle

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Username", Width: 18},
			{Title: "Email", Width: 28},
			{Title: "Role", Width: 10},
			{Title: "Active", Width: 7},
			{Title: "Created", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	ts.Selected = ts.Selected.
		Foreground(styles.Highlight).
		Background(styles.Surface).
		Bold(true)
	t.SetStyles(ts)

	return listUsersModel{
		BaseModel: models.NewBaseModel(ctx),
		list:      list,
		table:     t,
		spinner:   s,
		loading:   true,
		filter:    filter,
		sortBy:    "created",
	}
}

func (m *listUsersModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadUsers())
}

func (m *listUsersModel) loadUsers() tea.Cmd {
	return func() tea.Msg {
		if err := m.list.Load(m.Context()); err != nil {
			return usersLoadFailedMsg{err: err}
		}
		return usersLoadedMsg{}
	}
}

func (m *listUsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.table.SetHeight(max(1, msg.Height-4))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quit()
			return m, tea.Quit
		case "1":
			m.sortBy = "username"
			m.refreshRows()
		case "2":
			m.sortBy = "email"
			m.refreshRows()
		case "3":
			m.sortBy = "role"
			m.refreshRows()
		case "4":
			m.sortBy = "created"
			m.refreshRows()
		case "r":
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.loadUsers())
		}

	case usersLoadedMsg:
		m.loading = false
		m.refreshRows()
		return m, nil

	case usersLoadFailedMsg:
		m.loading = false
		m.SetError(msg.err)
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *listUsersModel) refreshRows() {
	users := filterUsers(m.list.Items(), "", m.filter)
	sortUsers(users, m.sortBy)
	rows := make([]table.Row, 0, len(users))
	for _, user := range users {
		active := "no"
		if user.IsActive {
			active = "yes"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", user.ID),
			helpers.Truncate(user.Username, 17),
			helpers.Truncate(user.Email, 27),
			string(user.Role),
			active,
			user.CreatedAt.Format("2006-01-02"),
		})
	}
	m.table.SetRows(rows)
}

func (m *listUsersModel) View() string {
	if m.IsQuitting() {
		return ""
	}
	if m.loading {
		return fmt.Sprintf("%s Loading users...", m.spinner.View())
	}
	header := styles.InfoStyle.Render(fmt.Sprintf("Sort: %s", m.sortBy))
	if m.filter != "" {
		header += " • " + styles.WarningStyle.Render("Filter: "+m.filter)
	}
	sections := []string{
		header,
		m.table.View(),
		styles.HelpStyle.Render("1-4 sort • r refresh • q quit"),
	}
	return strings.Join(sections, "\n")
}

func runSetRoleTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	raw, err := c.Flags().GetString("role")
	if err != nil {
		return fmt.Errorf("failed to get role flag: %w", err)
	}
	if raw == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("New role").
				Options(
					huh.NewOption("user", string(api.RoleUser)),
					huh.NewOption("moderator", string(api.RoleModerator)),
					huh.NewOption("admin", string(api.RoleAdmin)),
				).
				Value(&raw),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("role selection canceled: %w", err)
		}
	}
	role := api.Role(raw)
	if !role.Valid() {
		return helpers.NewCliError("INVALID_ROLE", "role must be user, moderator or admin")
	}
	updated, err := e.Users().SetRole(ctx, id, role)
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf(
		"%s is now %s", updated.Username, updated.Role)))
	return nil
}
