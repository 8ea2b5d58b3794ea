package posts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"blogctl/cli/api"
	"blogctl/cli/authz"
	"blogctl/cli/cmd"
	"blogctl/cli/controller"
	"blogctl/cli/helpers"
	"blogctl/cli/notify"
	"blogctl/cli/tui/components"
	"blogctl/cli/tui/models"
	"blogctl/cli/tui/styles"
	"blogctl/pkg/logger"
)

func runListTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, mine bool) error {
	filter, err := flagString(c, "filter")
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("opening post listing", "mine", mine)

	source := e.Posts().List
	if mine {
		source = e.Posts().Mine
	}
	list := controller.NewList(source, e.Hub())
	notifications, cancel := e.Hub().Subscribe()
	defer cancel()

	m := newListModel(ctx, e, list, notifications, filter)
	p := tea.NewProgram(&m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if model, ok := finalModel.(*listModel); ok && model.Error() != nil {
		return model.Error()
	}
	return nil
}

// listModel drives the interactive post listing: it loads through the
// list controller, renders the table and handles delete confirmation.
type listModel struct {
	models.BaseModel
	executor      *cmd.CommandExecutor
	list          *controller.List[api.Post]
	notifications <-chan notify.Notification

	table     components.PostTable
	statusBar components.StatusBar
	spinner   spinner.Model
	loading   bool
	filter    string

	confirming *api.Post
}

type postsLoadedMsg struct{}
type postsLoadFailedMsg struct{ err error }
type postDeletedMsg struct{ id int64 }
type postDeleteFailedMsg struct{}

func newListModel(
	ctx context.Context,
	e *cmd.CommandExecutor,
	list *controller.List[api.Post],
	notifications <-chan notify.Notification,
	filter string,
) listModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.InfoStyle
	return listModel{
		BaseModel:     models.NewBaseModel(ctx),
		executor:      e,
		list:          list,
		notifications: notifications,
		table:         components.NewPostTable(nil),
		statusBar:     components.NewStatusBar(),
		spinner:       s,
		loading:       true,
		filter:        filter,
	}
}

func (m *listModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPosts(),
		components.WaitForNotification(m.notifications),
	)
}

func (m *listModel) loadPosts() tea.Cmd {
	return func() tea.Msg {
		if err := m.list.Load(m.Context()); err != nil {
			return postsLoadFailedMsg{err: err}
		}
		return postsLoadedMsg{}
	}
}

func (m *listModel) deletePost(post api.Post) tea.Cmd {
	return func() tea.Msg {
		err := m.list.Delete(m.Context(), post.ID, func(ctx context.Context) error {
			return m.executor.Posts().Delete(ctx, post.ID)
		})
		if err != nil {
			// The controller already published the failure.
			return postDeleteFailedMsg{}
		}
		return postDeletedMsg{id: post.ID}
	}
}

func (m *listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.table.SetSize(msg.Width, msg.Height-2)
		m.statusBar.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.confirming != nil {
			return m.handleConfirmKey(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quit()
			return m, tea.Quit
		}

	case postsLoadedMsg:
		m.loading = false
		m.table.SetPosts(m.list.Items())
		if m.filter != "" {
			m.table.SetFilter(m.filter)
		}
		return m, nil

	case postsLoadFailedMsg:
		m.loading = false
		m.SetError(msg.err)
		return m, tea.Quit

	case postDeletedMsg:
		m.table.SetPosts(m.list.Items())
		m.executor.Hub().Success(fmt.Sprintf("post %d deleted", msg.id))
		return m, nil

	case postDeleteFailedMsg:
		// Collection untouched; the status bar shows the failure.
		return m, nil

	case components.PostRefreshMsg:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadPosts())

	case components.PostDeleteMsg:
		if !authz.CanDeletePost(m.executor.Session().Identity(), &msg.Post) {
			m.executor.Hub().Error("not allowed", "only an admin or the author may delete this post")
			return m, nil
		}
		post := msg.Post
		m.confirming = &post
		return m, nil

	case components.NotificationMsg:
		cmds := []tea.Cmd{components.WaitForNotification(m.notifications)}
		if cmd := m.statusBar.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if cmd := m.statusBar.Update(msg); cmd != nil {
		return m, cmd
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *listModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		post := *m.confirming
		m.confirming = nil
		return m, m.deletePost(post)
	case "n", "N", "esc", "q":
		m.confirming = nil
	case "ctrl+c":
		m.Quit()
		return m, tea.Quit
	}
	return m, nil
}

func (m *listModel) View() string {
	if m.IsQuitting() {
		return ""
	}
	if m.loading {
		return fmt.Sprintf("%s Loading posts...", m.spinner.View())
	}
	if m.confirming != nil {
		return styles.DialogStyle.Render(fmt.Sprintf(
			"Delete %q?\n\n%s",
			m.confirming.Title,
			styles.HelpStyle.Render("y confirm • n cancel"),
		))
	}
	sections := []string{m.table.View()}
	if bar := m.statusBar.View(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, styles.HelpStyle.Render(
		"enter open • d delete • r refresh • 1-4 sort • n/p page • q quit"))
	return strings.Join(sections, "\n")
}

func runShowTUI(ctx context.Context, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	post, comments, err := fetchPostWithComments(ctx, e, id)
	if err != nil {
		return err
	}
	fmt.Println(renderPost(post, comments))
	return nil
}

func renderPost(post *api.Post, comments []api.Comment) string {
	published := "draft"
	if post.IsPublished {
		published = "published"
	}
	var b strings.Builder
	b.WriteString(styles.RenderTitle(post.Title))
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf(
		"by %s in %s • %s • %s",
		post.Author, post.Category, published, post.CreatedAt.Format("2006-01-02"))))
	b.WriteString("\n\n")
	b.WriteString(post.Content)
	b.WriteString("\n\n")
	b.WriteString(styles.InfoStyle.Render(fmt.Sprintf(
		"%d %s", len(comments), helpers.Pluralize(len(comments), "comment", "comments"))))
	for _, comment := range comments {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  %s: %s",
			styles.WarningStyle.Render(comment.Author),
			comment.Content))
	}
	return b.String()
}

func runCreateTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor) error {
	input, err := postInputFromForm(ctx, c, e, nil)
	if err != nil {
		return err
	}
	created, err := e.Posts().Create(ctx, *input)
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Post %d created", created.ID)))
	return nil
}

func runUpdateTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	current, err := e.Posts().Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanEditPost(e.Session().Identity(), current) {
		return helpers.NewCliError("FORBIDDEN", "only the author may edit a post")
	}
	input, err := postInputFromForm(ctx, c, e, current)
	if err != nil {
		return err
	}
	updated, err := e.Posts().Update(ctx, id, *input)
	if err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Post %d updated", updated.ID)))
	return nil
}

// postInputFromForm collects post fields interactively, seeded from
// flags and, for updates, the current post.
func postInputFromForm(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, current *api.Post) (*api.PostInput, error) {
	title, err := flagString(c, "title")
	if err != nil {
		return nil, err
	}
	content, err := flagString(c, "content")
	if err != nil {
		return nil, err
	}
	categoryID, err := c.Flags().GetInt64("category")
	if err != nil {
		return nil, fmt.Errorf("failed to get category flag: %w", err)
	}
	published, err := c.Flags().GetBool("published")
	if err != nil {
		return nil, fmt.Errorf("failed to get published flag: %w", err)
	}
	if current != nil {
		if title == "" {
			title = current.Title
		}
		if content == "" {
			content = current.Content
		}
		if categoryID == 0 {
			categoryID = current.CategoryID
		}
		if !c.Flags().Changed("published") {
			published = current.IsPublished
		}
	}

	categories, err := e.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]huh.Option[string], 0, len(categories))
	for _, category := range categories {
		options = append(options, huh.NewOption(category.Name, strconv.FormatInt(category.ID, 10)))
	}
	categoryValue := ""
	if categoryID != 0 {
		categoryValue = strconv.FormatInt(categoryID, 10)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Content").
				Value(&content).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("content is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&categoryValue),
			huh.NewConfirm().
				Title("Publish now?").
				Value(&published),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("post form canceled: %w", err)
	}

	parsedCategory, err := strconv.ParseInt(categoryValue, 10, 64)
	if err != nil {
		return nil, helpers.NewCliError("INVALID_INPUT", "a category is required")
	}
	return &api.PostInput{
		Title:       title,
		Content:     content,
		CategoryID:  parsedCategory,
		IsPublished: published,
	}, nil
}

func runDeleteTUI(ctx context.Context, c *cobra.Command, e *cmd.CommandExecutor, arg string) error {
	id, err := helpers.ParseID(arg)
	if err != nil {
		return err
	}
	current, err := e.Posts().Get(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeletePost(e.Session().Identity(), current) {
		return helpers.NewCliError("FORBIDDEN", "only an admin or the author may delete a post")
	}
	force, err := c.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	if !force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", current.Title)).
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
	if err := e.Posts().Delete(ctx, id); err != nil {
		return err
	}
	fmt.Println(styles.SuccessStyle.Render(fmt.Sprintf("Post %d deleted", id)))
	return nil
}
