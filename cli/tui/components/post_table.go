package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"blogctl/cli/api"
	"blogctl/cli/helpers"
	"blogctl/cli/tui/styles"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// PostTable is an interactive post listing with filtering, sorting and
// pagination.
type PostTable struct {
	table        table.Model
	posts        []api.Post
	filteredRows []table.Row
	width        int
	height       int

	filterTerm    string
	sortColumn    string
	sortDirection SortOrder

	currentPage  int
	itemsPerPage int

	keyMap PostTableKeyMap
}

// PostTableKeyMap defines the key bindings for the post table.
type PostTableKeyMap struct {
	SortByTitle    key.Binding
	SortByAuthor   key.Binding
	SortByCreated  key.Binding
	SortByComments key.Binding
	ClearFilter    key.Binding
	NextPage       key.Binding
	PrevPage       key.Binding
	Refresh        key.Binding
	Select         key.Binding
	Delete         key.Binding
}

// DefaultPostTableKeyMap returns the default bindings.
func DefaultPostTableKeyMap() PostTableKeyMap {
	return PostTableKeyMap{
		SortByTitle:    newBinding([]string{"1"}, "sort by title", "1"),
		SortByAuthor:   newBinding([]string{"2"}, "sort by author", "2"),
		SortByCreated:  newBinding([]string{"3"}, "sort by created", "3"),
		SortByComments: newBinding([]string{"4"}, "sort by comments", "4"),
		ClearFilter:    newBinding([]string{"esc"}, "clear filter", "esc"),
		NextPage:       newBinding([]string{"n", "right"}, "next page", "n/→"),
		PrevPage:       newBinding([]string{"p", "left"}, "prev page", "p/←"),
		Refresh:        newBinding([]string{"r"}, "refresh", "r"),
		Select:         newBinding([]string{"enter"}, "open", "enter"),
		Delete:         newBinding([]string{"d"}, "delete", "d"),
	}
}

func newBinding(keys []string, help, display string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(display, help),
	)
}

// NewPostTable creates a post table over the given posts.
func NewPostTable(posts []api.Post) PostTable {
	columns := buildPostTableColumns()
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(defaultTableStyles())
	component := PostTable{
		table:         t,
		posts:         posts,
		sortColumn:    "created",
		sortDirection: SortOrderDesc,
		itemsPerPage:  20,
		keyMap:        DefaultPostTableKeyMap(),
	}
	component.updateFilteredRows()
	component.updateTableRows()
	return component
}

func buildPostTableColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Title", Width: 30},
		{Title: "Author", Width: 14},
		{Title: "Category", Width: 14},
		{Title: "Comments", Width: 9},
		{Title: "Published", Width: 9},
		{Title: "Created", Width: 12},
	}
}

func defaultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.Highlight).
		Background(styles.Surface).
		Bold(true)
	return s
}

// SetSize resizes the table to the terminal.
func (pt *PostTable) SetSize(width, height int) {
	pt.width = width
	pt.height = height
	pt.table.SetHeight(max(1, height-4))
}

// SetPosts replaces the listing data.
func (pt *PostTable) SetPosts(posts []api.Post) {
	pt.posts = posts
	pt.updateFilteredRows()
	pt.updateTableRows()
}

// SetFilter sets the filter term and resets pagination.
func (pt *PostTable) SetFilter(term string) {
	pt.filterTerm = term
	pt.currentPage = 0
	pt.updateFilteredRows()
	pt.updateTableRows()
}

// SelectedPost returns the post under the cursor, or nil.
func (pt *PostTable) SelectedPost() *api.Post {
	if len(pt.filteredRows) == 0 {
		return nil
	}
	start := pt.currentPage * pt.itemsPerPage
	idx := start + pt.table.Cursor()
	if idx < 0 || idx >= len(pt.filteredRows) {
		return nil
	}
	id := pt.filteredRows[idx][0]
	for i := range pt.posts {
		if fmt.Sprintf("%d", pt.posts[i].ID) == id {
			return &pt.posts[i]
		}
	}
	return nil
}

// Update handles key and resize messages.
func (pt *PostTable) Update(msg tea.Msg) (PostTable, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, pt.keyMap.SortByTitle):
			pt.setSortColumn("title")
		case key.Matches(keyMsg, pt.keyMap.SortByAuthor):
			pt.setSortColumn("author")
		case key.Matches(keyMsg, pt.keyMap.SortByCreated):
			pt.setSortColumn("created")
		case key.Matches(keyMsg, pt.keyMap.SortByComments):
			pt.setSortColumn("comments")
		case key.Matches(keyMsg, pt.keyMap.NextPage):
			pt.nextPage()
		case key.Matches(keyMsg, pt.keyMap.PrevPage):
			pt.prevPage()
		case key.Matches(keyMsg, pt.keyMap.ClearFilter):
			pt.SetFilter("")
		case key.Matches(keyMsg, pt.keyMap.Refresh):
			return *pt, func() tea.Msg { return PostRefreshMsg{} }
		case key.Matches(keyMsg, pt.keyMap.Select):
			if selected := pt.SelectedPost(); selected != nil {
				post := *selected
				return *pt, func() tea.Msg { return PostSelectedMsg{Post: post} }
			}
		case key.Matches(keyMsg, pt.keyMap.Delete):
			if selected := pt.SelectedPost(); selected != nil {
				post := *selected
				return *pt, func() tea.Msg { return PostDeleteMsg{Post: post} }
			}
		}
	}
	pt.table, cmd = pt.table.Update(msg)
	return *pt, cmd
}

// View renders the table with its header and pagination lines.
func (pt *PostTable) View() string {
	if pt.width <= 0 || pt.height <= 0 {
		return ""
	}
	sections := []string{
		pt.renderHeader(),
		pt.table.View(),
		pt.renderPagination(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (pt *PostTable) renderHeader() string {
	parts := []string{
		styles.InfoStyle.Render(fmt.Sprintf("Sort: %s %s", pt.sortColumn, pt.sortDirection)),
	}
	if pt.filterTerm != "" {
		parts = append(parts, styles.WarningStyle.Render("Filter: "+pt.filterTerm))
	}
	parts = append(parts, styles.HelpStyle.Render(fmt.Sprintf("Total: %d", len(pt.filteredRows))))
	return strings.Join(parts, " • ")
}

func (pt *PostTable) renderPagination() string {
	if len(pt.filteredRows) == 0 {
		return styles.PaginationStyle.Render("No posts found")
	}
	totalPages := (len(pt.filteredRows) + pt.itemsPerPage - 1) / pt.itemsPerPage
	start := pt.currentPage*pt.itemsPerPage + 1
	end := min(start+pt.itemsPerPage-1, len(pt.filteredRows))
	return styles.PaginationStyle.Render(fmt.Sprintf(
		"Page %d of %d • Items %d-%d of %d",
		pt.currentPage+1, totalPages, start, end, len(pt.filteredRows),
	))
}

func (pt *PostTable) setSortColumn(column string) {
	if pt.sortColumn == column {
		if pt.sortDirection == SortOrderAsc {
			pt.sortDirection = SortOrderDesc
		} else {
			pt.sortDirection = SortOrderAsc
		}
	} else {
		pt.sortColumn = column
		pt.sortDirection = SortOrderAsc
	}
	pt.updateFilteredRows()
	pt.updateTableRows()
}

func (pt *PostTable) nextPage() {
	totalPages := (len(pt.filteredRows) + pt.itemsPerPage - 1) / pt.itemsPerPage
	if pt.currentPage < totalPages-1 {
		pt.currentPage++
		pt.updateTableRows()
	}
}

func (pt *PostTable) prevPage() {
	if pt.currentPage > 0 {
		pt.currentPage--
		pt.updateTableRows()
	}
}

func (pt *PostTable) updateFilteredRows() {
	rows := make([]table.Row, 0, len(pt.posts))
	for i := range pt.posts {
		post := &pt.posts[i]
		if pt.filterTerm != "" && !pt.matchesFilter(post) {
			continue
		}
		published := "no"
		if post.IsPublished {
			published = "yes"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", post.ID),
			helpers.Truncate(post.Title, 28),
			helpers.Truncate(post.Author, 13),
			helpers.Truncate(post.Category, 13),
			fmt.Sprintf("%d", post.CommentsCount),
			published,
			post.CreatedAt.Format("2006-01-02"),
		})
	}
	pt.sortRows(rows)
	pt.filteredRows = rows
}

func (pt *PostTable) matchesFilter(post *api.Post) bool {
	term := strings.ToLower(pt.filterTerm)
	return strings.Contains(strings.ToLower(post.Title), term) ||
		strings.Contains(strings.ToLower(post.Author), term) ||
		strings.Contains(strings.ToLower(post.Category), term)
}

func (pt *PostTable) sortRows(rows []table.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch pt.sortColumn {
		case "title":
			less = strings.ToLower(rows[i][1]) < strings.ToLower(rows[j][1])
		case "author":
			less = strings.ToLower(rows[i][2]) < strings.ToLower(rows[j][2])
		case "comments":
			less = len(rows[i][4]) < len(rows[j][4]) ||
				(len(rows[i][4]) == len(rows[j][4]) && rows[i][4] < rows[j][4])
		case "created":
			less = rows[i][6] < rows[j][6]
		default:
			less = rows[i][6] < rows[j][6]
		}
		if pt.sortDirection == SortOrderDesc {
			less = !less
		}
		return less
	})
}

func (pt *PostTable) updateTableRows() {
	if len(pt.filteredRows) == 0 {
		pt.table.SetRows([]table.Row{})
		return
	}
	start := pt.currentPage * pt.itemsPerPage
	if start >= len(pt.filteredRows) {
		pt.currentPage = 0
		start = 0
	}
	end := min(start+pt.itemsPerPage, len(pt.filteredRows))
	pt.table.SetRows(pt.filteredRows[start:end])
}

// PostRefreshMsg asks the parent model to reload the listing.
type PostRefreshMsg struct{}

// PostSelectedMsg carries the post chosen with enter.
type PostSelectedMsg struct {
	Post api.Post
}

// PostDeleteMsg asks the parent model to delete the post.
type PostDeleteMsg struct {
	Post api.Post
}
