package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"blogctl/cli/notify"
	"blogctl/cli/tui/styles"
)

// statusTTL is how long a notification stays on screen.
const statusTTL = 4 * time.Second

// NotificationMsg wraps a hub notification for the TUI event loop.
type NotificationMsg struct {
	Notification notify.Notification
}

// statusExpiredMsg clears a displayed notification after its TTL.
type statusExpiredMsg struct {
	shownAt time.Time
}

// WaitForNotification returns a command that blocks on the hub channel
// and feeds the next notification into the program. Re-issue it after
// every NotificationMsg to keep listening.
func WaitForNotification(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Notification: n}
	}
}

// StatusBar renders the most recent transient notification.
type StatusBar struct {
	current *notify.Notification
	shownAt time.Time
	width   int
}

// NewStatusBar creates an empty status bar.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// Update handles notification and expiry messages.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		n := msg.Notification
		s.current = &n
		s.shownAt = time.Now()
		shownAt := s.shownAt
		return tea.Tick(statusTTL, func(time.Time) tea.Msg {
			return statusExpiredMsg{shownAt: shownAt}
		})
	case statusExpiredMsg:
		// Only clear if no newer notification replaced the one that
		// scheduled this expiry.
		if s.current != nil && !s.shownAt.After(msg.shownAt) {
			s.current = nil
		}
	}
	return nil
}

// View renders the bar, or an empty string when nothing is showing.
func (s *StatusBar) View() string {
	if s.current == nil {
		return ""
	}
	text := s.current.Summary
	if s.current.Detail != "" {
		text += ": " + s.current.Detail
	}
	switch s.current.Level {
	case notify.LevelError:
		return styles.ErrorStyle.Render(text)
	case notify.LevelSuccess:
		return styles.SuccessStyle.Render(text)
	default:
		return styles.InfoStyle.Render(text)
	}
}
