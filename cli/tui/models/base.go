// Package models holds the shared TUI model plumbing.
package models

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the output mode for commands.
type Mode string

const (
	// ModeTUI is interactive terminal UI mode.
	ModeTUI Mode = "tui"
	// ModeJSON is non-interactive JSON output mode.
	ModeJSON Mode = "json"
)

// BaseModel provides common state for TUI models.
type BaseModel struct {
	ctx      context.Context
	width    int
	height   int
	ready    bool
	quitting bool
	err      error
}

// NewBaseModel creates a base model bound to ctx.
func NewBaseModel(ctx context.Context) BaseModel {
	return BaseModel{ctx: ctx}
}

// Context returns the model's context.
func (m BaseModel) Context() context.Context {
	return m.ctx
}

// Size returns the last known terminal size.
func (m BaseModel) Size() (width, height int) {
	return m.width, m.height
}

// IsReady reports whether a window size has been received.
func (m BaseModel) IsReady() bool {
	return m.ready
}

// IsQuitting reports whether the model is shutting down.
func (m BaseModel) IsQuitting() bool {
	return m.quitting
}

// Error returns the model's recorded error, if any.
func (m BaseModel) Error() error {
	return m.err
}

// SetSize records the terminal size and marks the model ready.
func (m *BaseModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true
}

// SetError records an error for display.
func (m *BaseModel) SetError(err error) {
	m.err = err
}

// Quit marks the model as quitting.
func (m *BaseModel) Quit() {
	m.quitting = true
}

// Update handles the messages every model cares about.
func (m *BaseModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Quit()
			return tea.Quit
		}
	}
	return nil
}
