package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"blogctl/cli/api"
	"blogctl/cli/tui/models"
)

// CliError is a structured error surfaced to the user.
type CliError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *CliError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCliError creates a structured CLI error.
func NewCliError(code, message string, details ...string) *CliError {
	err := &CliError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// IsNetworkError reports whether err looks like a transport failure
// rather than a server response.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	keywords := []string{
		"connection refused", "connection reset",
		"no route to host", "network unreachable",
		"no such host", "broken pipe",
	}
	for _, keyword := range keywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// IsAuthError reports whether err is a credential or permission
// rejection from the server.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	return api.IsAuthRejection(err)
}

// FormatError renders an error for the given output mode.
func FormatError(err error, mode models.Mode) string {
	if err == nil {
		return ""
	}
	if mode == models.ModeJSON {
		return formatErrorJSON(err)
	}
	return formatErrorTUI(err)
}

func formatErrorJSON(err error) string {
	payload := map[string]any{"error": err.Error()}
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		payload = map[string]any{"error": cliErr.Message}
		if cliErr.Details != "" {
			payload["details"] = cliErr.Details
		}
	}
	out, marshalErr := json.MarshalIndent(payload, "", "  ")
	if marshalErr != nil {
		return `{"error": "failed to encode error"}`
	}
	return string(out)
}

var (
	errMessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	errDetailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

func formatErrorTUI(err error) string {
	message := err.Error()
	details := ""
	var cliErr *CliError
	if errors.As(err, &cliErr) {
		message = cliErr.Message
		details = cliErr.Details
	}
	result := errMessageStyle.Render("Error: " + message)
	if details != "" {
		result += "\n" + errDetailStyle.Render(details)
	}
	return result
}

// OutputError prints an error to stderr in the appropriate format.
func OutputError(err error, mode models.Mode) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err, mode))
}

// CategorizeError converts well-known failure shapes into structured
// CLI errors. Returns nil when err has no recognized category.
func CategorizeError(err error) *CliError {
	switch {
	case errors.Is(err, context.Canceled):
		return NewCliError("OPERATION_CANCELED", "operation was canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return NewCliError("OPERATION_TIMEOUT", "operation timed out")
	case IsNetworkError(err):
		return NewCliError("NETWORK_ERROR", "could not reach the server", err.Error())
	case IsAuthError(err):
		return NewCliError("AUTH_ERROR", "the server rejected the session", err.Error())
	default:
		return nil
	}
}
