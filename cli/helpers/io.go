package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteJSON writes v as indented JSON to w.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// OutputJSON writes v as indented JSON to stdout.
func OutputJSON(v any) error {
	return WriteJSON(os.Stdout, v)
}

// ParseID parses a positional argument as a positive numeric id.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewCliError("INVALID_ID", fmt.Sprintf("%q is not a valid id", arg))
	}
	return id, nil
}

// Pluralize returns singular or plural based on count.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// Truncate shortens s to at most maxLength characters, ending with an
// ellipsis when it had to cut.
func Truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
