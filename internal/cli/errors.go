package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// NotFoundError indicates that a todo or note index does not exist.
type NotFoundError struct {
	Kind  string // "todo" or "note"
	Index int    // 1-based, as typed by the user
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.Index)
}

// ValidationError indicates bad user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// EmptyError reports an action that had nothing to act on, such as saving
// a note with no title, content or drawing.
type EmptyError struct {
	What string
	Hint string
}

func (e *EmptyError) Error() string {
	msg := "nothing to " + e.What
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

// ParseIndex converts a 1-based index argument into a 0-based index.
func ParseIndex(arg, kind string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, &ValidationError{Field: kind + " number", Message: fmt.Sprintf("%q is not a positive number", arg)}
	}
	return n - 1, nil
}

// FormatError returns the message printed for a failed command.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
