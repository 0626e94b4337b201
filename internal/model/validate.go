package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTool converts a tool name to a Tool. Matching is case-insensitive.
func ParseTool(s string) (Tool, error) {
	switch Tool(strings.ToLower(strings.TrimSpace(s))) {
	case ToolPen:
		return ToolPen, nil
	case ToolEraser:
		return ToolEraser, nil
	}
	return "", fmt.Errorf("unknown tool %q (expected %s or %s)", s, ToolPen, ToolEraser)
}

// ToolStyle returns the color and width a tool fixes for subsequent points.
func ToolStyle(t Tool) (color string, width float64) {
	if t == ToolEraser {
		return EraserColor, EraserWidth
	}
	return PenColor, PenWidth
}

// NormalizeColor validates a CSS hex color (#rgb or #rrggbb) and returns
// it in lowercase #rrggbb form.
func NormalizeColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		return "", fmt.Errorf("invalid color %q: must start with #", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return "", fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q: not hexadecimal", s)
	}
	return "#" + hex, nil
}

// ParseColor returns the RGB components of a #rgb or #rrggbb color.
func ParseColor(s string) (r, g, b uint8, err error) {
	norm, err := NormalizeColor(s)
	if err != nil {
		return 0, 0, 0, err
	}
	v, _ := strconv.ParseUint(norm[1:], 16, 32)
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// IsBlank reports whether every given string is empty or whitespace-only.
func IsBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
