package autospec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MenuItemName is a menu item name split into its dish and sauce lines.
type MenuItemName struct {
	Name  string  `json:"name"`
	Sauce *string `json:"sauce,omitempty"`
}

// BuffetSplit groups buffet items by serving vessel.
type BuffetSplit struct {
	MetalIDs []string `json:"metal_ids"`
	ChinaIDs []string `json:"china_ids"`
}

// ParseMenuItem splits a multi-line item name on its first line break. The
// first line is the dish; the remaining lines, rejoined, are the sauce.
func ParseMenuItem(fullName string) MenuItemName {
	name, rest, found := strings.Cut(fullName, "\n")
	result := MenuItemName{Name: strings.TrimSpace(name)}
	if !found {
		return result
	}

	lines := strings.Split(rest, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	sauce := strings.TrimSpace(strings.Join(lines, "\n"))
	if sauce != "" {
		result.Sauce = &sauce
	}
	return result
}

// SplitBuffetItems puts the first half of the list (rounded up) in metal and
// the rest in china. This is a placeholder until items carry vessel
// metadata; order and count are preserved.
func SplitBuffetItems(ids []string) BuffetSplit {
	mid := (len(ids) + 1) / 2
	split := BuffetSplit{
		MetalIDs: make([]string, 0, mid),
		ChinaIDs: make([]string, 0, len(ids)-mid),
	}
	split.MetalIDs = append(split.MetalIDs, ids[:mid]...)
	split.ChinaIDs = append(split.ChinaIDs, ids[mid:]...)
	return split
}

var clockPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})(?::\d{2})?\s*$`)

// FormatTime converts a 24-hour "H:MM" or "HH:MM" time to 12-hour with an
// AM/PM suffix. Values already carrying AM or PM, and anything it cannot
// parse, are returned unchanged.
func FormatTime(s string) string {
	if strings.Contains(s, "AM") || strings.Contains(s, "PM") {
		return s
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil || hours > 23 {
		return s
	}
	minutes := m[2]
	if minutes[0] > '5' {
		return s
	}

	suffix := "AM"
	if hours >= 12 {
		suffix = "PM"
	}
	h12 := hours % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, minutes, suffix)
}
