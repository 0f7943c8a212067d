package serviceware

import (
	"fmt"
	"strings"

	"github.com/eventops/api/internal/enum"
)

// FormatLine renders one row in the persisted grammar. It returns "" for
// rows that are not persisted: blank names, and rows with a real supplier
// but no quantity.
func FormatLine(item Item) string {
	name := strings.TrimSpace(item.Item)
	if name == "" {
		return ""
	}
	supplier := strings.TrimSpace(item.Supplier)

	if supplier == enum.SupplierClient && item.Qty == nil {
		return fmt.Sprintf("%s %s (%s) %s %s", lineBullet, name, supplier, lineDash, ProvidedByHost)
	}
	if item.Qty != nil {
		return fmt.Sprintf("%s %s (%s) %s %d", lineBullet, name, supplier, lineDash, *item.Qty)
	}
	return ""
}

// FormatLines renders every persisted row of items, one per line.
func FormatLines(items []Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if line := FormatLine(item); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
