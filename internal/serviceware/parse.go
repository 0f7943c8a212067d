package serviceware

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseLines rebuilds rows from persisted text. Blank lines and lines
// without a "(supplier)" group are skipped. A missing or non-numeric
// quantity becomes nil. Every row gets a fresh id.
func ParseLines(text string) []Item {
	items := []Item{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		item, ok := parseLine(line)
		if !ok {
			continue
		}
		items = append(items, item)
	}

	return items
}

// parseLine parses a single "• name (supplier) – qty" line.
func parseLine(line string) (Item, bool) {
	line = strings.TrimSpace(strings.TrimPrefix(line, lineBullet))

	open := strings.Index(line, "(")
	if open < 0 {
		return Item{}, false
	}
	closing := strings.Index(line[open+1:], ")")
	if closing < 0 {
		return Item{}, false
	}
	closing += open + 1

	name := strings.TrimSpace(line[:open])
	supplier := strings.TrimSpace(line[open+1 : closing])
	qty := parseQty(quantityToken(line[closing+1:]))

	return NewItem(name, supplier, qty), true
}

// quantityToken returns whatever follows the first dash, en dash or hyphen.
func quantityToken(rest string) string {
	idx := strings.IndexFunc(rest, func(r rune) bool {
		return r == '–' || r == '-'
	})
	if idx < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(rest[idx:])
	return strings.TrimSpace(rest[idx+size:])
}

// parseQty reads the leading integer of tok. "Provided by host", empty and
// non-numeric tokens have no quantity.
func parseQty(tok string) *int {
	if tok == "" || tok == ProvidedByHost {
		return nil
	}

	end := 0
	for i, r := range tok {
		if unicode.IsDigit(r) || (i == 0 && (r == '-' || r == '+')) {
			end = i + 1
			continue
		}
		break
	}

	n, err := strconv.Atoi(tok[:end])
	if err != nil {
		return nil
	}
	return &n
}
