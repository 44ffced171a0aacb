package resultsdomain

import "strings"

// Normalize upper-cases OCR text, replaces every character outside
// [A-Z0-9\r\n ] with a space and collapses runs of spaces. Line breaks are
// preserved so the row parser can split on them.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	upper := strings.ToUpper(raw)

	var b strings.Builder
	b.Grow(len(upper))
	lastSpace := false
	for _, r := range upper {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(r)
			lastSpace = false
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return b.String()
}
