package templates

import "strings"

// Render substitutes {{key}} placeholders from the data bag. Placeholders
// without a matching key stay in the output untouched, so a half-filled
// template is visible instead of silently blank.
func Render(body string, data map[string]string) string {
	if body == "" || len(data) == 0 {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))

	rest := body
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			out.WriteString(rest)
			return out.String()
		}
		close := strings.Index(rest[open:], "}}")
		if close < 0 {
			out.WriteString(rest)
			return out.String()
		}
		close += open

		key := strings.TrimSpace(rest[open+2 : close])
		if value, ok := data[key]; ok {
			out.WriteString(rest[:open])
			out.WriteString(value)
		} else {
			out.WriteString(rest[:close+2])
		}
		rest = rest[close+2:]
	}
}
