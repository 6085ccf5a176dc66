package rendering

import "strings"

// markdownEscaper escapes characters that change inline Markdown rendering.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
)

// EscapeMarkdown escapes inline Markdown syntax in text
// Special characters: \ ` * _ [ ] < >
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	return markdownEscaper.Replace(text)
}
