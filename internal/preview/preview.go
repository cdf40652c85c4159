// Package preview holds the pure, read-time transforms the public pages use:
// plain-text derivation of stored markup, markdown rendering, date labels,
// and search matching. Nothing here touches storage.
package preview

import (
	"bytes"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&amp;", "&",
)

// PlainText derives a display-ready plain string from stored markup.
// Entities are decoded before tags are stripped, since decoding &lt; afterwards
// would leak double-encoded markup into the output.
func PlainText(html string) string {
	text := entityReplacer.Replace(html)

	var b strings.Builder
	inTag := false
	for _, r := range text {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Markdown renders post content to HTML for the public detail page.
func Markdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatDate renders a timestamp as a long-form label, e.g. "October 20, 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// MatchesQuery reports whether any field contains query, case-insensitively.
// An empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ReadTime estimates reading minutes at 200 words per minute, minimum 1.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		return 1
	}
	return minutes
}
