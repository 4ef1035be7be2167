package render

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy  = newRichTextPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

func newRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "strong", "i", "em", "u", "br", "ul", "ol", "li", "p")
	p.AllowAttrs("href").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RichText sanitizes free-text résumé fields that may carry light inline markup.
// Newlines become line breaks.
func RichText(s string) template.HTML {
	clean := richTextPolicy.Sanitize(s)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	clean = strings.ReplaceAll(clean, "\n", "<br>")
	return template.HTML(clean)
}

// PlainText strips all markup and decodes entities.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}
