// Package views serves the read-only résumé and the editor as HTML pages.
package views

import "strings"

// Route binds a URL path to a named view.
type Route struct {
	Path string
	View string
}

const (
	ViewResume = "resume"
	ViewEditor = "editor"
)

// Routes is the fixed route table. Anything else is not found.
var Routes = []Route{
	{Path: "/", View: ViewResume},
	{Path: "/edit", View: ViewEditor},
}

// Resolve returns the route for path. A single trailing slash is ignored.
func Resolve(path string) (Route, bool) {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}
