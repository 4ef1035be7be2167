package render

import (
	"fmt"
	"html/template"
	"sort"
	"sync"
)

// DefaultIcons lists the icons the application registers at startup.
var DefaultIcons = []string{
	"map-marker-alt", "phone", "envelope", "github", "linkedin", "briefcase",
	"graduation-cap", "code", "globe", "lightbulb", "heart", "print", "pen",
	"arrow-left", "save", "upload", "download", "file-import", "user", "plus",
	"trash", "times",
}

var glyphs = map[string]string{
	"map-marker-alt": "\U0001F4CD",
	"phone":          "☎",
	"envelope":       "✉",
	"github":         "GH",
	"linkedin":       "in",
	"briefcase":      "\U0001F4BC",
	"graduation-cap": "\U0001F393",
	"code":           "</>",
	"globe":          "\U0001F310",
	"lightbulb":      "\U0001F4A1",
	"heart":          "♥",
	"print":          "\U0001F5A8",
	"pen":            "✎",
	"arrow-left":     "←",
	"save":           "\U0001F4BE",
	"upload":         "↑",
	"download":       "↓",
	"file-import":    "\U0001F4C2",
	"user":           "\U0001F464",
	"plus":           "+",
	"trash":          "\U0001F5D1",
	"times":          "×",
}

// IconLibrary holds the icons views may reference. Unregistered icons render as nothing.
type IconLibrary struct {
	mu    sync.RWMutex
	icons map[string]string
}

// NewIconLibrary returns an empty library.
func NewIconLibrary() *IconLibrary {
	return &IconLibrary{icons: make(map[string]string)}
}

// Add registers icons by name.
func (l *IconLibrary) Add(names ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, name := range names {
		glyph, ok := glyphs[name]
		if !ok {
			return fmt.Errorf("unknown icon %q", name)
		}
		l.icons[name] = glyph
	}
	return nil
}

// Names returns the registered icon names in sorted order.
func (l *IconLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.icons))
	for name := range l.icons {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HTML renders the icon as an inline span.
func (l *IconLibrary) HTML(name string) template.HTML {
	l.mu.RLock()
	glyph, ok := l.icons[name]
	l.mu.RUnlock()
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(`<span class="icon icon-%s" aria-hidden="true">%s</span>`,
		template.HTMLEscapeString(name), template.HTMLEscapeString(glyph)))
}
