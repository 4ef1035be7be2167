package render

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var labelIDs = []string{
	"Contact", "Profile", "Experience", "Education", "Skills", "Languages", "Projects",
	"Interests", "Present", "Print", "Edit", "Back", "Save", "Apply", "Import", "Download",
	"Reset", "Reload", "Loading", "LoadError", "Empty", "EditorTitle", "Snapshots",
}

// Labels maps a label ID to its localized text. Templates read it as {{.L.Experience}}.
type Labels map[string]string

// Translator resolves UI labels for a requested language.
type Translator struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
}

// NewTranslator loads the embedded message files. defaultLang is used when no
// requested language matches; it falls back to English when unsupported.
func NewTranslator(defaultLang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	paths, err := fs.Glob(localeFS, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	for _, path := range paths {
		data, err := localeFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	supported := bundle.LanguageTags()
	fallback := language.English
	if tag, err := language.Parse(strings.TrimSpace(defaultLang)); err == nil {
		for _, s := range supported {
			if base(s) == base(tag) {
				fallback = s
				break
			}
		}
	}
	ordered := []language.Tag{fallback}
	for _, s := range supported {
		if s != fallback {
			ordered = append(ordered, s)
		}
	}

	return &Translator{
		bundle:  bundle,
		matcher: language.NewMatcher(ordered),
	}, nil
}

// Labels returns labels for the best match among the preferences, which may be plain
// codes ("de") or Accept-Language values ("de-DE,de;q=0.9"). Empty preferences are skipped.
func (t *Translator) Labels(prefs ...string) (Labels, string) {
	var tags []language.Tag
	for _, pref := range prefs {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	tag, _, _ := t.matcher.Match(tags...)
	lang := base(tag)

	localizer := i18n.NewLocalizer(t.bundle, lang)
	labels := make(Labels, len(labelIDs))
	for _, id := range labelIDs {
		msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
		if err != nil || msg == "" {
			msg = id
		}
		labels[id] = msg
	}
	return labels, lang
}

func base(tag language.Tag) string {
	b, _ := tag.Base()
	return b.String()
}
