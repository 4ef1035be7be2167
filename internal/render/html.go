package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"cv-builder/internal/cv"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Page carries what the shared layout needs.
type Page struct {
	Lang       string
	L          Labels
	Standalone bool
	CSS        template.CSS
}

// ResumePage is the data for the read-only résumé view.
type ResumePage struct {
	Page
	Resume  *cv.Resume
	Loading bool
	Error   string
}

// EditorPage is the data for the editor view.
type EditorPage struct {
	Page
	ResumeJSON string
	HasResume  bool
	Error      string
}

// Renderer renders the HTML views.
type Renderer struct {
	Icons      *IconLibrary
	Translator *Translator

	resume *template.Template
	editor *template.Template
	css    string
}

// NewRenderer parses the embedded templates.
func NewRenderer(icons *IconLibrary, tr *Translator) (*Renderer, error) {
	r := &Renderer{Icons: icons, Translator: tr}
	funcs := template.FuncMap{
		"icon":   icons.HTML,
		"rich":   RichText,
		"period": FormatPeriod,
		"join":   strings.Join,
	}

	var err error
	r.resume, err = template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/resume.html")
	if err != nil {
		return nil, fmt.Errorf("parse resume template: %w", err)
	}
	r.editor, err = template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/editor.html")
	if err != nil {
		return nil, fmt.Errorf("parse editor template: %w", err)
	}

	css, err := staticFS.ReadFile("static/print.css")
	if err != nil {
		return nil, fmt.Errorf("read print.css: %w", err)
	}
	r.css = string(css)
	return r, nil
}

// Labels resolves labels for the given language preferences.
func (r *Renderer) Labels(prefs ...string) (Labels, string) {
	return r.Translator.Labels(prefs...)
}

// Resume renders the read view.
func (r *Renderer) Resume(w io.Writer, page ResumePage) error {
	return r.resume.ExecuteTemplate(w, "layout", page)
}

// Editor renders the editor view.
func (r *Renderer) Editor(w io.Writer, page EditorPage) error {
	return r.editor.ExecuteTemplate(w, "layout", page)
}

// Standalone renders a self-contained HTML document of res with inline styles.
func (r *Renderer) Standalone(res cv.Resume, prefs ...string) ([]byte, error) {
	labels, lang := r.Labels(prefs...)
	var buf bytes.Buffer
	err := r.Resume(&buf, ResumePage{
		Page: Page{
			Lang:       lang,
			L:          labels,
			Standalone: true,
			CSS:        template.CSS(r.css),
		},
		Resume: &res,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StaticFS exposes stylesheet and script assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FormatPeriod renders "MM/YYYY – MM/YYYY", substituting present for ongoing entries.
func FormatPeriod(start, end, present string) string {
	s := formatDate(start, present)
	e := formatDate(end, present)
	switch {
	case s == "" && e == "":
		return ""
	case s == "":
		return e
	case e == "":
		return s
	default:
		return s + " – " + e
	}
}

func formatDate(value, present string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if cv.IsPresent(value) {
		return present
	}
	if len(value) == 7 && value[4] == '-' {
		return value[5:] + "/" + value[:4]
	}
	return value
}
