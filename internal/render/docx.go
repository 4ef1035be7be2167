package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"cv-builder/internal/cv"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

const (
	documentStart = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentEnd = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134"/></w:sectPr></w:body></w:document>`
)

// DOCX renders r into a minimal Word document using the labels for headings.
func DOCX(r cv.Resume, l Labels) ([]byte, error) {
	if strings.TrimSpace(r.Personal.Name) == "" {
		return nil, errors.New("full name is required")
	}

	var doc docBuilder
	doc.para("name", r.Personal.Name)
	if r.Personal.Title != "" {
		doc.para("title", r.Personal.Title)
	}
	contact := nonEmpty(r.Personal.Location, r.Personal.Phone, r.Personal.Email,
		r.Personal.Website, r.Personal.GitHub, r.Personal.LinkedIn)
	if len(contact) > 0 {
		doc.para("contact", strings.Join(contact, " | "))
	}

	if r.Personal.Summary != "" {
		doc.heading(label(l, "Profile"))
		doc.para("body", PlainText(r.Personal.Summary))
	}

	if len(r.Experience) > 0 {
		doc.heading(label(l, "Experience"))
		for _, e := range r.Experience {
			doc.para("roleLine", e.Position+" · "+e.Company)
			if meta := nonEmpty(FormatPeriod(e.StartDate, e.EndDate, label(l, "Present")), e.Location); len(meta) > 0 {
				doc.para("meta", strings.Join(meta, " | "))
			}
			if e.Description != "" {
				doc.para("body", PlainText(e.Description))
			}
			for _, h := range e.Highlights {
				doc.para("bullet", "• "+PlainText(h))
			}
		}
	}

	if len(r.Education) > 0 {
		doc.heading(label(l, "Education"))
		for _, e := range r.Education {
			doc.para("roleLine", strings.Join(nonEmpty(e.Degree, e.Field), ", ")+" · "+e.Institution)
			if meta := nonEmpty(FormatPeriod(e.StartDate, e.EndDate, label(l, "Present")), e.Location); len(meta) > 0 {
				doc.para("meta", strings.Join(meta, " | "))
			}
			if e.Description != "" {
				doc.para("body", PlainText(e.Description))
			}
		}
	}

	if len(r.Skills) > 0 {
		doc.heading(label(l, "Skills"))
		for _, g := range r.Skills {
			line := strings.Join(g.Items, ", ")
			if g.Category != "" {
				line = g.Category + ": " + line
			}
			doc.para("body", line)
		}
	}

	if len(r.Languages) > 0 {
		doc.heading(label(l, "Languages"))
		for _, lang := range r.Languages {
			line := lang.Name
			if lang.Level != "" {
				line += " (" + lang.Level + ")"
			}
			doc.para("body", line)
		}
	}

	if len(r.Projects) > 0 {
		doc.heading(label(l, "Projects"))
		for _, p := range r.Projects {
			doc.para("roleLine", p.Name)
			if p.Description != "" {
				doc.para("body", PlainText(p.Description))
			}
			if meta := nonEmpty(strings.Join(p.Technologies, ", "), p.URL); len(meta) > 0 {
				doc.para("meta", strings.Join(meta, " | "))
			}
		}
	}

	if len(r.Interests) > 0 {
		doc.heading(label(l, "Interests"))
		doc.para("body", strings.Join(r.Interests, " · "))
	}

	return doc.zip()
}

type docBuilder struct {
	body bytes.Buffer
	err  error
}

func (d *docBuilder) heading(text string) {
	d.para("sectionHeading", text)
}

func (d *docBuilder) para(style, text string) {
	if d.err != nil {
		return
	}
	st := docStyles[style]
	d.body.WriteString("<w:p>")
	d.body.WriteString(st.paragraphProperties())
	d.body.WriteString("<w:r>")
	d.body.WriteString(st.runProperties())
	d.body.WriteString(`<w:t xml:space="preserve">`)
	d.err = xml.EscapeText(&d.body, []byte(text))
	d.body.WriteString("</w:t></w:r></w:p>")
}

func (d *docBuilder) zip() ([]byte, error) {
	if d.err != nil {
		return nil, fmt.Errorf("encode document: %w", d.err)
	}

	var out bytes.Buffer
	writer := zip.NewWriter(&out)
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/document.xml", documentStart + d.body.String() + documentEnd},
	}
	for _, part := range parts {
		dst, err := writer.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := dst.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func label(l Labels, id string) string {
	if v, ok := l[id]; ok && v != "" {
		return v
	}
	return id
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
