package importer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"cv-builder/internal/cv"
	"cv-builder/internal/render"
)

const sampleText = `Jordan Lee
Senior Backend Engineer
jordan.lee@example.com | +1 512 555 0100
github.com/jordanlee | https://www.linkedin.com/in/jordanlee

Summary
Backend engineer focused on data-heavy services.
Enjoys mentoring.

Experience
Acme Corp
`

func TestFromTextMapsPersonalBlock(t *testing.T) {
	r := FromText(sampleText)
	p := r.Personal

	checks := map[string][2]string{
		"name":     {p.Name, "Jordan Lee"},
		"title":    {p.Title, "Senior Backend Engineer"},
		"email":    {p.Email, "jordan.lee@example.com"},
		"phone":    {p.Phone, "+1 512 555 0100"},
		"github":   {p.GitHub, "https://github.com/jordanlee"},
		"linkedin": {p.LinkedIn, "https://www.linkedin.com/in/jordanlee"},
		"summary":  {p.Summary, "Backend engineer focused on data-heavy services. Enjoys mentoring."},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Fatalf("%s: expected %q, got %q", field, c[1], c[0])
		}
	}
}

func TestFromTextWithoutSummary(t *testing.T) {
	r := FromText("Alex Doe\nalex@example.com\nEducation\nTU Berlin")
	if r.Personal.Name != "Alex Doe" || r.Personal.Summary != "" || r.Personal.Title != "" {
		t.Fatalf("unexpected personal block %+v", r.Personal)
	}
}

func TestImportJSON(t *testing.T) {
	res, err := Import(context.Background(), []byte(`{"personal":{"name":"Alex Doe"}}`), "application/octet-stream", "cv.json")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.MimeType != mimeJSON || res.Resume.Personal.Name != "Alex Doe" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImportJSONSniffedWithoutHints(t *testing.T) {
	res, err := Import(context.Background(), []byte(` {"personal":{"name":"Alex"}}`), "", "")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Resume.Personal.Name != "Alex" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestImportMalformedJSON(t *testing.T) {
	if _, err := Import(context.Background(), []byte(`{"personal":`), mimeJSON, "cv.json"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestImportDOCXRoundTrip(t *testing.T) {
	src := cv.Sample()
	data, err := render.DOCX(src, nil)
	if err != nil {
		t.Fatalf("DOCX: %v", err)
	}

	res, err := Import(context.Background(), data, "application/zip", "cv.docx")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.MimeType != mimeDOCX {
		t.Fatalf("expected docx, got %s", res.MimeType)
	}
	if res.Resume.Personal.Name != src.Personal.Name {
		t.Fatalf("expected name %q, got %q", src.Personal.Name, res.Resume.Personal.Name)
	}
	if res.Resume.Personal.Email != src.Personal.Email {
		t.Fatalf("expected email %q, got %q", src.Personal.Email, res.Resume.Personal.Email)
	}
}

func TestImportRejectsPlainZip(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = Import(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestImportEmpty(t *testing.T) {
	if _, err := Import(context.Background(), []byte("  "), mimeJSON, "cv.json"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestImportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Import(ctx, []byte(`{}`), mimeJSON, "cv.json"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>One</w:t></w:r></w:p><w:p><w:r><w:t>Two</w:t></w:r></w:p></w:body></w:document>`
	if got := stripDocxXML(raw); got != "One\nTwo" {
		t.Fatalf("unexpected text %q", got)
	}
}
