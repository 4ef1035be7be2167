package cli

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cv-builder/internal/cv"
)

func writeResume(t *testing.T, r cv.Resume) string {
	t.Helper()
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "cv-data.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateSampleIsClean(t *testing.T) {
	out, err := run(t, "validate", writeResume(t, cv.Sample()))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Fatalf("expected ok, got %q", out)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	bad := cv.Resume{Personal: cv.Personal{Email: "not-an-email"}}
	out, err := run(t, "validate", writeResume(t, bad))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if !strings.Contains(out, "personal.name") || !strings.Contains(out, "personal.email") {
		t.Fatalf("expected name and email findings, got %q", out)
	}
}

func TestValidateMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"personal":`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := run(t, "validate", path); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRenderHTMLToStdout(t *testing.T) {
	out, err := run(t, "render", "--lang", "de", writeResume(t, cv.Sample()))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<!DOCTYPE html>") || !strings.Contains(out, "Jordan Lee") {
		t.Fatalf("expected standalone html, got %q", out[:min(len(out), 200)])
	}
	if !strings.Contains(out, "Berufserfahrung") {
		t.Fatalf("expected german labels")
	}
}

func TestRenderDOCXToFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "cv.docx")
	if _, err := run(t, "render", "-f", "docx", "-o", dest, writeResume(t, cv.Sample())); err != nil {
		t.Fatalf("render: %v", err)
	}
	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw))); err != nil {
		t.Fatalf("expected a zip package: %v", err)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := run(t, "render", "-f", "pdf", writeResume(t, cv.Sample())); err == nil {
		t.Fatalf("expected error for pdf format")
	}
}

func TestImportJSONPrintsResume(t *testing.T) {
	out, err := run(t, "import", writeResume(t, cv.Sample()))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var got cv.Resume
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Personal.Name != "Jordan Lee" {
		t.Fatalf("expected imported name, got %q", got.Personal.Name)
	}
}

func TestCommandsRequireOneArg(t *testing.T) {
	for _, name := range []string{"validate", "render", "import"} {
		if _, err := run(t, name); err == nil {
			t.Fatalf("%s: expected arg error", name)
		}
	}
}
