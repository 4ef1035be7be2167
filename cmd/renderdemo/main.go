package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cv-builder/internal/bootstrap"
	"cv-builder/internal/cv"
	"cv-builder/internal/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for the sample résumé")
	lang := flag.String("lang", "en", "label language")
	flag.Parse()

	renderer, err := bootstrap.NewRenderer(*lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer setup failed: %v\n", err)
		os.Exit(1)
	}

	sample := cv.Sample()
	labels, _ := renderer.Labels(*lang)

	docxBytes, err := render.DOCX(sample, labels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "docx render failed: %v\n", err)
		os.Exit(1)
	}
	htmlBytes, err := renderer.Standalone(sample, *lang)
	if err != nil {
		fmt.Fprintf(os.Stderr, "html render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outDir, sample, htmlBytes, docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := checkDocx(docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "docx check failed: %v\n", err)
		os.Exit(1)
	}
	if pos := tokenIndex(string(htmlBytes)); pos != -1 {
		fmt.Fprintf(os.Stderr, "unresolved template tokens near: %s\n", snippetAround(string(htmlBytes), pos, 200))
		os.Exit(1)
	}

	fmt.Printf("OK: wrote sample résumé to %s\n", *outDir)
}

func writeOutputs(dir string, sample cv.Resume, htmlBytes, docxBytes []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return err
	}
	files := map[string][]byte{
		"cv-data.json": payload,
		"resume.html":  htmlBytes,
		"resume.docx":  docxBytes,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func checkDocx(docxBytes []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return err
	}
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return err
		}
		text := string(content)
		if pos := tokenIndex(text); pos != -1 {
			return fmt.Errorf("unresolved template tokens near: %s", snippetAround(text, pos, 200))
		}
		return nil
	}
	return fmt.Errorf("document.xml not found in docx")
}

func tokenIndex(text string) int {
	if idx := strings.Index(text, "{{"); idx != -1 {
		return idx
	}
	return strings.Index(text, "}}")
}

func snippetAround(text string, pos, maxLen int) string {
	start := max(pos-maxLen/2, 0)
	end := min(start+maxLen, len(text))
	return text[start:end]
}
