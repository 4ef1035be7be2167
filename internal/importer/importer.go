// Package importer turns uploaded JSON, PDF or DOCX files into a Resume.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-builder/internal/cv"
)

// MaxSize bounds accepted uploads.
const MaxSize = 10 << 20 // 10MB

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrEmpty       = errors.New("empty file")
	ErrTooLarge    = errors.New("file too large")
	ErrNoText      = errors.New("no text found in document")
)

// Result is an imported Resume plus the effective type it was read as.
type Result struct {
	Resume   cv.Resume `json:"resume"`
	MimeType string    `json:"mimeType"`
	// Text is the extracted plain text for PDF and DOCX sources.
	Text string `json:"-"`
}

// Import reads data as JSON, PDF or DOCX. JSON is decoded as-is; documents are reduced to
// text and mapped with FromText.
func Import(ctx context.Context, data []byte, mimeType, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, ErrEmpty
	}
	if len(data) > MaxSize {
		return Result{}, ErrTooLarge
	}

	kind := normalizeMimeType(mimeType, fileName, data)
	var text string
	var err error
	switch kind {
	case mimeJSON:
		var r cv.Resume
		if err := json.Unmarshal(data, &r); err != nil {
			return Result{}, fmt.Errorf("decode json: %w", err)
		}
		return Result{Resume: r, MimeType: kind}, nil
	case mimePDF:
		text, err = extractPDF(data)
	case mimeDOCX:
		text, err = extractDOCX(data)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupported, kind)
	}
	if err != nil {
		return Result{}, err
	}
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return Result{}, ErrNoText
	}
	return Result{Resume: FromText(text), MimeType: kind, Text: text}, nil
}
