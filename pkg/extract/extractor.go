// Package extract turns raw PDF bytes into plain text, falling back to OCR
// for scanned documents when enabled.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNoText means the document has no extractable text layer (and OCR,
	// if attempted, produced nothing either).
	ErrNoText = errors.New("no text found in PDF")
	// ErrBadPDF means the bytes could not be parsed as a PDF at all.
	ErrBadPDF = errors.New("failed to read PDF")
	// ErrOCRUnavailable means OCR was requested but its external tools are
	// not installed.
	ErrOCRUnavailable = errors.New("OCR not available")
)

// OCRRunner rasterizes a PDF and recognizes text per page.
type OCRRunner interface {
	Run(ctx context.Context, pdfData []byte) (string, error)
}

// Extractor is stateless and safe for concurrent use; identical input bytes
// always yield identical text for a fixed configuration.
type Extractor struct {
	OCREnabled bool
	OCR        OCRRunner

	layer func([]byte) (string, error) // test seam
}

func New(ocrEnabled bool) *Extractor {
	return &Extractor{OCREnabled: ocrEnabled, OCR: CommandOCR{DPI: 200}}
}

// Text extracts the text layer page by page in page order. When the result
// is empty or whitespace-only it runs OCR if enabled, otherwise fails with
// ErrNoText.
func (e *Extractor) Text(ctx context.Context, data []byte) (string, error) {
	layer := e.layer
	if layer == nil {
		layer = textLayer
	}
	text, err := layer(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadPDF, err)
	}
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	if !e.OCREnabled {
		return "", fmt.Errorf("%w; enable OCR to extract from scanned PDFs", ErrNoText)
	}
	ocr := e.OCR
	if ocr == nil {
		ocr = CommandOCR{DPI: 200}
	}
	out, err := ocr.Run(ctx, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("%w: OCR did not extract any text", ErrNoText)
	}
	return out, nil
}

// textLayer concatenates page text in page order with no separator.
// Image-only or unparseable pages are skipped, matching a per-page
// best-effort read.
func textLayer(data []byte) (string, error) {
	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i := 1; i <= rdr.NumPage(); i++ {
		pg := rdr.Page(i)
		if pg.V.IsNull() {
			continue
		}
		txt, err := pg.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(txt)
	}
	return b.String(), nil
}
