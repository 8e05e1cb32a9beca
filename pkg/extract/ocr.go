package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// CommandOCR shells out to poppler's pdftoppm to rasterize pages and to
// tesseract for recognition. Page outputs are joined with a newline.
type CommandOCR struct {
	DPI int
}

func (c CommandOCR) Run(ctx context.Context, data []byte) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("%w: pdftoppm not found, install poppler-utils", ErrOCRUnavailable)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("%w: tesseract not found", ErrOCRUnavailable)
	}

	dir, err := os.MkdirTemp("", "legalease-ocr-")
	if err != nil {
		return "", fmt.Errorf("ocr workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(src, data, 0o600); err != nil {
		return "", fmt.Errorf("ocr workspace: %w", err)
	}

	dpi := c.DPI
	if dpi <= 0 {
		dpi = 200
	}
	rasterize := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(dpi), "-png", src, filepath.Join(dir, "page"))
	if out, err := rasterize.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm: %v: %s", err, strings.TrimSpace(string(out)))
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order.
	pages, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return "", err
	}
	sort.Strings(pages)

	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		out, err := exec.CommandContext(ctx, "tesseract", p, "stdout").Output()
		if err != nil {
			return "", fmt.Errorf("tesseract %s: %v", filepath.Base(p), err)
		}
		texts = append(texts, string(out))
	}
	return strings.Join(texts, "\n"), nil
}
