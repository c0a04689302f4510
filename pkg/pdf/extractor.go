// Package pdf wraps go-fitz (MuPDF) behind the narrow surface the
// orchestrator needs: page counts, per-page text, and page images for OCR.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/tessio/llm-pdf-reader/internal/common"
	"github.com/tessio/llm-pdf-reader/models"
)

// Opener opens PDF documents from disk.
type Opener struct{}

// Open validates that the file exists and loads it with MuPDF. Missing files
// and corrupt documents both surface as ResourceErrors, distinguished by Op.
func (Opener) Open(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &models.ResourceError{Path: path, Op: "stat", Err: err}
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, &models.ResourceError{Path: path, Op: "open", Err: err}
	}
	return &Document{doc: doc, path: path}, nil
}

// Document is an open PDF. Not safe for concurrent use; each request opens
// its own Document.
type Document struct {
	doc  *fitz.Document
	path string
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int { return d.doc.NumPage() }

// Text extracts text for the given 1-based page numbers, in the given order.
// The context is checked between pages so a cancelled request stops early.
func (d *Document) Text(ctx context.Context, pages []int) ([]models.PageText, error) {
	out := make([]models.PageText, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := d.doc.Text(page - 1)
		if err != nil {
			return nil, &models.ResourceError{Path: d.path, Op: "extract", Err: fmt.Errorf("page %d: %w", page, err)}
		}
		text = common.NormalizeWhitespace(text)
		out = append(out, models.PageText{
			Page: page,
			Text: text,
			Metadata: models.PageMetadata{
				CharCount: len([]rune(text)),
				WordCount: common.CountWords(text),
			},
		})
	}
	return out, nil
}

// RenderPNG rasterizes one 1-based page at the given DPI and returns it PNG
// encoded, ready for the OCR engine.
func (d *Document) RenderPNG(ctx context.Context, page, dpi int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := d.doc.ImageDPI(page-1, float64(dpi))
	if err != nil {
		return nil, &models.ResourceError{Path: d.path, Op: "render", Err: fmt.Errorf("page %d: %w", page, err)}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &models.ResourceError{Path: d.path, Op: "render", Err: fmt.Errorf("page %d: %w", page, err)}
	}
	return buf.Bytes(), nil
}

// Close releases the MuPDF document.
func (d *Document) Close() error { return d.doc.Close() }
