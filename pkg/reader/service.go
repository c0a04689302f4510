// Package reader orchestrates document-processing requests: cache lookup,
// collaborator invocation, quality analysis, chunking, and cache store. It
// is the surface a calling agent talks to; everything below it is a
// collaborator behind a narrow interface.
package reader

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tessio/llm-pdf-reader/models"
	"github.com/tessio/llm-pdf-reader/pkg/cache"
	"github.com/tessio/llm-pdf-reader/pkg/chunker"
	"github.com/tessio/llm-pdf-reader/pkg/htmldoc"
	"github.com/tessio/llm-pdf-reader/pkg/ocr"
	"github.com/tessio/llm-pdf-reader/pkg/pagerange"
	"github.com/tessio/llm-pdf-reader/pkg/pdf"
	"github.com/tessio/llm-pdf-reader/pkg/quality"
)

// Extraction method names reported in the result envelope.
const (
	MethodText = "text_extraction"
	MethodHTML = "html_extraction"
)

// Cache key operation names. Distinct per operation so a text-extraction
// result can never satisfy an OCR request.
const (
	opRead = "read"
	opOCR  = "ocr"
)

// Document is the slice of a PDF the orchestrator needs.
type Document interface {
	PageCount() int
	Text(ctx context.Context, pages []int) ([]models.PageText, error)
	RenderPNG(ctx context.Context, page, dpi int) ([]byte, error)
	Close() error
}

// DocumentOpener opens a document for one request.
type DocumentOpener func(path string) (Document, error)

// HTMLExtractor extracts readable text from an HTML file.
type HTMLExtractor interface {
	ExtractText(path string) (models.PageText, error)
}

// StatFunc reads a file fingerprint for cache keying and validation.
type StatFunc func(path string) (cache.Fingerprint, error)

// Request describes one processing call.
type Request struct {
	FilePath string
	Options  models.RequestOptions
	// Force skips the cache read. The result is still stored.
	Force bool
}

// Service wires the core components together. Construct with NewService;
// the zero value is not usable.
type Service struct {
	logger   *slog.Logger
	cache    *cache.Cache
	analyzer *quality.Analyzer
	openDoc  DocumentOpener
	html     HTMLExtractor
	engine   ocr.Engine
	stat     StatFunc
}

// NewService builds a Service with the production collaborators: go-fitz
// for PDFs, readability for HTML, Tesseract for OCR.
func NewService(logger *slog.Logger, c *cache.Cache) *Service {
	return &Service{
		logger:   logger,
		cache:    c,
		analyzer: quality.NewAnalyzer(),
		openDoc:  openPDF,
		html:     &htmldoc.Extractor{},
		engine:   ocr.NewTesseract(),
		stat:     cache.Stat,
	}
}

func openPDF(path string) (Document, error) {
	doc, err := pdf.Opener{}.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadDocument extracts text from a PDF or HTML file, scores it, chunks it,
// and caches the result. Configuration and resource problems come back as
// errors; the caller shapes them into the JSON envelope.
func (s *Service) ReadDocument(ctx context.Context, req Request) (*models.DocumentResult, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	expr, err := pagerange.Parse(req.Options.Pages)
	if err != nil {
		return nil, err
	}
	if isHTMLPath(req.FilePath) && strings.TrimSpace(req.Options.Pages) != "" {
		return nil, models.NewConfigurationError("pages", "page selection is not supported for HTML input")
	}

	key, hit, err := s.lookup(req, opRead)
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return hit, nil
	}

	var (
		pages      []models.PageText
		totalPages int
		method     = MethodText
	)
	if isHTMLPath(req.FilePath) {
		page, err := s.html.ExtractText(req.FilePath)
		if err != nil {
			return nil, err
		}
		pages = []models.PageText{page}
		totalPages = 1
		method = MethodHTML
	} else {
		doc, err := s.openDoc(req.FilePath)
		if err != nil {
			return nil, err
		}
		defer doc.Close()

		totalPages = doc.PageCount()
		selected, err := expr.Resolve(totalPages)
		if err != nil {
			return nil, err
		}
		pages, err = doc.Text(ctx, selected)
		if err != nil {
			return nil, err
		}
	}

	score := s.analyzer.Analyze(joinPageText(pages))
	result, err := s.assemble(req, method, totalPages, pages)
	if err != nil {
		return nil, err
	}
	result.Quality = &score
	if score.NeedsOCR {
		s.logger.Warn("extracted text looks unreliable, consider the ocr command",
			"file", req.FilePath, "score", score.Score)
	}

	return s.finish(ctx, key, result)
}

// OCRDocument renders the selected PDF pages to images and recognizes them
// with the OCR engine.
func (s *Service) OCRDocument(ctx context.Context, req Request) (*models.DocumentResult, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	if isHTMLPath(req.FilePath) {
		return nil, models.NewConfigurationError("file_path", "OCR requires a PDF input")
	}
	expr, err := pagerange.Parse(req.Options.Pages)
	if err != nil {
		return nil, err
	}

	key, hit, err := s.lookup(req, opOCR)
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return hit, nil
	}

	doc, err := s.openDoc(req.FilePath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	totalPages := doc.PageCount()
	selected, err := expr.Resolve(totalPages)
	if err != nil {
		return nil, err
	}

	langLabel := strings.Join(req.Options.Languages, ",")
	pages := make([]models.PageText, 0, len(selected))
	for _, page := range selected {
		img, err := doc.RenderPNG(ctx, page, req.Options.DPI)
		if err != nil {
			return nil, err
		}
		res, err := s.engine.Recognize(ctx, ocr.Input{
			Page:           page,
			PNG:            img,
			Languages:      req.Options.Languages,
			DPI:            req.Options.DPI,
			UseAccelerator: req.Options.UseAccelerator,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, models.PageText{
			Page: page,
			Text: res.Text,
			Metadata: models.PageMetadata{
				CharCount:     len([]rune(res.Text)),
				WordCount:     len(strings.Fields(res.Text)),
				AvgConfidence: res.AvgConfidence,
				TextBlocks:    res.TextBlocks,
				OCRLanguage:   langLabel,
			},
		})
	}

	result, err := s.assemble(req, s.engine.Name(), totalPages, pages)
	if err != nil {
		return nil, err
	}
	result.OCRLanguage = langLabel
	result.OCRSummary = ocrSummary(pages)

	return s.finish(ctx, key, result)
}

// EngineName reports which OCR backend is wired in.
func (s *Service) EngineName() string { return s.engine.Name() }

// CacheStats snapshots the cache counters.
func (s *Service) CacheStats() cache.Stats { return s.cache.Stats() }

// ResetCache drops every cached result. Administrative; never part of the
// normal request flow.
func (s *Service) ResetCache() { s.cache.Clear() }

// lookup stats the file, builds the cache key, and consults the cache. A
// Force request skips the read but still returns the key for the later
// store.
func (s *Service) lookup(req Request, op string) (cache.Key, *models.DocumentResult, error) {
	fp, err := s.stat(req.FilePath)
	if err != nil {
		return cache.Key{}, nil, err
	}
	key := cache.NewKey(req.FilePath, fp, op, req.Options.CanonicalParams())
	if req.Force {
		return key, nil, nil
	}
	if payload, ok := s.cache.Get(key); ok {
		s.logger.Info("cache hit", "file", req.FilePath, "operation", op)
		return key, payload, nil
	}
	return key, nil, nil
}

// assemble chunks the page texts and builds the success envelope.
func (s *Service) assemble(req Request, method string, totalPages int, pages []models.PageText) (*models.DocumentResult, error) {
	ch, err := chunker.New(req.Options.ChunkSize, req.Options.ChunkOverlap)
	if err != nil {
		return nil, err
	}
	chunks := ch.ChunkPages(pages)

	processed := make([]int, 0, len(pages))
	for _, p := range pages {
		processed = append(processed, p.Page)
	}
	return &models.DocumentResult{
		Success:          true,
		FilePath:         req.FilePath,
		TotalPages:       totalPages,
		ProcessedPages:   processed,
		ExtractionMethod: method,
		Chunks:           chunks,
		Summary:          ch.Summarize(chunks),
	}, nil
}

// finish stores the result unless the request was cancelled. A failed cache
// write is logged and swallowed: caching never blocks delivering a correct
// answer.
func (s *Service) finish(ctx context.Context, key cache.Key, result *models.DocumentResult) (*models.DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.cache.Put(key, result); err != nil {
		s.logger.Warn("cache write failed", "file", key.Path, "error", err)
	}
	return result, nil
}

func isHTMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

func joinPageText(pages []models.PageText) string {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n\n")
}

func ocrSummary(pages []models.PageText) *models.OCRSummary {
	summary := &models.OCRSummary{}
	if len(pages) == 0 {
		return summary
	}
	var sum float64
	for _, p := range pages {
		sum += p.Metadata.AvgConfidence
		summary.TotalTextBlocks += p.Metadata.TextBlocks
	}
	summary.AverageConfidence = sum / float64(len(pages))
	return summary
}
