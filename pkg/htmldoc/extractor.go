// Package htmldoc extracts readable text from local HTML files so they can
// flow through the same quality/chunking pipeline as PDF text. An HTML file
// is treated as a single logical page.
package htmldoc

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/tessio/llm-pdf-reader/internal/common"
	"github.com/tessio/llm-pdf-reader/models"
)

// Extractor pulls main-article text out of HTML documents.
type Extractor struct{}

// ExtractText reads the file and returns its readable text as page 1.
// Readability finds the main content; when it comes back empty (e.g. a bare
// fragment with no article structure), the whole body text is used instead.
func (e *Extractor) ExtractText(path string) (models.PageText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.PageText{}, &models.ResourceError{Path: path, Op: "open", Err: err}
	}

	fileURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	text := ""

	parser := readability.NewParser()
	if article, err := parser.Parse(strings.NewReader(string(data)), fileURL); err == nil {
		text = strings.TrimSpace(article.TextContent)
	}
	if text == "" {
		text, err = bodyText(string(data))
		if err != nil {
			return models.PageText{}, &models.ResourceError{Path: path, Op: "extract", Err: err}
		}
	}

	text = common.NormalizeWhitespace(text)
	return models.PageText{
		Page: 1,
		Text: text,
		Metadata: models.PageMetadata{
			CharCount: len([]rune(text)),
			WordCount: common.CountWords(text),
		},
	}, nil
}

// bodyText is the goquery fallback: all text under <body>, in document order.
func bodyText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script,style,noscript").Remove()
	return strings.TrimSpace(doc.Find("body").Text()), nil
}
