// Package ocr defines the OCR engine contract and the default Tesseract
// implementation. The orchestrator treats the engine as opaque: any backend
// that can turn a page image into text with a confidence estimate fits.
package ocr

import (
	"context"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/tessio/llm-pdf-reader/models"
)

// Input is one rendered page submitted for recognition.
type Input struct {
	Page      int // 1-based page number, echoed back in logs only
	PNG       []byte
	Languages []string
	DPI       int
	// UseAccelerator asks the engine to use hardware acceleration when it
	// supports it. Tesseract ignores it.
	UseAccelerator bool
}

// Result is the recognized text for one page.
type Result struct {
	Text string
	// AvgConfidence is the mean word confidence in [0, 1].
	AvgConfidence float64
	// TextBlocks counts recognized text lines.
	TextBlocks int
}

// Engine recognizes text in page images.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// Tesseract is the default engine, backed by gosseract.
type Tesseract struct {
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs the default engine.
func NewTesseract() *Tesseract {
	return &Tesseract{clientFactory: gosseract.NewClient}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Recognize runs one page through Tesseract. Engine setup failures (unknown
// language packs, missing trained data) are ResourceErrors with Op
// "ocr-init"; recognition failures use Op "ocr".
func (t *Tesseract) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c := t.clientFactory()
	defer c.Close()

	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return Result{}, &models.ResourceError{Op: "ocr-init", Err: err}
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), strconv.Itoa(in.DPI)); err != nil {
			return Result{}, &models.ResourceError{Op: "ocr-init", Err: err}
		}
	}
	if err := c.SetImageFromBytes(in.PNG); err != nil {
		return Result{}, &models.ResourceError{Op: "ocr", Err: err}
	}

	text, err := c.Text()
	if err != nil {
		return Result{}, &models.ResourceError{Op: "ocr", Err: err}
	}

	res := Result{Text: strings.TrimSpace(text)}
	res.AvgConfidence = meanWordConfidence(c)
	if lines, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE); err == nil {
		res.TextBlocks = len(lines)
	}
	return res, nil
}

// meanWordConfidence averages word-level confidences, scaled from
// Tesseract's 0-100 range to [0, 1].
func meanWordConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
