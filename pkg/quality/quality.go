// Package quality scores extracted text for reliability and decides whether
// OCR should be recommended instead. Scoring is a fixed weighted formula
// over four sub-metrics, so identical input always yields an identical
// score.
package quality

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
	"github.com/tessio/llm-pdf-reader/models"
)

// Tunable constants. Stable across calls; changing them changes every score.
const (
	// Weights for the four sub-metric scores. They sum to 1 so the final
	// score stays in [0, 1].
	weightWordShape      = 0.25
	weightAlphaRatio     = 0.40
	weightSpecialDensity = 0.15
	weightSentenceSignal = 0.20

	// Score below this recommends OCR.
	needsOCRThreshold = 0.65

	// Fewer visible characters than this is too little material to trust
	// text extraction at all, regardless of score.
	minTextLength = 50

	// Average word length considered plausible natural language.
	minAvgWordLength = 3.0
	maxAvgWordLength = 12.0

	// Special-character density at which the density score bottoms out.
	maxSpecialDensity = 0.1

	// Minimum characters before language detection is attempted.
	langDetectMinLength = 20
)

// Analyzer scores text quality. It carries a language detector built once at
// construction; the analysis itself is a pure function of the input text.
type Analyzer struct {
	detector lingua.LanguageDetector
}

// NewAnalyzer builds an analyzer with language detection over the OCR
// languages this tool ships trained data hints for.
func NewAnalyzer() *Analyzer {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Chinese,
			lingua.German,
			lingua.French,
			lingua.Spanish,
			lingua.Japanese,
		).
		Build()
	return &Analyzer{detector: detector}
}

// Analyze scores the given text. Empty or whitespace-only input scores zero
// with NeedsOCR set unconditionally.
func (a *Analyzer) Analyze(text string) models.QualityScore {
	if strings.TrimSpace(text) == "" {
		return models.QualityScore{Score: 0, NeedsOCR: true}
	}

	var (
		total    int
		visible  int
		letters  int
		specials int
		terminal int
	)
	for _, r := range text {
		total++
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		if unicode.IsLetter(r) {
			letters++
		}
		if r == '�' || !unicode.IsPrint(r) {
			specials++
		}
		switch r {
		case '.', '!', '?', '。', '！', '？':
			terminal++
		}
	}

	words := len(strings.Fields(text))
	score := models.QualityScore{
		AvgWordLength:      float64(visible) / float64(words),
		AlphaRatio:         float64(letters) / float64(visible),
		SpecialCharDensity: float64(specials) / float64(visible),
		SentenceDensity:    float64(terminal) * 100 / float64(total),
	}

	wordShape := wordShapeScore(score.AvgWordLength)
	special := 1 - clamp01(score.SpecialCharDensity/maxSpecialDensity)
	sentence := clamp01(score.SentenceDensity)

	score.Score = weightWordShape*wordShape +
		weightAlphaRatio*score.AlphaRatio +
		weightSpecialDensity*special +
		weightSentenceSignal*sentence
	score.NeedsOCR = score.Score < needsOCRThreshold || visible < minTextLength

	if visible >= langDetectMinLength {
		if lang, ok := a.detector.DetectLanguageOf(text); ok {
			score.Language = strings.ToLower(lang.IsoCode639_1().String())
			score.LanguageConfidence = a.detector.ComputeLanguageConfidence(text, lang)
		}
	}
	return score
}

// wordShapeScore maps average word length onto [0, 1]. Averages inside the
// plausible band score 1; a stream of single characters or an unbroken run
// of text scores proportionally lower.
func wordShapeScore(avg float64) float64 {
	switch {
	case avg < minAvgWordLength:
		return avg / minAvgWordLength
	case avg > maxAvgWordLength:
		return maxAvgWordLength / avg
	default:
		return 1
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
