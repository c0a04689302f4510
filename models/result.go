package models

// PageText is the per-page output of an extraction or OCR collaborator.
type PageText struct {
	Page     int          `json:"page_number"` // 1-based
	Text     string       `json:"text"`
	Metadata PageMetadata `json:"metadata"`
}

// PageMetadata carries per-page signals about the extracted text.
type PageMetadata struct {
	CharCount int `json:"char_count"`
	WordCount int `json:"word_count"`

	// OCR-only fields.
	AvgConfidence float64 `json:"average_confidence,omitempty"`
	TextBlocks    int     `json:"text_blocks,omitempty"`
	OCRLanguage   string  `json:"ocr_language,omitempty"`
}

// Chunk is a bounded text segment produced by the chunker. Start and End are
// rune offsets into the originating page's text, so Content always equals
// that text sliced at [Start:End].
type Chunk struct {
	Content string `json:"content"`
	Page    int    `json:"page_number"`
	Index   int    `json:"chunk_index"`
	Start   int    `json:"start_offset"`
	End     int    `json:"end_offset"`
}

// ChunkSummary aggregates chunk counts for the whole document.
type ChunkSummary struct {
	TotalChunks int         `json:"total_chunks"`
	TotalChars  int         `json:"total_chars"`
	PageChunks  map[int]int `json:"page_chunks"`
}

// QualityScore is the quality analyzer's verdict on extracted text.
type QualityScore struct {
	Score    float64 `json:"score"` // bounded to [0, 1]
	NeedsOCR bool    `json:"needs_ocr"`

	// Contributing sub-metrics.
	AvgWordLength      float64 `json:"avg_word_length"`
	AlphaRatio         float64 `json:"alpha_ratio"`
	SpecialCharDensity float64 `json:"special_char_density"`
	SentenceDensity    float64 `json:"sentence_density"`

	Language           string  `json:"language,omitempty"`
	LanguageConfidence float64 `json:"language_confidence,omitempty"`
}

// OCRSummary aggregates recognition confidence over all processed pages.
type OCRSummary struct {
	AverageConfidence float64 `json:"average_confidence"`
	TotalTextBlocks   int     `json:"total_text_blocks"`
}

// DocumentResult is the JSON envelope returned for every request. On failure
// only Success, Error and ExtractionMethod are set.
type DocumentResult struct {
	Success          bool          `json:"success"`
	FilePath         string        `json:"file_path,omitempty"`
	TotalPages       int           `json:"total_pages,omitempty"`
	ProcessedPages   []int         `json:"processed_pages,omitempty"`
	ExtractionMethod string        `json:"extraction_method"`
	OCRLanguage      string        `json:"ocr_language,omitempty"`
	Chunks           []Chunk       `json:"chunks,omitempty"`
	Summary          ChunkSummary  `json:"summary,omitzero"`
	Quality          *QualityScore `json:"quality,omitempty"`
	OCRSummary       *OCRSummary   `json:"ocr_summary,omitempty"`
	Error            string        `json:"error,omitempty"`
}

// ErrorResult shapes a failed request into the standard envelope.
func ErrorResult(method, msg string) *DocumentResult {
	return &DocumentResult{
		Success:          false,
		ExtractionMethod: method,
		Error:            msg,
	}
}
