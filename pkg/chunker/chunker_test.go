package chunker

import (
	"strings"
	"testing"

	"github.com/tessio/llm-pdf-reader/models"
)

func TestNewRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -5, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.size, tc.overlap)
			if err == nil {
				t.Fatalf("New(%d, %d) error = nil, want ConfigurationError", tc.size, tc.overlap)
			}
			if _, ok := err.(*models.ConfigurationError); !ok {
				t.Errorf("New(%d, %d) error type = %T, want *models.ConfigurationError", tc.size, tc.overlap, err)
			}
		})
	}
}

func TestShortTextIsOneChunk(t *testing.T) {
	c, err := New(1000, 100)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkText("A short paragraph that fits comfortably.")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "A short paragraph that fits comfortably." {
		t.Errorf("chunk content changed: %q", chunks[0].Content)
	}
	if chunks[0].Index != 0 || chunks[0].Page != 1 {
		t.Errorf("chunk index/page = %d/%d, want 0/1", chunks[0].Index, chunks[0].Page)
	}
}

func TestScenario2500Chars(t *testing.T) {
	// 2500 characters of plain words, chunkSize=1000, overlap=100: three
	// chunks, each within the size bound, with chunk 2 opening on the tail
	// of chunk 1.
	text := strings.Repeat("word four ", 250)
	if len(text) != 2500 {
		t.Fatalf("test text length = %d, want 2500", len(text))
	}

	c, err := New(1000, 100)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkText(text)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, ch := range chunks {
		if n := len([]rune(ch.Content)); n > 1000 {
			t.Errorf("chunk %d length = %d, exceeds 1000", i, n)
		}
	}

	runes := []rune(text)
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		overlap := prev.End - cur.Start
		if overlap < 0 || overlap > 100 {
			t.Errorf("chunk %d overlap = %d runes, want within [0, 100]", i, overlap)
		}
		prevTail := string(runes[cur.Start:prev.End])
		if !strings.HasPrefix(cur.Content, prevTail) {
			t.Errorf("chunk %d does not open with the previous chunk's tail", i)
		}
		if !strings.HasSuffix(prev.Content, prevTail) {
			t.Errorf("chunk %d overlap is not a suffix of chunk %d", i, i-1)
		}
	}
}

func TestCoverageIsExact(t *testing.T) {
	text := strings.Repeat("Some sentences here. They vary a little in length, naturally. ", 40)
	c, err := New(300, 60)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkText(text)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	runes := []rune(text)
	// Offsets must slice the source exactly.
	for i, ch := range chunks {
		if got := string(runes[ch.Start:ch.End]); got != ch.Content {
			t.Fatalf("chunk %d content does not match its offsets", i)
		}
	}

	// Concatenating the non-overlap region of each chunk reproduces the
	// source text with nothing dropped or duplicated.
	var sb strings.Builder
	prevEnd := 0
	for _, ch := range chunks {
		fresh := ch.Content[len(string(runes[ch.Start:prevEnd])):]
		sb.WriteString(fresh)
		prevEnd = ch.End
	}
	if sb.String() != text {
		t.Error("non-overlap regions do not reconstruct the source text")
	}
}

func TestParagraphBoundariesPreferred(t *testing.T) {
	para := strings.Repeat("alpha beta gamma delta. ", 8) // 192 chars
	text := para + "\n\n" + para + "\n\n" + para
	c, err := New(250, 0)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkText(text)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3 (one per paragraph)", len(chunks))
	}
	for i, ch := range chunks {
		if strings.Contains(strings.TrimRight(ch.Content, "\n"), "\n\n") {
			t.Errorf("chunk %d spans a paragraph break", i)
		}
	}
}

func TestOversizedTokenEmittedWhole(t *testing.T) {
	long := strings.Repeat("x", 50)
	text := "start " + long + " end"
	c, err := New(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkText(text)

	found := false
	for _, ch := range chunks {
		if strings.Contains(ch.Content, long) {
			found = true
			if !strings.Contains(ch.Content, long+" ") && len([]rune(ch.Content)) > 51 {
				t.Errorf("oversized token chunk carries extra content: %q", ch.Content)
			}
		}
		if !strings.Contains(ch.Content, "x") && len([]rune(ch.Content)) > 10 {
			t.Errorf("regular chunk %q exceeds size", ch.Content)
		}
	}
	if !found {
		t.Error("oversized token was cut apart instead of emitted whole")
	}
}

func TestPageBoundariesNeverMerged(t *testing.T) {
	pages := []models.PageText{
		{Page: 1, Text: "First page content. " + strings.Repeat("more words here ", 10)},
		{Page: 3, Text: "Third page content, shorter."},
		{Page: 7, Text: strings.Repeat("seventh page filler text ", 20)},
	}
	c, err := New(120, 20)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkPages(pages)

	for i, ch := range chunks {
		if ch.Page != 1 && ch.Page != 3 && ch.Page != 7 {
			t.Errorf("chunk %d has unknown page %d", i, ch.Page)
		}
		if ch.Index != i {
			t.Errorf("chunk %d has sequence index %d, want strictly increasing from 0", i, ch.Index)
		}
	}

	// Text from one page never appears in a chunk attributed to another.
	for _, ch := range chunks {
		if ch.Page == 3 && ch.Content != "Third page content, shorter." {
			t.Errorf("page 3 chunk altered: %q", ch.Content)
		}
		if ch.Page != 3 && strings.Contains(ch.Content, "Third page") {
			t.Errorf("page 3 text leaked into a page %d chunk", ch.Page)
		}
	}
}

func TestEmptyPagesProduceNoChunks(t *testing.T) {
	c, err := New(100, 10)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkPages([]models.PageText{
		{Page: 1, Text: ""},
		{Page: 2, Text: "   \n\n  "},
		{Page: 3, Text: "real content"},
	})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Page != 3 || chunks[0].Index != 0 {
		t.Errorf("chunk page/index = %d/%d, want 3/0", chunks[0].Page, chunks[0].Index)
	}
}

func TestSummarize(t *testing.T) {
	c, err := New(50, 10)
	if err != nil {
		t.Fatal(err)
	}
	chunks := c.ChunkPages([]models.PageText{
		{Page: 1, Text: strings.Repeat("words on page one ", 10)},
		{Page: 2, Text: "short"},
	})
	summary := c.Summarize(chunks)

	if summary.TotalChunks != len(chunks) {
		t.Errorf("TotalChunks = %d, want %d", summary.TotalChunks, len(chunks))
	}
	if summary.PageChunks[2] != 1 {
		t.Errorf("PageChunks[2] = %d, want 1", summary.PageChunks[2])
	}
	var chars int
	for _, ch := range chunks {
		chars += len([]rune(ch.Content))
	}
	if summary.TotalChars != chars {
		t.Errorf("TotalChars = %d, want %d", summary.TotalChars, chars)
	}
}
