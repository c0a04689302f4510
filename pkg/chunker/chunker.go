// Package chunker splits extracted document text into bounded, overlapping
// segments. Splitting is hierarchical: paragraph boundaries first, then
// sentence boundaries, then word boundaries. A single whitespace-free token
// longer than the chunk size is emitted whole rather than cut mid-token.
//
// Page boundaries are always chunk boundaries: text from two pages is never
// merged into one chunk, and overlap never reaches across pages.
package chunker

import (
	"strings"
	"unicode"

	"github.com/tessio/llm-pdf-reader/models"
)

// Split granularity levels, coarsest first.
const (
	levelParagraph = iota
	levelNewline
	levelSentence
	levelWord
)

// Chunker holds validated chunk geometry. All offsets and sizes are in runes.
type Chunker struct {
	size    int
	overlap int
}

// New validates the chunk geometry. size must be positive and overlap must
// satisfy 0 <= overlap < size; violations are ConfigurationErrors, not
// silent clamps.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, models.NewConfigurationError("chunk_size", "must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, models.NewConfigurationError("chunk_overlap", "must satisfy 0 <= overlap < chunk_size, got %d with chunk_size %d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// ChunkPages chunks each page independently and numbers the chunks with a
// single strictly increasing sequence index across the whole document.
// Pages with no visible text produce no chunks.
func (c *Chunker) ChunkPages(pages []models.PageText) []models.Chunk {
	var chunks []models.Chunk
	index := 0
	for _, page := range pages {
		pageChunks := c.chunkPage(page.Text, page.Page, index)
		index += len(pageChunks)
		chunks = append(chunks, pageChunks...)
	}
	return chunks
}

// ChunkText chunks a single body of text as page 1.
func (c *Chunker) ChunkText(text string) []models.Chunk {
	return c.chunkPage(text, 1, 0)
}

// Summarize aggregates chunk counts for the result envelope.
func (c *Chunker) Summarize(chunks []models.Chunk) models.ChunkSummary {
	summary := models.ChunkSummary{
		TotalChunks: len(chunks),
		PageChunks:  make(map[int]int),
	}
	for _, ch := range chunks {
		summary.TotalChars += len([]rune(ch.Content))
		summary.PageChunks[ch.Page]++
	}
	return summary
}

func (c *Chunker) chunkPage(text string, page, firstIndex int) []models.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	r := []rune(text)
	atoms := c.refine(r, 0, len(r), levelParagraph)
	return c.assemble(r, atoms, page, firstIndex)
}

// refine splits [lo, hi) into contiguous atoms no longer than the chunk
// size, descending the boundary hierarchy only for pieces that are still too
// long. A piece that reaches the word level with no interior boundary is
// returned as-is: the oversized-token exception.
func (c *Chunker) refine(r []rune, lo, hi, level int) [][2]int {
	if hi-lo <= c.size || level > levelWord {
		return [][2]int{{lo, hi}}
	}

	cuts := cutPoints(r, lo, hi, level)
	if len(cuts) == 0 {
		return c.refine(r, lo, hi, level+1)
	}

	var atoms [][2]int
	prev := lo
	for _, cut := range append(cuts, hi) {
		if cut == prev {
			continue
		}
		if cut-prev <= c.size {
			atoms = append(atoms, [2]int{prev, cut})
		} else {
			atoms = append(atoms, c.refine(r, prev, cut, level+1)...)
		}
		prev = cut
	}
	return atoms
}

// cutPoints returns interior split offsets for one granularity level.
// Separators stay attached to the text before the cut, so the atom list
// always covers the input exactly.
func cutPoints(r []rune, lo, hi, level int) []int {
	var cuts []int
	for i := lo; i < hi-1; i++ {
		switch level {
		case levelParagraph:
			if r[i] == '\n' && r[i+1] == '\n' {
				j := i + 1
				for j < hi-1 && r[j+1] == '\n' {
					j++
				}
				cuts = append(cuts, j+1)
				i = j
			}
		case levelNewline:
			if r[i] == '\n' {
				cuts = append(cuts, i+1)
			}
		case levelSentence:
			if isSentenceTerminal(r[i]) && unicode.IsSpace(r[i+1]) {
				cuts = append(cuts, i+2)
				i++
			}
		case levelWord:
			if unicode.IsSpace(r[i]) && !unicode.IsSpace(r[i+1]) {
				cuts = append(cuts, i+1)
			}
		}
	}
	return cuts
}

func isSentenceTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// assemble packs atoms into chunks of at most size runes. Each chunk after
// the first starts with up to overlap trailing runes of the previous chunk,
// realigned forward to a word boundary so chunk edges stay readable. The
// overlap prefix shrinks when needed to keep the chunk within size.
func (c *Chunker) assemble(r []rune, atoms [][2]int, page, firstIndex int) []models.Chunk {
	var chunks []models.Chunk
	emit := func(start, end int) {
		chunks = append(chunks, models.Chunk{
			Content: string(r[start:end]),
			Page:    page,
			Index:   firstIndex + len(chunks),
			Start:   start,
			End:     end,
		})
	}

	i := 0
	for i < len(atoms) {
		a := atoms[i]
		if a[1]-a[0] > c.size {
			// Oversized indivisible token: its own chunk, uncut.
			emit(a[0], a[1])
			i++
			continue
		}

		start := a[0]
		if len(chunks) > 0 && chunks[len(chunks)-1].End == a[0] {
			maxOverlap := c.overlap
			if room := c.size - (a[1] - a[0]); room < maxOverlap {
				maxOverlap = room
			}
			start = overlapStart(r, a[0], maxOverlap)
		}

		end := a[1]
		i++
		for i < len(atoms) && atoms[i][1]-start <= c.size {
			end = atoms[i][1]
			i++
		}
		emit(start, end)
	}
	return chunks
}

// overlapStart returns where the overlap prefix for fresh content at pos
// begins: at most max runes back, moved forward to just after the first
// whitespace rune when one exists inside the window.
func overlapStart(r []rune, pos, max int) int {
	if max <= 0 {
		return pos
	}
	lo := pos - max
	if lo < 0 {
		lo = 0
	}
	for i := lo; i < pos; i++ {
		if unicode.IsSpace(r[i]) {
			return i + 1
		}
	}
	return lo
}
