// Package pagerange parses page-range expressions like "1,3,5-10,-1" into
// concrete 1-based page lists. Negative values count from the end of the
// document, so -1 is the last page.
package pagerange

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tessio/llm-pdf-reader/models"
)

// Expr is a validated but unresolved page-range expression. Resolution needs
// the real page count, which is only known once the document is open, so the
// raw tokens are kept until then.
type Expr struct {
	raw    string
	tokens []token
}

type token struct {
	start  int
	end    int
	single bool
}

// Parse validates an expression and returns it in unresolved form. An empty
// expression selects all pages.
func Parse(expr string) (*Expr, error) {
	e := &Expr{raw: expr}
	if strings.TrimSpace(expr) == "" {
		return e, nil
	}

	for _, part := range strings.Split(expr, ",") {
		raw := strings.TrimSpace(part)
		tok, err := parseToken(raw)
		if err != nil {
			return nil, err
		}
		e.tokens = append(e.tokens, tok)
	}
	return e, nil
}

// parseToken handles a single comma-separated token: either an integer
// (possibly negative) or a start-end range. The minus sign is both the
// negative prefix and the range separator, so splitting is positional: a
// range separator is any '-' after the first character that is not
// immediately preceded by another separator.
func parseToken(raw string) (token, error) {
	if raw == "" {
		return token{}, models.NewConfigurationError("pages", "empty token in page range")
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n == 0 {
			return token{}, models.NewConfigurationError("pages", "page 0 does not exist in token %q", raw)
		}
		return token{start: n, single: true}, nil
	}

	// Look for a range separator after the (possibly signed) first number.
	for i := 1; i < len(raw); i++ {
		if raw[i] != '-' || raw[i-1] == '-' {
			continue
		}
		start, err1 := strconv.Atoi(raw[:i])
		end, err2 := strconv.Atoi(raw[i+1:])
		if err1 != nil || err2 != nil {
			continue
		}
		if start == 0 || end == 0 {
			return token{}, models.NewConfigurationError("pages", "page 0 does not exist in token %q", raw)
		}
		return token{start: start, end: end}, nil
	}

	return token{}, models.NewConfigurationError("pages", "unparseable token %q", raw)
}

// Raw returns the original expression string.
func (e *Expr) Raw() string { return e.raw }

// Resolve maps the expression onto a document with pageCount pages and
// returns distinct 1-based page numbers in ascending order. Negative values
// resolve as pageCount+1+value. Indices that fall outside [1, pageCount]
// after resolution are dropped; an expression that resolves to nothing is a
// ConfigurationError.
func (e *Expr) Resolve(pageCount int) ([]int, error) {
	if pageCount <= 0 {
		return nil, models.NewConfigurationError("pages", "document has no pages")
	}

	seen := make(map[int]bool)
	var pages []int
	add := func(p int) {
		if p < 1 || p > pageCount || seen[p] {
			return
		}
		seen[p] = true
		pages = append(pages, p)
	}

	if len(e.tokens) == 0 {
		for p := 1; p <= pageCount; p++ {
			add(p)
		}
		return pages, nil
	}

	for _, tok := range e.tokens {
		start := resolveIndex(tok.start, pageCount)
		if tok.single {
			add(start)
			continue
		}
		end := resolveIndex(tok.end, pageCount)
		if start > end {
			return nil, models.NewConfigurationError("pages", "range %d-%d is reversed after resolution", tok.start, tok.end)
		}
		for p := start; p <= end; p++ {
			add(p)
		}
	}

	if len(pages) == 0 {
		return nil, models.NewConfigurationError("pages", "expression %q selects no pages in a %d-page document", e.raw, pageCount)
	}
	sort.Ints(pages)
	return pages, nil
}

func resolveIndex(n, pageCount int) int {
	if n < 0 {
		return pageCount + 1 + n
	}
	return n
}
