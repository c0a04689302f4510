package models

import (
	"fmt"
	"sort"
	"strings"
)

// RequestOptions enumerates every recognized processing option for a read or
// OCR request. Unset numeric fields are filled from config defaults before
// validation.
type RequestOptions struct {
	// Pages holds the raw page-range expression (e.g. "1,3,5-10,-1").
	// Empty means all pages. Resolution against the real page count happens
	// inside the orchestrator, so the raw expression is kept here.
	Pages string

	ChunkSize    int
	ChunkOverlap int

	// OCR-only knobs. They still participate in the cache key so that a
	// text-extraction result is never confused with an OCR result.
	Languages      []string
	DPI            int
	UseAccelerator bool
}

// ApplyDefaults fills unset fields from config. A chunk overlap of zero is
// only treated as unset when the chunk size is also unset, so an explicit
// "size 500, no overlap" request stays intact.
func (o *RequestOptions) ApplyDefaults(cfg *Config) {
	if o.ChunkSize <= 0 {
		o.ChunkSize = cfg.Chunking.Size
		if o.ChunkOverlap == 0 {
			o.ChunkOverlap = cfg.Chunking.Overlap
		}
	}
	if len(o.Languages) == 0 {
		o.Languages = cfg.OCR.Languages
	}
	if o.DPI <= 0 {
		o.DPI = cfg.OCR.DPI
	}
}

// Validate rejects option combinations eagerly, before any processing work.
func (o *RequestOptions) Validate() error {
	if o.ChunkSize <= 0 {
		return NewConfigurationError("chunk_size", "must be positive, got %d", o.ChunkSize)
	}
	if o.ChunkOverlap < 0 || o.ChunkOverlap >= o.ChunkSize {
		return NewConfigurationError("chunk_overlap", "must satisfy 0 <= overlap < chunk_size, got %d with chunk_size %d", o.ChunkOverlap, o.ChunkSize)
	}
	if o.DPI < 0 {
		return NewConfigurationError("dpi", "must be non-negative, got %d", o.DPI)
	}
	return nil
}

// CanonicalParams returns a stable, order-independent serialization of all
// options as sorted "key=value" pairs. Two requests with identical options
// always produce the same slice, regardless of how the options were set.
func (o *RequestOptions) CanonicalParams() []string {
	params := []string{
		fmt.Sprintf("chunk_overlap=%d", o.ChunkOverlap),
		fmt.Sprintf("chunk_size=%d", o.ChunkSize),
		fmt.Sprintf("dpi=%d", o.DPI),
		fmt.Sprintf("lang=%s", strings.Join(o.Languages, ",")),
		fmt.Sprintf("pages=%s", o.Pages),
		fmt.Sprintf("use_accelerator=%t", o.UseAccelerator),
	}
	sort.Strings(params)
	return params
}
