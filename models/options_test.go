package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestApplyDefaultsFillsUnsetFields(t *testing.T) {
	cfg := DefaultConfig()
	opts := RequestOptions{}
	opts.ApplyDefaults(cfg)

	if opts.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", opts.ChunkSize, DefaultChunkSize)
	}
	if opts.ChunkOverlap != DefaultChunkOverlap {
		t.Errorf("ChunkOverlap = %d, want %d", opts.ChunkOverlap, DefaultChunkOverlap)
	}
	if !reflect.DeepEqual(opts.Languages, DefaultOCRLanguages()) {
		t.Errorf("Languages = %v, want defaults", opts.Languages)
	}
	if opts.DPI != DefaultOCRDPI {
		t.Errorf("DPI = %d, want %d", opts.DPI, DefaultOCRDPI)
	}
}

func TestApplyDefaultsKeepsExplicitZeroOverlap(t *testing.T) {
	cfg := DefaultConfig()
	opts := RequestOptions{ChunkSize: 500}
	opts.ApplyDefaults(cfg)

	if opts.ChunkSize != 500 {
		t.Errorf("ChunkSize = %d, want explicit 500", opts.ChunkSize)
	}
	if opts.ChunkOverlap != 0 {
		t.Errorf("ChunkOverlap = %d, want explicit size to keep overlap at 0", opts.ChunkOverlap)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		opts      RequestOptions
		wantField string
	}{
		{"zero chunk size", RequestOptions{}, "chunk_size"},
		{"negative overlap", RequestOptions{ChunkSize: 100, ChunkOverlap: -1}, "chunk_overlap"},
		{"overlap equals size", RequestOptions{ChunkSize: 100, ChunkOverlap: 100}, "chunk_overlap"},
		{"negative dpi", RequestOptions{ChunkSize: 100, DPI: -72}, "dpi"},
		{"valid", RequestOptions{ChunkSize: 100, ChunkOverlap: 20, DPI: 200}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigurationError", err)
			}
			if cfgErr.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tc.wantField)
			}
		})
	}
}

func TestCanonicalParamsAreStable(t *testing.T) {
	a := RequestOptions{Pages: "1-3", ChunkSize: 800, ChunkOverlap: 80, Languages: []string{"eng", "deu"}, DPI: 300}
	b := RequestOptions{ChunkOverlap: 80, DPI: 300, Languages: []string{"eng", "deu"}, ChunkSize: 800, Pages: "1-3"}

	if !reflect.DeepEqual(a.CanonicalParams(), b.CanonicalParams()) {
		t.Error("identical options produced different canonical params")
	}

	want := []string{
		"chunk_overlap=80",
		"chunk_size=800",
		"dpi=300",
		"lang=eng,deu",
		"pages=1-3",
		"use_accelerator=false",
	}
	if got := a.CanonicalParams(); !reflect.DeepEqual(got, want) {
		t.Errorf("CanonicalParams() = %v, want %v", got, want)
	}
}

func TestCanonicalParamsDifferByOption(t *testing.T) {
	base := RequestOptions{ChunkSize: 800, ChunkOverlap: 80}
	changed := base
	changed.UseAccelerator = true

	if reflect.DeepEqual(base.CanonicalParams(), changed.CanonicalParams()) {
		t.Error("options differing in one field produced identical canonical params")
	}
}
