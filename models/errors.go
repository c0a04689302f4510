package models

import "fmt"

// ConfigurationError reports an invalid request parameter (bad chunk sizes,
// unparseable page expressions). It is always returned to the caller and
// never cached.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// NewConfigurationError builds a ConfigurationError for a named parameter.
func NewConfigurationError(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ResourceError reports a failure reaching an external resource: a missing or
// unreadable file, a corrupt document, or an OCR engine that failed to
// initialize. Never retried automatically, never cached.
type ResourceError struct {
	Path string
	Op   string // "stat", "open", "extract", "render", "ocr-init", "ocr"
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// CacheWriteError reports a payload that could not be stored. Caching is
// best-effort: the processing result is still returned to the caller.
type CacheWriteError struct {
	Msg string
}

func (e *CacheWriteError) Error() string { return "cache write: " + e.Msg }
