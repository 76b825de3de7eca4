package models

import "errors"

// Error kinds surfaced by the pipeline. Callers wrap them with context and
// match with errors.Is.
var (
	// ErrNotFound means a section, case or odds listing is absent upstream.
	ErrNotFound = errors.New("not found")

	// ErrFetchFailed means the upstream request failed or returned a non-2xx status.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrParseFailed means a payload was not valid JSON or lacked a required field.
	ErrParseFailed = errors.New("parse failed")

	// ErrCacheIO means a cache or output file could not be stat'ed, read or written.
	ErrCacheIO = errors.New("cache I/O failed")

	// ErrInvalidOdds means the drop table cannot be sampled.
	ErrInvalidOdds = errors.New("invalid odds")
)
