package errors

import (
	"strings"
	"unicode/utf8"
)

// MaxSourceBytes is the largest source submission accepted for analysis.
// Large pastes are almost always accidental (minified bundles, data files)
// and would dominate parse and render time.
const MaxSourceBytes = 1 << 20 // 1 MiB

// ValidateSource validates a raw source submission before it reaches the
// parser. It rejects empty input, oversized input, and byte sequences that
// cannot be source text.
//
// A submission that parses to zero function definitions is NOT an error;
// that case produces the degenerate single-node diagram downstream.
func ValidateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidInput, "no code provided")
	}

	if len(src) > MaxSourceBytes {
		return New(ErrCodeInvalidInput, "source too large (max %d bytes)", MaxSourceBytes)
	}

	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidInput, "source contains null bytes")
	}

	if !utf8.ValidString(src) {
		return New(ErrCodeInvalidInput, "source is not valid UTF-8")
	}

	return nil
}

// ValidateFormat checks that an output format name is supported.
func ValidateFormat(format string) error {
	switch format {
	case "png", "svg", "dot", "json":
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg, dot, json)", format)
}
