// Package document guards the size of uploaded supporting documents and
// decodes inline (base64) payloads.
package document

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxSize is the largest decoded document accepted: 10 MiB.
const MaxSize int64 = 10 * 1024 * 1024

const mib = 1024 * 1024

// SizeExceededError is returned when a document is larger than MaxSize.
type SizeExceededError struct {
	Limit     int64
	Estimated int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("PDF file size exceeds the maximum allowed size of %dMB. Your file is approximately %.2fMB.",
		e.Limit/mib, float64(e.Estimated)/mib)
}

// EstimateDecodedSize approximates the decoded byte size of a base64 payload
// as floor(len*3/4). Padding and data-URL prefixes are not subtracted.
func EstimateDecodedSize(encoded string) int64 {
	return int64(len(encoded)) * 3 / 4
}

// Validate checks an inline base64 payload against MaxSize.
// An empty payload is always valid since documents are optional.
func Validate(encoded string) error {
	if encoded == "" {
		return nil
	}
	return ValidateSize(EstimateDecodedSize(encoded))
}

// ValidateSize checks an already-known byte count against MaxSize.
func ValidateSize(n int64) error {
	if n > MaxSize {
		return &SizeExceededError{Limit: MaxSize, Estimated: n}
	}
	return nil
}

// Decode returns the raw bytes of an inline payload. A leading data URL
// header such as "data:application/pdf;base64," is ignored.
func Decode(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}
	encoded = strings.TrimSpace(encoded)
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// some clients strip padding
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, fmt.Errorf("document: decode: %w", err)
		}
	}
	return b, nil
}
