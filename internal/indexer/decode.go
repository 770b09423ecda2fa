package indexer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

var (
	// ErrUnknownEncoding indicates a text encoding label that can't be resolved
	ErrUnknownEncoding = errors.New("unknown text encoding")

	// ErrInvalidText indicates bytes that are not valid in the configured encoding
	ErrInvalidText = errors.New("invalid encoded text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeSource converts raw file bytes into UTF-8 text using the given encoding label.
// An empty label means UTF-8. UTF-8 input must be valid; other encodings are
// resolved through the WHATWG label index (e.g. "latin1", "windows-1252", "utf-16le").
func DecodeSource(raw []byte, label string) ([]byte, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(label)); normalized {
	case "", "utf-8", "utf8", "unicode-1-1-utf-8":
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("%w: not valid utf-8", ErrInvalidText)
		}
		return bytes.TrimPrefix(raw, utf8BOM), nil
	default:
		enc, err := htmlindex.Get(normalized)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
		}
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidText, err)
		}
		return bytes.TrimPrefix(decoded, utf8BOM), nil
	}
}
