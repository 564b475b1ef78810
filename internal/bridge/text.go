// Package bridge holds the process-wide state behind the exported C entry
// points. It works on raw bytes so that it can be tested without cgo.
package bridge

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrNullPointer     = errors.New("null pointer")
	ErrInvalidEncoding = errors.New("text is not valid UTF-8")
)

// DecodeText converts bytes copied from a C string. A nil slice stands for
// a NULL pointer.
func DecodeText(b []byte) (string, error) {
	if b == nil {
		return "", ErrNullPointer
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidEncoding
	}
	return string(b), nil
}
