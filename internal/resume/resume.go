// Package resume validates uploaded resume files before they are attached to
// a generation request. The file travels to the model as inline binary, so
// validation is about content type and size, not text extraction.
package resume

import (
	"bytes"
	"fmt"
)

// MaxSize bounds uploads; inline attachments count against the upstream
// request-size limit.
const MaxSize = 10 << 20

// ValidationError is a user-actionable rejection of an uploaded file
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("resume rejected: %s", e.Reason)
}

var magicTypes = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("%PDF-"), "application/pdf"},
	{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, "image/png"},
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
}

// Validate checks the uploaded bytes and returns the media type to declare
// upstream. The sniffed type wins over the client-declared one.
func Validate(data []byte, declared string) (string, error) {
	if len(data) == 0 {
		return "", &ValidationError{Reason: "file is empty"}
	}
	if len(data) > MaxSize {
		return "", &ValidationError{Reason: fmt.Sprintf("file exceeds %d MB limit", MaxSize>>20)}
	}

	for _, mt := range magicTypes {
		if bytes.HasPrefix(data, mt.prefix) {
			return mt.mime, nil
		}
	}

	return "", &ValidationError{Reason: fmt.Sprintf("unsupported file type (declared %q); use PDF, PNG or JPEG", declared)}
}
