package validate

// Package validate checks raw file candidates against the upload policy
// before any network traffic happens. Rejected files never leave the client.

import (
	"strings"

	"github.com/amreinch/removebg-pro/internal/model"
)

// MaxFileSize is the upload size ceiling enforced locally and by the server
const MaxFileSize = 10 * 1024 * 1024

// allowedMIMETypes mirrors the server's accepted content types. "image/jpg"
// is not a registered MIME type but browsers and the server both accept it.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// File checks a selected file against the type and size policy. It returns
// nil when the file is acceptable and a *model.ValidationError otherwise.
// Pure: no I/O, no side effects.
func File(f *model.SelectedFile) error {
	if !allowedMIMETypes[strings.ToLower(f.MIMEType)] {
		return &model.ValidationError{Reason: model.ReasonUnsupportedType}
	}
	if f.Size > MaxFileSize {
		return &model.ValidationError{Reason: model.ReasonTooLarge}
	}
	return nil
}
