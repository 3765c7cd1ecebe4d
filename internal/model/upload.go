package model

import "fmt"

// OutputFormat is the target image format requested for processing
type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatJPG  OutputFormat = "jpg"
	FormatWebP OutputFormat = "webp"
)

// OutputFormats lists the formats the server accepts, in display order
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatPNG, FormatJPG, FormatWebP}
}

// ParseOutputFormat maps a stored or user-supplied string to an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatPNG, FormatJPG, FormatWebP:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format: %q", s)
}

// SelectedFile is a file candidate staged by a user selection event. It is
// cleared on reset and on successful workflow completion.
type SelectedFile struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// SizeLabel returns a human readable size for the upload region
func (f *SelectedFile) SizeLabel() string {
	const mib = 1024 * 1024
	if f.Size >= mib {
		return fmt.Sprintf("%.1f MB", float64(f.Size)/mib)
	}
	return fmt.Sprintf("%d KB", f.Size/1024)
}

// ProcessingResult is the outcome of a successful remote processing call.
// PreviewURL points at the watermarked preview; DownloadURL at the clean
// image, which is only fetchable with credits. RemainingCredits carries the
// server-reported balance when the response included one.
type ProcessingResult struct {
	FileID           string
	PreviewURL       string
	DownloadURL      string
	OriginalSize     int64
	OutputSize       int64
	Format           OutputFormat
	HasWatermark     bool
	RemainingCredits *int
}
