package validate

import (
	"errors"
	"testing"

	"github.com/amreinch/removebg-pro/internal/model"
)

func TestFile(t *testing.T) {
	tests := []struct {
		name     string
		mimeType string
		size     int64
		reason   model.ValidationReason // empty means accepted
	}{
		{"png ok", "image/png", 1024, ""},
		{"jpeg ok", "image/jpeg", 1024, ""},
		{"jpg alias ok", "image/jpg", 1024, ""},
		{"webp ok", "image/webp", 1024, ""},
		{"uppercase mime ok", "IMAGE/PNG", 1024, ""},
		{"exactly at limit", "image/png", MaxFileSize, ""},
		{"gif rejected", "image/gif", 1024, model.ReasonUnsupportedType},
		{"pdf rejected", "application/pdf", 1024, model.ReasonUnsupportedType},
		{"empty mime rejected", "", 1024, model.ReasonUnsupportedType},
		{"one byte over limit", "image/png", MaxFileSize + 1, model.ReasonTooLarge},
		{"huge webp rejected", "image/webp", 50 * 1024 * 1024, model.ReasonTooLarge},
	}

	for _, test := range tests {
		err := File(&model.SelectedFile{Name: "x", MIMEType: test.mimeType, Size: test.size})

		if test.reason == "" {
			if err != nil {
				t.Errorf("%s: expected no error, got %v", test.name, err)
			}
			continue
		}

		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *model.ValidationError, got %v", test.name, err)
			continue
		}
		if verr.Reason != test.reason {
			t.Errorf("%s: expected reason %s, got %s", test.name, test.reason, verr.Reason)
		}
	}
}

func TestFile_TypeCheckedBeforeSize(t *testing.T) {
	// An oversized file of an unsupported type reports the type problem first.
	err := File(&model.SelectedFile{MIMEType: "image/gif", Size: MaxFileSize + 1})

	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *model.ValidationError, got %v", err)
	}
	if verr.Reason != model.ReasonUnsupportedType {
		t.Errorf("expected UnsupportedType, got %s", verr.Reason)
	}
}
