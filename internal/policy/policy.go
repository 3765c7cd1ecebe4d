package policy

// Package policy answers "may this action proceed" for the credit gate. The
// deployment runs exactly one of two gating modes: charge awareness happens
// either before processing or before downloading, never both. The policy is
// pure and never mutates balances; only server responses do that.

import (
	"fmt"

	"github.com/amreinch/removebg-pro/internal/model"
)

// Mode selects where the credit gate sits in the workflow
type Mode string

const (
	// GateOnProcess requires credits before issuing a processing request;
	// downloads are then unconditional.
	GateOnProcess Mode = "gate_on_process"

	// GateOnDownload makes previews free and requires credits at download
	// time. This matches the hosted product's watermarked-preview flow.
	GateOnDownload Mode = "gate_on_download"
)

// DefaultMode is used when the deployment does not configure a gating mode
const DefaultMode = GateOnDownload

// ParseMode maps a configuration string to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case GateOnProcess, GateOnDownload:
		return Mode(s), nil
	case "":
		return DefaultMode, nil
	}
	return "", fmt.Errorf("unknown gating mode: %q", s)
}

// CanProcess reports whether a processing request may be issued
func CanProcess(p *model.UserProfile, mode Mode) bool {
	if mode == GateOnProcess {
		return p.HasCredits()
	}
	return true
}

// CanDownload reports whether a clean-image download may be issued
func CanDownload(p *model.UserProfile, mode Mode) bool {
	if mode == GateOnDownload {
		return p.HasCredits()
	}
	return true
}
