package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are written.
type Format string

const (
	// FormatAuto picks terminal or text depending on where output goes
	FormatAuto Format = "auto"
	// FormatTerminal is styled output for interactive use
	FormatTerminal Format = "term"
	// FormatText is stable plain text, safe to grep and diff
	FormatText Format = "text"
	// FormatJSON is one JSON document per command result
	FormatJSON Format = "json"
)

func (f Format) String() string {
	return string(f)
}

// ParseFormat maps a --format flag value to a Format. The empty string
// means auto; "terminal" and "plain" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s", s)
	}
}

// DetectFormat resolves FormatAuto for the given output file.
func DetectFormat(output *os.File) Format {
	// NO_COLOR always wins
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	// Piped or redirected output gets plain text
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}

	// Monochrome terminals get plain text too
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}
