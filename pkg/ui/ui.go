// Package ui provides a unified interface for rendering command results in
// different formats. It supports terminal (rich), text (plain), and JSON
// output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/json"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/terminal"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result *types.CommandResult) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer for the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// Non-file writers cannot be probed, assume plain text
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
