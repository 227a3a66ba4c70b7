// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders a command result as plain text
func (r *Renderer) RenderResult(result *types.CommandResult) error {
	var out strings.Builder

	if result.Message != "" {
		out.WriteString(result.Message + "\n")
	}

	body := r.renderBody(result)
	if body != "" {
		if result.Message != "" {
			out.WriteString("\n")
		}
		out.WriteString(body + "\n")
	}

	_, err := fmt.Fprint(r.output, out.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderBody(result *types.CommandResult) string {
	switch {
	case result.Analysis != nil:
		return r.renderAnalysis(result.Analysis)
	case result.Delete != nil:
		return r.renderDelete(result.Delete)
	case result.Finalized != nil:
		return r.renderRow("installed", result.Finalized.Name, result.Finalized.Path)
	case result.List != nil:
		return r.renderList(result.List)
	case result.Where != nil:
		return r.renderWhere(result.Where)
	case result.Reset != nil:
		return fmt.Sprintf("  settings file: %s", result.Reset.Path)
	default:
		return ""
	}
}

func (r *Renderer) renderAnalysis(analysis *types.InstallationAnalysis) string {
	if analysis.IsMessy() {
		lines := []string{r.renderRow("pending", "(unnamed)", "extracted to "+analysis.MessyPath)}
		if analysis.SuggestedName != "" {
			lines = append(lines, fmt.Sprintf("  suggested name: %s", analysis.SuggestedName))
		}
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, mod := range analysis.Installed {
		lines = append(lines, r.renderRow("installed", mod.Name, mod.Path))
	}
	for _, mod := range analysis.Conflicts {
		lines = append(lines, r.renderRow("conflict", mod.Name, "staged at "+mod.Path))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderDelete(del *types.DeleteResult) string {
	folder := "yes"
	if !del.FolderRemoved {
		folder = "no folder on disk"
	}
	settings := "reconciled in memory only"
	if del.SettingsWritten {
		settings = "written"
	}

	lines := []string{
		fmt.Sprintf("  folder removed:  %s", folder),
		fmt.Sprintf("  entries removed: %d", del.EntriesRemoved),
		fmt.Sprintf("  settings:        %s", settings),
	}

	// Nothing was persisted, so show what would have been written.
	if !del.SettingsWritten && del.Settings != "" {
		lines = append(lines, "", strings.TrimRight(del.Settings, "\n"))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderList(list *types.ListModsResult) string {
	if len(list.Mods) == 0 {
		return "No mods installed."
	}

	var lines []string
	for _, mod := range list.Mods {
		priority := "-"
		if mod.Priority >= 0 {
			priority = fmt.Sprintf("%d", mod.Priority)
		}
		detail := mod.Path
		if !mod.InSettings {
			detail += " (not in settings)"
		}
		lines = append(lines, fmt.Sprintf("%3s  %s %s", priority, r.padRight(mod.Name, 20), detail))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderWhere(where *types.WhereResult) string {
	settings := where.SettingsPath
	if !where.SettingsExists {
		settings += " (missing)"
	}

	return strings.Join([]string{
		fmt.Sprintf("  game root:     %s", where.GameRoot),
		fmt.Sprintf("  mods root:     %s", where.ModsRoot),
		fmt.Sprintf("  settings file: %s", settings),
	}, "\n")
}

// renderRow emits the shared three-column layout: status : name : detail
func (r *Renderer) renderRow(status, name, detail string) string {
	return fmt.Sprintf("  %s : %s : %s", r.padRight(status, 10), r.padRight(name, 15), detail)
}

// padRight pads a string to the specified width
func (r *Renderer) padRight(s string, width int) string {
	if len(s) > width {
		if width <= 3 {
			return "..."
		}
		return s[:width-3] + "..."
	}
	if len(s) == width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
