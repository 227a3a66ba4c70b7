// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/Syzzle07/NMS-Mod-Manager/pkg/types"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/styles"
)

// Renderer provides rich terminal output backed by the style registry.
// Lines are padded before styling so ANSI escapes never skew the columns.
type Renderer struct {
	output io.Writer

	statusWidth int
	nameWidth   int
}

// New creates a new terminal renderer
func New(output io.Writer) *Renderer {
	return &Renderer{
		output:      output,
		statusWidth: 10,
		nameWidth:   15,
	}
}

// RenderResult renders a command result with rich formatting
func (r *Renderer) RenderResult(result *types.CommandResult) error {
	var out strings.Builder

	if result.Message != "" {
		out.WriteString(styles.GetStyle("Info").Render(result.Message) + "\n")
	}

	body := r.renderBody(result)
	if body != "" {
		if result.Message != "" {
			out.WriteString("\n")
		}
		out.WriteString(body + "\n")
	}

	if !result.Timestamp.IsZero() {
		stamp := fmt.Sprintf("completed at %s", result.Timestamp.Format("15:04:05"))
		out.WriteString(styles.GetStyle("Timestamp").Render(stamp) + "\n")
	}

	_, err := fmt.Fprint(r.output, out.String())
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	line := fmt.Sprintf("%s %s", styles.ErrorIndicator, styles.GetStyle("Error").Render(err.Error()))
	_, werr := fmt.Fprintln(r.output, line)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}

func (r *Renderer) renderBody(result *types.CommandResult) string {
	switch {
	case result.Analysis != nil:
		return r.renderAnalysis(result.Analysis)
	case result.Delete != nil:
		return r.renderDelete(result.Delete)
	case result.Finalized != nil:
		return r.renderRow(styles.SuccessIndicator, styles.StatusInstalled, result.Finalized.Name, result.Finalized.Path)
	case result.List != nil:
		return r.renderList(result.List)
	case result.Where != nil:
		return r.renderWhere(result.Where)
	case result.Reset != nil:
		return "  " + styles.GetStyle("FilePath").Render(result.Reset.Path)
	default:
		return ""
	}
}

func (r *Renderer) renderAnalysis(analysis *types.InstallationAnalysis) string {
	if analysis.IsMessy() {
		lines := []string{r.renderRow(styles.PendingIndicator, styles.StatusPending, "(unnamed)", "extracted to "+analysis.MessyPath)}
		if analysis.SuggestedName != "" {
			suggestion := fmt.Sprintf("  suggested name: %s", analysis.SuggestedName)
			lines = append(lines, styles.GetStyle("Suggestion").Render(suggestion))
		}
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, mod := range analysis.Installed {
		lines = append(lines, r.renderRow(styles.SuccessIndicator, styles.StatusInstalled, mod.Name, mod.Path))
	}
	for _, mod := range analysis.Conflicts {
		lines = append(lines, r.renderRow(styles.WarningIndicator, styles.StatusConflict, mod.Name, "staged at "+mod.Path))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderDelete(del *types.DeleteResult) string {
	folder := styles.GetStyle("Success").Render("yes")
	if !del.FolderRemoved {
		folder = styles.GetStyle("Muted").Render("no folder on disk")
	}
	settings := styles.GetStyle("Muted").Render("reconciled in memory only")
	if del.SettingsWritten {
		settings = styles.GetStyle("Success").Render("written")
	}

	lines := []string{
		fmt.Sprintf("  folder removed:  %s", folder),
		fmt.Sprintf("  entries removed: %d", del.EntriesRemoved),
		fmt.Sprintf("  settings:        %s", settings),
	}

	// Nothing was persisted, so show the document that would have been
	// written. XML stays unstyled so it can be copied out as-is.
	if !del.SettingsWritten && del.Settings != "" {
		lines = append(lines, "", strings.TrimRight(del.Settings, "\n"))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderList(list *types.ListModsResult) string {
	if len(list.Mods) == 0 {
		return styles.GetStyle("NoContent").Render("No mods installed.")
	}

	var lines []string
	lines = append(lines, styles.GetStyle("SubHeader").Render("Installed Mods"))
	for _, mod := range list.Mods {
		priority := "-"
		if mod.Priority >= 0 {
			priority = fmt.Sprintf("%d", mod.Priority)
		}

		name := r.padRight(mod.Name, 20)
		detail := styles.GetStyle("FilePath").Render(mod.Path)
		if mod.InSettings {
			name = styles.GetStyle("ModName").Render(name)
		} else {
			name = styles.StatusStyle(styles.StatusOrphan).Sprint(name)
			detail += styles.GetStyle("Muted").Render(" (not in settings)")
		}

		lines = append(lines, fmt.Sprintf("%3s  %s %s", styles.GetStyle("Priority").Render(priority), name, detail))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderWhere(where *types.WhereResult) string {
	settings := styles.GetStyle("FilePath").Render(where.SettingsPath)
	if !where.SettingsExists {
		settings += styles.GetStyle("Warning").Render(" (missing)")
	}

	label := styles.GetStyle("Muted")
	return strings.Join([]string{
		fmt.Sprintf("  %s %s", label.Render("game root:    "), styles.GetStyle("FilePath").Render(where.GameRoot)),
		fmt.Sprintf("  %s %s", label.Render("mods root:    "), styles.GetStyle("FilePath").Render(where.ModsRoot)),
		fmt.Sprintf("  %s %s", label.Render("settings file:"), settings),
	}, "\n")
}

// renderRow emits the shared three-column layout: status : name : detail.
// The status word is colored through pterm, everything else through lipgloss.
func (r *Renderer) renderRow(indicator string, status styles.Status, name, detail string) string {
	statusWord := styles.StatusStyle(status).Sprint(r.padRight(string(status), r.statusWidth))
	styledName := styles.GetStyle("ModName").Render(r.padRight(name, r.nameWidth))
	return fmt.Sprintf("  %s %s : %s : %s", indicator, statusWord, styledName, detail)
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
