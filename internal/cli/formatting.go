package cli

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// stdoutIsTerminal reports whether styled help output would reach a tty.
func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// initTemplateFormatting registers the functions the usage template uses
// for section headings. Styling is skipped when output is piped.
func initTemplateFormatting() {
	bold := func(s string) string {
		if !stdoutIsTerminal() {
			return s
		}
		return pterm.Bold.Sprint(s)
	}

	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      bold,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
	})
}
