// Package confirmations provides interactive prompts for destructive
// operations.
package confirmations

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ConsoleDialog asks yes/no questions on the terminal.
type ConsoleDialog struct {
	in  io.Reader
	out io.Writer
}

// NewConsoleDialog creates a dialog bound to stdin and stdout.
func NewConsoleDialog() *ConsoleDialog {
	return &ConsoleDialog{in: os.Stdin, out: os.Stdout}
}

// NewConsoleDialogWith creates a dialog with explicit streams.
func NewConsoleDialogWith(in io.Reader, out io.Writer) *ConsoleDialog {
	return &ConsoleDialog{in: in, out: out}
}

// Confirm asks a yes/no question and returns the answer. An empty
// response selects the default.
func (d *ConsoleDialog) Confirm(prompt string, def bool) (bool, error) {
	marker := "[y/N]"
	if def {
		marker = "[Y/n]"
	}

	if _, err := fmt.Fprintf(d.out, "%s %s: ", prompt, marker); err != nil {
		return false, err
	}

	scanner := bufio.NewScanner(d.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read user input: %w", err)
		}
		// EOF counts as accepting the default
		return def, nil
	}

	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if response == "" {
		return def, nil
	}
	return response == "y" || response == "yes", nil
}

// ConfirmRemoval asks whether a mod should be removed.
func (d *ConsoleDialog) ConfirmRemoval(modName string) (bool, error) {
	prompt := fmt.Sprintf("Remove mod %q and its settings entries?", modName)
	return d.Confirm(prompt, false)
}
