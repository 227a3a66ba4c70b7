// Generates the man page for release packaging.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/Syzzle07/NMS-Mod-Manager/internal/cli"
	"github.com/Syzzle07/NMS-Mod-Manager/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "NMSMM",
		Section: "1",
		Source:  "nmsmm " + version.Version,
		Manual:  "nmsmm manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
