package main

import (
	"fmt"
	"os"

	"github.com/Syzzle07/NMS-Mod-Manager/internal/cli"
	"github.com/Syzzle07/NMS-Mod-Manager/pkg/ui/styles"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.GetStyle("Error").Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
