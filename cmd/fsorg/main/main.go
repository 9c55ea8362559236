package main

import (
	"os"

	"github.com/arthur-debert/fsorg/cmd/fsorg"
	"github.com/arthur-debert/fsorg/pkg/ui"
)

func main() {
	rootCmd := fsorg.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_ = ui.RenderError(os.Stderr, err, fsorg.ErrorFormat(rootCmd))
		os.Exit(1)
	}
}
