package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/fsorg/cmd/fsorg"
	"github.com/arthur-debert/fsorg/internal/version"
)

func main() {
	rootCmd := fsorg.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "FSORG",
		Section: "1",
		Source:  "fsorg " + version.Version,
		Manual:  "fsorg manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
