package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/srcbundle/cmd/srcbundle"
	"github.com/arthur-debert/srcbundle/internal/version"
)

// Writes the srcbundle(1) man page, one section per command, to stdout
func main() {
	rootCmd := srcbundle.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SRCBUNDLE",
		Section: "1",
		Source:  "srcbundle " + version.Version,
		Manual:  "srcbundle manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
