package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/srcbundle/cmd/srcbundle"
	"github.com/arthur-debert/srcbundle/pkg/errors"
	"github.com/arthur-debert/srcbundle/pkg/ui/output/styles"
)

func main() {
	rootCmd := srcbundle.NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		// Uncoded errors come from cobra itself (bad flags, wrong arg count)
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			fmt.Fprintln(os.Stderr)
			_ = cmd.Help()
		}

		os.Exit(1)
	}
}
