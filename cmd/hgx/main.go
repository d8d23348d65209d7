// hgx - higher-order network toolkit
package main

import (
	"fmt"
	"os"

	"github.com/roach88/hgx/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
