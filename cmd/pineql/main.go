// Command pineql is the CLI entry point: a thin wrapper around
// cmd/pineql/cmd, grounded on go-dws's cmd/dwscript/main.go.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/pineql/cmd/pineql/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
