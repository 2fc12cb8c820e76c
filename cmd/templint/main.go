// Command templint lints component templates.
package main

import (
	"os"

	"github.com/leapstack-labs/templint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
