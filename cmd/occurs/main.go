// Command occurs folds DTD and XSD-style content models into per-symbol
// occurrence ranges.
package main

import (
	"os"

	"github.com/jacoelho/multiplicity/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
