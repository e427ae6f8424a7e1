// Command loantrack browses and maintains loan utilization records.
package main

import (
	"os"

	"github.com/mesh-intelligence/loantrack/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
