// Command huntbook is an offline record book for hunters.
package main

import (
	"os"

	"github.com/mesh-intelligence/huntbook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
