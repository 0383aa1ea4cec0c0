// Command gradebook manages student grade records in a SQLite file.
package main

import (
	"os"

	"github.com/roach88/gradebook/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
