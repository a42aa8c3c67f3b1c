// ansigen - evolve 16-colour terminal palettes that satisfy contrast constraints.
//
// ansigen searches for ANSI palettes with a genetic algorithm, scoring candidates
// against WCAG 2.1 and APCA contrast requirements, and writes the result as a
// Ghostty theme.
package main

import (
	"os"

	"github.com/jmylchreest/ansigen/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
