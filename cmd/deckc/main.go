// Command deckc renders YAML deck descriptions to SVG slides.
package main

import (
	"fmt"
	"os"

	"github.com/go-deck/deck/cmd/deckc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "deckc:", err)
		os.Exit(1)
	}
}
