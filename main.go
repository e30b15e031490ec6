// avalanche – review-sentiment dashboard with a Cortex chat assistant.
//
// Entry point: initializes the Cobra root command, which establishes
// the warehouse session and launches the Bubble Tea TUI.
package main

import (
	"os"

	"avalanche/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
