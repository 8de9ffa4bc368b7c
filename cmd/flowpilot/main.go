// Command flowpilot scans projects for imports, scaffolds FlowPilot projects and
// strips tagging decorators from sources.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
