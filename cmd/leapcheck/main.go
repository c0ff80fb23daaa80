// Command leapcheck is a proof-of-concept data validator: edit a small CSV
// dataset and watch data-quality expectations recompute live.
package main

import (
	"os"

	"github.com/leapstack-labs/leapcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
