// SPDX-License-Identifier: MIT

// Command spectral clusters graphs with epsilon-bounded neighborhoods and
// k-means over the leading eigenvectors of the similarity matrix.
//
//	spectral generate --nodes 200 --picks 5 --seed 7 graph.adj
//	spectral cluster --epsilon 2 --clusters 3 graph.adj
//	spectral history list
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/spectral/internal/logger"
)

func main() {
	err := newRootCmd().Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
