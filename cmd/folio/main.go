// SPDX-License-Identifier: MIT

// Command folio serves and maintains the portfolio site.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
