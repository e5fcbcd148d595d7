// SPDX-License-Identifier: MIT

// Package version holds build metadata stamped in with -ldflags.
package version

var (
	// Version is the release the binary was built from.
	Version = "v1.0.0"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)
