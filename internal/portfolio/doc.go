// SPDX-License-Identifier: MIT

// Package portfolio loads and edits the portfolio document.
//
// The document is the JSON file that drives every section of the page. It
// is held as a generic JSON tree so unknown keys survive dotted-path
// updates and saves; a typed Document is decoded from the tree for
// rendering. When the source cannot be read the built-in fallback document
// is served instead and the failure is only logged.
package portfolio
