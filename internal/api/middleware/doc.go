// SPDX-License-Identifier: MIT

// Package middleware provides the HTTP ingress stack shared by folio's routers.
package middleware
