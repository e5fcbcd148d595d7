// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldVisitorID = "visitor_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Portfolio fields
	FieldSource   = "source"
	FieldKey      = "key"
	FieldRevision = "revision"
	FieldTheme    = "theme"
	FieldMissing  = "missing"

	// Path / URL fields
	FieldPath   = "path"
	FieldRoute  = "route"
	FieldMethod = "method"
	FieldStatus = "status"
)
