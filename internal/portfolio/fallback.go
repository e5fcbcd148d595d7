// SPDX-License-Identifier: MIT

package portfolio

import "encoding/json"

// fallbackJSON is served whenever the configured source cannot be loaded.
const fallbackJSON = `{
  "site": {
    "title": "Archit Verma | Backend • BI Automation • AI Engineer",
    "description": "Software / BI Automation Engineer with 2+ years experience",
    "author": "Archit Verma"
  },
  "personal": {
    "name": "Archit Verma",
    "role": "Backend / BI Automation / AI Engineer",
    "location": "India",
    "email": "archit.verma@example.com"
  },
  "links": {
    "linkedin": "#",
    "github": "#",
    "portfolio": "#",
    "resume": "assets/docs/resume.pdf"
  },
  "experience": [],
  "projects": [],
  "skills": {},
  "contact": {
    "copyright": "© 2024 Archit Verma. All rights reserved.",
    "version": "1.0.0"
  }
}`

// Fallback returns a fresh copy of the built-in document.
func Fallback() map[string]any {
	var tree map[string]any
	if err := json.Unmarshal([]byte(fallbackJSON), &tree); err != nil {
		panic("portfolio: invalid fallback document: " + err.Error())
	}
	return tree
}
