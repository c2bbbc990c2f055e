// Package sanitize provides sanitization for user-supplied content.
// Uses bluemonday to strip dangerous HTML (script tags, event handlers,
// javascript: URLs) before anything user-written reaches the database.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// ugcPolicy allows safe formatting tags for report descriptions.
// strictPolicy strips all markup for plain-text fields (names, addresses,
// course titles). Both initialized once via sync.Once.
var (
	ugcPolicy    *bluemonday.Policy
	strictPolicy *bluemonday.Policy
	policyOnce   sync.Once
)

func initPolicies() {
	policyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// HTML sanitizes user-generated HTML content by stripping dangerous elements
// (script, iframe, event handlers, javascript: URLs) while preserving safe
// formatting tags. Called on report descriptions before storage.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return ugcPolicy.Sanitize(input)
}

// Text strips all markup from a plain-text field and trims surrounding
// whitespace. Called on names, addresses, and other single-line inputs.
func Text(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}
