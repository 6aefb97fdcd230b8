package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Cleaner strips markup from vacancy snippets. HH wraps matched terms in
// <highlighttext> tags, which must not leak into served text or substring
// matching.
type Cleaner struct {
	policy *bluemonday.Policy
}

// New creates a cleaner that removes all HTML.
func New() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// Text removes all markup and returns trimmed plain text.
func (c *Cleaner) Text(s string) string {
	text := c.policy.Sanitize(s)
	text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	return strings.TrimSpace(text)
}
