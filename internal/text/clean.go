package text

import (
	"regexp"
	"strings"
)

var (
	newlinesRe     = regexp.MustCompile(`\n+`)
	nonPrintableRe = regexp.MustCompile(`[^\p{L}\p{N}\p{P}\p{Z}]`)
)

// Clean collapses newlines into spaces and drops every character that is
// not a letter, number, punctuation mark or separator (control characters
// such as tabs, and symbols such as '$' or '+') from a document's text,
// part of the document-acquisition collaborator of spec §1 (out of scope for the core, but still needed to produce the
// plain text the Text Source collaborator hands back for ALL-mode
// rescoring).
func Clean(extracted string) string {
	out := newlinesRe.ReplaceAllString(extracted, " ")
	out = nonPrintableRe.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
