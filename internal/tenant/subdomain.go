package tenant

import (
	"regexp"
	"strings"
)

// subdomainPattern: starts and ends with an alphanumeric, interior may
// contain hyphens, 63 chars max (DNS label rules)
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])?$`)

var (
	invalidSubdomainChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns            = regexp.MustCompile(`-{2,}`)
)

// SanitizeSubdomain normalizes user input into subdomain form: lowercase,
// runs of characters outside [a-z0-9-] collapse into a single hyphen,
// hyphen runs collapse, leading/trailing hyphens are trimmed. Idempotent.
func SanitizeSubdomain(input string) string {
	s := strings.ToLower(input)
	s = invalidSubdomainChars.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSubdomain reports whether s is an acceptable tenant subdomain.
// The 3-char length floor is an independent check layered on top of the
// pattern; both must pass.
func ValidSubdomain(s string) bool {
	if len(s) < 3 || len(s) > 63 {
		return false
	}
	return subdomainPattern.MatchString(s)
}
