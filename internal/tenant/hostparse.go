package tenant

import "strings"

// ExtractSubdomain extracts the tenant subdomain from a raw Host header.
// It never fails: malformed input yields ("", false).
//
// Rules:
//   - a trailing :port is stripped;
//   - bare localhost / 127.0.0.1 carry no subdomain, but the two-part local
//     dev form "<token>.localhost" resolves to <token>;
//   - otherwise a host with at least 3 dot-separated labels resolves to its
//     first label, anything shorter has no subdomain.
func ExtractSubdomain(host string) (string, bool) {
	hostname := strings.Split(host, ":")[0] // remove port

	if hostname == "localhost" || hostname == "127.0.0.1" {
		return "", false
	}

	parts := strings.Split(hostname, ".")

	// local dev form: acme.localhost
	if len(parts) == 2 && parts[1] == "localhost" && parts[0] != "" {
		return parts[0], true
	}

	if len(parts) >= 3 && parts[0] != "" {
		return parts[0], true
	}

	return "", false
}

// IsMainDomain reports whether the host has no subdomain component
func IsMainDomain(host string) bool {
	_, ok := ExtractSubdomain(host)
	return !ok
}
