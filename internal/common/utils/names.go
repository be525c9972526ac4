// Package utils holds small DNS name helpers shared across layers.
package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// Equal reports whether two DNS names are the same after canonicalization.
func Equal(a, b string) bool {
	return CanonicalDNSName(a) == CanonicalDNSName(b)
}

// WithinZone reports whether name falls inside zone, comparing on label
// boundaries. "mail.example.com" is within "example.com" and "com", but
// "evilexample.com" is not within "example.com". Every name is within the
// root zone "".
func WithinZone(name, zone string) bool {
	name = CanonicalDNSName(name)
	zone = CanonicalDNSName(zone)
	if zone == "" {
		return true
	}
	if name == zone {
		return true
	}
	return strings.HasSuffix(name, "."+zone)
}
