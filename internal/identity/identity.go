package identity

import "github.com/google/uuid"

// namespace is the RFC 4122 DNS namespace. It is fixed forever: article
// identity is a pure function of (namespace, url), which makes the ID the
// dedup key across repeated crawls.
var namespace = uuid.NameSpaceDNS

// ForURL returns the deterministic identifier for an article URL. The URL
// string is used exactly as given, with no canonicalization; an empty URL is
// permitted and maps to a fixed ID.
func ForURL(url string) string {
	return uuid.NewSHA1(namespace, []byte(url)).String()
}
