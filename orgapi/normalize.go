package orgapi

import "strings"

// ExtractGUID normalizes a resource identifier to the bare key used in API
// paths. Compound URN-style identifiers ("urn:x:abc-123") yield the segment
// after the last colon; plain identifiers pass through unchanged. An empty
// input stays empty, signaling "no identifier" - callers skip the entity
// rather than fabricate a key.
func ExtractGUID(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}
