package normalizer

import "strings"

// Input holds the comparison forms of one raw URL string
type Input struct {
	Raw          string
	TrimmedLower string
	HostStripped string
	Host         string
}

var schemePrefixes = []string{"http://", "https://"}

// Normalize derives the comparison forms of raw. It never fails.
func Normalize(raw string) Input {
	lower := strings.ToLower(strings.TrimSpace(raw))

	stripped := lower
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(stripped, prefix) {
			stripped = stripped[len(prefix):]
			break
		}
	}
	stripped = strings.TrimPrefix(stripped, "www.")

	host := stripped
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}

	return Input{
		Raw:          raw,
		TrimmedLower: lower,
		HostStripped: stripped,
		Host:         host,
	}
}
