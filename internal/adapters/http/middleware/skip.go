package middleware

import "strings"

// opsPrefix holds the health, build and metrics endpoints.
const opsPrefix = "/-/"

// skipper matches request paths a middleware leaves alone. An entry ending
// in "/" matches every path below it; any other entry must match exactly.
type skipper []string

func (s skipper) match(path string) bool {
	for _, p := range s {
		if p == path || (strings.HasSuffix(p, "/") && strings.HasPrefix(path, p)) {
			return true
		}
	}

	return false
}
