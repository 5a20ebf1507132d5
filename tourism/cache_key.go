package tourism

import (
	"sort"
	"strings"
)

// Parameters excluded from cache keys: they are boilerplate or credentials
// and never change the response payload.
var cacheKeyExcluded = map[string]struct{}{
	"MobileOS":   {},
	"MobileApp":  {},
	"serviceKey": {},
	"_type":      {},
}

// cacheKey derives the canonical cache key for one upstream call. The key
// includes the endpoint, the resolved language, and the semantic parameters
// sorted by name, so two requests that differ only in map iteration order
// or boilerplate share an entry and requests in different languages never
// collide.
func cacheKey(endpoint string, params map[string]string, language string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		if _, skip := cacheKeyExcluded[name]; skip {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteString("?lang=")
	b.WriteString(language)
	for _, name := range names {
		b.WriteByte('&')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}
