package redis

import (
	"net/url"
	"strings"
)

// Key joins escaped parts under a prefix. Escaping keeps "a:b"+"c" and
// "a"+"b:c" from producing the same key.
func Key(prefix string, parts ...string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		b.WriteString(url.QueryEscape(p))
	}
	return b.String()
}
