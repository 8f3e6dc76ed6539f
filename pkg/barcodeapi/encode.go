package barcodeapi

import (
	"net/url"
	"strings"
)

// escapeComponent percent-encodes s as a single URL component. Only the
// unreserved set (ALPHA / DIGIT / "-" / "_" / "." / "~") is left as is;
// a space becomes %20.
func escapeComponent(s string) string {
	// QueryEscape already escapes a literal '+' to %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Query is an ordered set of query parameters. Setting an existing key
// replaces its value in place.
type Query struct {
	keys   []string
	values map[string]string
}

// NewQuery builds a Query from alternating key, value pairs.
func NewQuery(kv ...string) Query {
	var q Query
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return q
}

// Set assigns value to key, keeping the key's original position.
func (q *Query) Set(key, value string) {
	if q.values == nil {
		q.values = make(map[string]string)
	}
	if _, ok := q.values[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.values[key] = value
}

// Get returns the value for key.
func (q Query) Get(key string) (string, bool) {
	v, ok := q.values[key]
	return v, ok
}

// Len reports the number of distinct keys.
func (q Query) Len() int { return len(q.keys) }

// Encode renders the query in insertion order.
func (q Query) Encode() string {
	if len(q.keys) == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[k]))
	}
	return b.String()
}
