package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Key identifies a cached query: the resource name followed by every
// parameter that changes the result.
type Key []string

// NewKey builds a Key from arbitrary parts. url.Values are encoded in their
// sorted canonical form so equal filters always produce equal keys.
func NewKey(parts ...interface{}) Key {
	k := make(Key, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			k = append(k, v)
		case url.Values:
			k = append(k, v.Encode())
		case fmt.Stringer:
			k = append(k, v.String())
		default:
			k = append(k, fmt.Sprint(v))
		}
	}
	return k
}

// String returns the canonical form used as the cache map key.
func (k Key) String() string {
	quoted := make([]string, len(k))
	for i, p := range k {
		quoted[i] = strconv.Quote(p)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// HasPrefix reports whether prefix matches the leading parts of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Equal reports whether both keys have identical parts.
func (k Key) Equal(other Key) bool {
	return len(k) == len(other) && k.HasPrefix(other)
}
