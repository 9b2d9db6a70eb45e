package client

import (
	"fmt"
	"net/url"
	"reflect"
)

// Query is a flat set of query-string parameters. Values are stringified with
// fmt; nil values (including typed nil pointers) are omitted.
type Query map[string]any

// Encode returns the URL-encoded form, sorted by key.
func (q Query) Encode() string {
	vals := url.Values{}
	for k, v := range q {
		s, ok := queryValue(v)
		if !ok {
			continue
		}
		vals.Set(k, s)
	}
	return vals.Encode()
}

func queryValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}

// withQuery appends q to path, adding no "?" when q encodes to nothing.
func withQuery(path string, q Query) string {
	if encoded := q.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}
