package querystr

import (
	"slices"
	"strings"
)

// Serialize serializes an Object to a query string
//
// array values are written as repeated key=value pairs (in element order) at the key's position
//
// keys and values are written raw - they are NOT percent-encoded, so values containing "&", "=" or "%"
// will not round-trip through Parse
//
// the only error returned is one from a SerializeOptions.Stringify func - and it is returned unchanged
func Serialize(query *Object, options ...SerializeOptions) (string, error) {
	s := mergeSerializeOptions(options).withDefaults()
	prefix := ""
	if s.withPrefix {
		prefix = "?"
	}
	if query.Len() == 0 {
		return prefix, nil
	}
	keys := query.Keys()
	if s.sorted {
		slices.Sort(keys)
	}
	var buf strings.Builder
	for _, k := range keys {
		v, _ := query.Get(k)
		if s.ignoreNullishValue && v.IsNullish() {
			continue
		}
		vs := []Value{v}
		if v.Kind() == Array {
			vs = v.elems
		}
		for _, ev := range vs {
			str, err := s.stringify(ev)
			if err != nil {
				return "", err
			}
			if s.ignoreNullishValue && isNullishText(str) {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(str)
		}
	}
	return prefix + buf.String(), nil
}

// isNullishText catches values that only look nullish once stringified
func isNullishText(s string) bool {
	return s == "" || s == "null" || s == "undefined"
}
