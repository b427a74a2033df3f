package querystr

import (
	"net/url"
	"strings"
)

// Parse parses a query string into an Object
//
// the whole string is percent-decoded once (malformed escapes leave the string as-is) and a single
// leading "?" is stripped - so encoded "&" or "=" within values are treated as separators
//
// multiple occurrences of the same key are collected into an array value, in source order
//
// the only error returned is one from a ParseOptions.Parse func - and it is returned unchanged
func Parse(query string, options ...ParseOptions) (*Object, error) {
	result := NewObject()
	if query == "" {
		return result, nil
	}
	s := mergeParseOptions(options).withDefaults()
	if decoded, err := url.PathUnescape(query); err == nil {
		query = decoded
	}
	query = strings.TrimPrefix(query, "?")
	keys, occurrences := groupEntries(query)
	for _, k := range keys {
		raws := occurrences[k]
		if len(raws) == 1 {
			v, err := s.transform(raws[0])
			if err != nil {
				return nil, err
			}
			if v.isBlank() {
				if !s.ignoreNoValue {
					if s.treatNoValueAsString {
						result.Set(k, StringValue(""))
					} else {
						result.Set(k, UndefinedValue())
					}
				}
				continue
			}
			result.Set(k, v)
			continue
		}
		elems := make([]Value, 0, len(raws))
		for _, raw := range raws {
			v, err := s.transform(raw)
			if err != nil {
				return nil, err
			}
			if v.isBlank() {
				if !s.ignoreNoValue && s.treatNoValueAsString {
					elems = append(elems, StringValue(""))
				}
				continue
			}
			if !v.IsUndefined() {
				elems = append(elems, v)
			}
		}
		result.Set(k, ArrayValue(elems...))
	}
	return result, nil
}

// groupEntries splits the query into entries and groups the raw values by key
//
// keys are returned in the order first encountered, empty entries are skipped and
// an entry without "=" has an undefined raw value
func groupEntries(query string) (keys []string, occurrences map[string][]Value) {
	occurrences = map[string][]Value{}
	for _, entry := range strings.Split(query, "&") {
		// stray "&" separators are skipped rather than producing an empty key
		if entry == "" {
			continue
		}
		k, raw, ok := strings.Cut(entry, "=")
		v := UndefinedValue()
		if ok {
			v = StringValue(raw)
		}
		if _, seen := occurrences[k]; !seen {
			keys = append(keys, k)
		}
		occurrences[k] = append(occurrences[k], v)
	}
	return keys, occurrences
}

func (s parseSettings) transform(raw Value) (v Value, err error) {
	v = raw
	if s.parse != nil {
		if v, err = s.parse(raw); err != nil {
			return v, err
		}
	}
	if s.typeConvert {
		v = coerce(v)
	}
	return v, nil
}
