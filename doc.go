// Package querystr converts between URL query strings (the part after "?") and ordered key/value objects
//
// Parse infers booleans, null, undefined and numbers from the decoded text (unless TypeConvert is
// turned off) and collects repeated keys into arrays. Serialize writes keys sorted (unless Sorted is
// turned off) and drops nullish values (unless IgnoreNullishValue is turned off).
//
// Parse percent-decodes the whole query once before splitting; Serialize does no encoding at all.
// Values containing "&", "=" or "%" are therefore not guaranteed to round-trip - callers that need a
// valid URL query should encode values themselves.
package querystr
