package querystr

import "github.com/go-andiamo/gopt"

// ParseFunc is a custom per-value transform used by Parse
//
// the raw value is the decoded string of a single occurrence (or undefined if the entry had no "=")
//
// type conversion is only applied to a returned String value - a returned Number, Boolean
// or other kind is kept as-is (e.g. returning BoolValue(true) does not become 1)
type ParseFunc func(raw Value) (Value, error)

// StringifyFunc is a custom per-value to string transform used by Serialize
//
// for arrays it is called once for each element
type StringifyFunc func(v Value) (string, error)

// ParseOptions are the options for Parse
//
// any option not set takes its default
type ParseOptions struct {
	// IgnoreNoValue whether keys (or occurrences) with an empty value are omitted (default true)
	IgnoreNoValue *gopt.Optional[bool]
	// TreatNoValueAsString when not ignoring empty values, whether an empty value is the empty string
	// rather than undefined (default false)
	TreatNoValueAsString *gopt.Optional[bool]
	// TypeConvert whether "true", "false", "null", "undefined" and numeric strings are converted (default true)
	TypeConvert *gopt.Optional[bool]
	// Parse is applied to each raw value before type conversion (default is no transform)
	Parse ParseFunc
}

type parseSettings struct {
	ignoreNoValue        bool
	treatNoValueAsString bool
	typeConvert          bool
	parse                ParseFunc
}

func (o ParseOptions) withDefaults() parseSettings {
	return parseSettings{
		ignoreNoValue:        optionalOr(o.IgnoreNoValue, true),
		treatNoValueAsString: optionalOr(o.TreatNoValueAsString, false),
		typeConvert:          optionalOr(o.TypeConvert, true),
		parse:                o.Parse,
	}
}

// mergeParseOptions merges options left to right - a set option overrides any earlier one
func mergeParseOptions(options []ParseOptions) (result ParseOptions) {
	for _, o := range options {
		result.IgnoreNoValue = override(result.IgnoreNoValue, o.IgnoreNoValue)
		result.TreatNoValueAsString = override(result.TreatNoValueAsString, o.TreatNoValueAsString)
		result.TypeConvert = override(result.TypeConvert, o.TypeConvert)
		if o.Parse != nil {
			result.Parse = o.Parse
		}
	}
	return result
}

// SerializeOptions are the options for Serialize
//
// any option not set takes its default
type SerializeOptions struct {
	// IgnoreNullishValue whether null, undefined and empty/whitespace values are omitted (default true)
	IgnoreNullishValue *gopt.Optional[bool]
	// WithPrefix whether the output is prefixed with "?" (default false)
	WithPrefix *gopt.Optional[bool]
	// Sorted whether keys are sorted (default true) - unsorted keys are written in insertion order
	Sorted *gopt.Optional[bool]
	// Stringify converts each value to a string (default is Value.String)
	Stringify StringifyFunc
}

type serializeSettings struct {
	ignoreNullishValue bool
	withPrefix         bool
	sorted             bool
	stringify          StringifyFunc
}

func (o SerializeOptions) withDefaults() serializeSettings {
	result := serializeSettings{
		ignoreNullishValue: optionalOr(o.IgnoreNullishValue, true),
		withPrefix:         optionalOr(o.WithPrefix, false),
		sorted:             optionalOr(o.Sorted, true),
		stringify:          o.Stringify,
	}
	if result.stringify == nil {
		result.stringify = defaultStringify
	}
	return result
}

func defaultStringify(v Value) (string, error) {
	return v.String(), nil
}

func mergeSerializeOptions(options []SerializeOptions) (result SerializeOptions) {
	for _, o := range options {
		result.IgnoreNullishValue = override(result.IgnoreNullishValue, o.IgnoreNullishValue)
		result.WithPrefix = override(result.WithPrefix, o.WithPrefix)
		result.Sorted = override(result.Sorted, o.Sorted)
		if o.Stringify != nil {
			result.Stringify = o.Stringify
		}
	}
	return result
}

func override[T any](current, next *gopt.Optional[T]) *gopt.Optional[T] {
	if next != nil && next.IsPresent() {
		return next
	}
	return current
}

// optionalOr returns the optional's value, or def when the optional is nil or empty
func optionalOr[T any](o *gopt.Optional[T], def T) T {
	if o == nil {
		return def
	}
	return o.Default(def)
}
