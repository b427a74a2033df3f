package querystr

import (
	"errors"
	"fmt"
	"github.com/go-andiamo/gopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strconv"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		query   string
		options []ParseOptions
		expect  map[string]any
		keys    []string
	}{
		{
			query:  "",
			expect: map[string]any{},
		},
		{
			query:  "?",
			expect: map[string]any{},
		},
		{
			query:  "foo=foo&bar=bar",
			expect: map[string]any{"foo": "foo", "bar": "bar"},
			keys:   []string{"foo", "bar"},
		},
		{
			query:  "?foo=foo",
			expect: map[string]any{"foo": "foo"},
		},
		{
			query:  "foo=&bar=bar&baz=",
			expect: map[string]any{"bar": "bar"},
		},
		{
			query:   "foo=&bar=bar&baz=",
			options: []ParseOptions{{IgnoreNoValue: gopt.Of(false), TreatNoValueAsString: gopt.Of(true)}},
			expect:  map[string]any{"foo": "", "bar": "bar", "baz": ""},
			keys:    []string{"foo", "bar", "baz"},
		},
		{
			query:   "foo=&bar=bar",
			options: []ParseOptions{{IgnoreNoValue: gopt.Of(false)}},
			expect:  map[string]any{"foo": nil, "bar": "bar"},
			keys:    []string{"foo", "bar"},
		},
		{
			query:   "foo=foo&bar=bar&bar=0",
			options: []ParseOptions{{TypeConvert: gopt.Of(true)}},
			expect:  map[string]any{"foo": "foo", "bar": []any{"bar", float64(0)}},
			keys:    []string{"foo", "bar"},
		},
		{
			query:  "a=true&b=false&c=null&d=1.5&e=-2&f=1e3",
			expect: map[string]any{"a": true, "b": false, "c": nil, "d": 1.5, "e": float64(-2), "f": float64(1000)},
		},
		{
			query:   "a=true&b=1",
			options: []ParseOptions{{TypeConvert: gopt.Of(false)}},
			expect:  map[string]any{"a": "true", "b": "1"},
		},
		{
			query:  "a=0.0&b=00&c=0x0&d=0x1A&e=abc",
			expect: map[string]any{"a": "0.0", "b": "00", "c": "0x0", "d": float64(26), "e": "abc"},
		},
		{
			query:  "a=%20&b=+",
			expect: map[string]any{"b": "+"},
		},
		{
			query:  "a=1&&b=2&",
			expect: map[string]any{"a": float64(1), "b": float64(2)},
			keys:   []string{"a", "b"},
		},
		{
			query:  "a=b=c",
			expect: map[string]any{"a": "b=c"},
		},
		{
			query:  "a=x%26b%3Dy",
			expect: map[string]any{"a": "x", "b": "y"},
		},
		{
			query:  "a=%zz",
			expect: map[string]any{"a": "%zz"},
		},
		{
			query:  "%3Fa=1",
			expect: map[string]any{"a": float64(1)},
		},
		{
			query:  "name=caf%C3%A9",
			expect: map[string]any{"name": "café"},
		},
		{
			query:  "a=&a=",
			expect: map[string]any{"a": []any{}},
		},
		{
			query:   "a=&a=x",
			options: []ParseOptions{{IgnoreNoValue: gopt.Of(false), TreatNoValueAsString: gopt.Of(true)}},
			expect:  map[string]any{"a": []any{"", "x"}},
		},
		{
			query:   "a=&a=x",
			options: []ParseOptions{{IgnoreNoValue: gopt.Of(false)}},
			expect:  map[string]any{"a": []any{"x"}},
		},
		{
			query:  "a=undefined&a=null&a=1",
			expect: map[string]any{"a": []any{nil, float64(1)}},
		},
		{
			query: "b=2&a=1&b=3&c=4",
			expect: map[string]any{
				"a": float64(1),
				"b": []any{float64(2), float64(3)},
				"c": float64(4),
			},
			keys: []string{"b", "a", "c"},
		},
	}
	for i, tc := range testCases {
		t.Run(fmt.Sprintf("[%d]%q", i+1, tc.query), func(t *testing.T) {
			obj, err := Parse(tc.query, tc.options...)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, obj.Map())
			if tc.keys != nil {
				assert.Equal(t, tc.keys, obj.Keys())
			}
		})
	}
}

func TestParse_Kinds(t *testing.T) {
	t.Run("no equals is undefined", func(t *testing.T) {
		obj, err := Parse("foo&bar=1")
		require.NoError(t, err)
		v, ok := obj.Get("foo")
		require.True(t, ok)
		assert.True(t, v.IsUndefined())
	})
	t.Run("no equals skipped in arrays", func(t *testing.T) {
		obj, err := Parse("foo&foo=1")
		require.NoError(t, err)
		v, ok := obj.Get("foo")
		require.True(t, ok)
		assert.True(t, v.Equal(ArrayValue(NumberValue(1))))
	})
	t.Run("undefined text", func(t *testing.T) {
		obj, err := Parse("foo=undefined")
		require.NoError(t, err)
		v, ok := obj.Get("foo")
		require.True(t, ok)
		assert.Equal(t, Undefined, v.Kind())
	})
	t.Run("empty value undefined when not ignored", func(t *testing.T) {
		obj, err := Parse("foo=", ParseOptions{IgnoreNoValue: gopt.Of(false)})
		require.NoError(t, err)
		v, ok := obj.Get("foo")
		require.True(t, ok)
		assert.Equal(t, Undefined, v.Kind())
	})
	t.Run("null", func(t *testing.T) {
		obj, err := Parse("foo=null")
		require.NoError(t, err)
		v, _ := obj.Get("foo")
		assert.Equal(t, Null, v.Kind())
	})
	t.Run("empty array", func(t *testing.T) {
		obj, err := Parse("foo=&foo=")
		require.NoError(t, err)
		v, ok := obj.Get("foo")
		require.True(t, ok)
		assert.Equal(t, Array, v.Kind())
		assert.Equal(t, 0, v.Len())
	})
}

func TestParse_CustomParse(t *testing.T) {
	t.Run("transform before type conversion", func(t *testing.T) {
		obj, err := Parse("foo=1&bar=bar&bar=0", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				if n, err := strconv.ParseFloat(raw.Str(), 64); err == nil && n != 0 {
					return NumberValue(n), nil
				}
				return raw, nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"foo": float64(1), "bar": []any{"bar", float64(0)}}, obj.Map())
	})
	t.Run("receives raw decoded occurrences", func(t *testing.T) {
		seen := make([]Value, 0)
		_, err := Parse("a=x%20y&b&a=", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				seen = append(seen, raw)
				return raw, nil
			},
		})
		require.NoError(t, err)
		require.Len(t, seen, 3)
		assert.Equal(t, StringValue("x y"), seen[0])
		assert.Equal(t, StringValue(""), seen[1])
		assert.True(t, seen[2].IsUndefined())
	})
	t.Run("non-string result not converted", func(t *testing.T) {
		obj, err := Parse("a=yes&b=5", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				if raw.Str() == "yes" {
					return BoolValue(true), nil
				}
				return raw, nil
			},
		})
		require.NoError(t, err)
		a, _ := obj.Get("a")
		assert.Equal(t, BoolValue(true), a)
		b, _ := obj.Get("b")
		assert.Equal(t, NumberValue(5), b)
	})
	t.Run("output can be made empty", func(t *testing.T) {
		obj, err := Parse("a=secret&b=1", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				if raw.Str() == "secret" {
					return StringValue(""), nil
				}
				return raw, nil
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, obj.Keys())
	})
	t.Run("error passed through unchanged", func(t *testing.T) {
		errBoom := errors.New("boom")
		obj, err := Parse("a=1&b=2", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				if raw.Str() == "2" {
					return Value{}, errBoom
				}
				return raw, nil
			},
		})
		require.Error(t, err)
		assert.Same(t, errBoom, err)
		assert.Nil(t, obj)
	})
	t.Run("error in array passed through unchanged", func(t *testing.T) {
		errBoom := errors.New("boom")
		_, err := Parse("a=1&a=2", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				return Value{}, errBoom
			},
		})
		assert.Same(t, errBoom, err)
	})
	t.Run("not called for empty query", func(t *testing.T) {
		called := false
		obj, err := Parse("", ParseOptions{
			Parse: func(raw Value) (Value, error) {
				called = true
				return raw, nil
			},
		})
		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, 0, obj.Len())
	})
}

func TestParse_SerializeRoundTrip(t *testing.T) {
	src := NewObject().
		Set("name", StringValue("alice")).
		Set("city", StringValue("paris")).
		Set("tag", ArrayValue(StringValue("a"), StringValue("b")))
	qs, err := Serialize(src)
	require.NoError(t, err)
	assert.Equal(t, "city=paris&name=alice&tag=a&tag=b", qs)
	obj, err := Parse(qs)
	require.NoError(t, err)
	assert.Equal(t, src.Map(), obj.Map())
}
