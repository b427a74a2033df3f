package querystr

import (
	"fmt"
	"maps"
	"slices"
)

// Object is an ordered mapping of query keys to values
//
// keys are unique and are kept in the order they were first set
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{
		values: map[string]Value{},
	}
}

// ObjectOf builds an Object from a plain Go map (keys are set in sorted order)
//
// each map value is converted using ValueOf
func ObjectOf(m map[string]any) (*Object, error) {
	result := NewObject()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v, err := ValueOf(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		result.Set(k, v)
	}
	return result, nil
}

// Set sets the value for a key - an existing key keeps its position
//
// unlike the read methods, Set must not be called on a nil *Object (it panics)
func (o *Object) Set(key string, v Value) *Object {
	if o.values == nil {
		o.values = map[string]Value{}
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

func (o *Object) Get(key string) (v Value, ok bool) {
	if o != nil {
		v, ok = o.values[key]
	}
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

func (o *Object) Delete(key string) {
	if o.Has(key) {
		delete(o.values, key)
		o.keys = slices.DeleteFunc(o.keys, func(k string) bool {
			return k == key
		})
	}
}

// Keys returns a copy of the keys in insertion order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Range calls fn for each key/value in insertion order, stopping when fn returns false
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

func (o *Object) Clone() *Object {
	result := NewObject()
	o.Range(func(key string, v Value) bool {
		result.Set(key, v)
		return true
	})
	return result
}

// Map returns the object as a plain Go map (see Value.Any)
func (o *Object) Map() map[string]any {
	result := make(map[string]any, o.Len())
	o.Range(func(key string, v Value) bool {
		result[key] = v.Any()
		return true
	})
	return result
}
