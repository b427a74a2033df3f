package querystr

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"math"
)

var _ yaml.Marshaler = Value{}
var _ yaml.Unmarshaler = (*Value)(nil)
var _ yaml.Marshaler = (*Object)(nil)
var _ yaml.Unmarshaler = (*Object)(nil)

func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.str}
	case Number:
		switch {
		case math.IsNaN(v.num):
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".nan"}
		case math.IsInf(v.num, 1):
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: ".inf"}
		case math.IsInf(v.num, -1):
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: "-.inf"}
		case v.num == math.Trunc(v.num) && math.Abs(v.num) <= 1<<53:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: formatNumber(v.num)}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatNumber(v.num)}
	case Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.String()}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range v.elems {
			n.Content = append(n.Content, e.yamlNode())
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func (v *Value) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.AliasNode:
		return v.UnmarshalYAML(n.Alias)
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			*v = NullValue()
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return err
			}
			*v = BoolValue(b)
		case "!!int", "!!float":
			var f float64
			if err := n.Decode(&f); err != nil {
				return err
			}
			*v = NumberValue(f)
		default:
			*v = StringValue(n.Value)
		}
		return nil
	case yaml.SequenceNode:
		elems := make([]Value, len(n.Content))
		for i, en := range n.Content {
			if err := elems[i].UnmarshalYAML(en); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		*v = ArrayValue(elems...)
		return nil
	}
	return fmt.Errorf("unsupported yaml node at line %d", n.Line)
}

// MarshalYAML writes the object as a mapping with keys in insertion order - undefined values are omitted
func (o *Object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	o.Range(func(key string, v Value) bool {
		if !v.IsUndefined() {
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v.yamlNode())
		}
		return true
	})
	return n, nil
}

// UnmarshalYAML reads a mapping, keeping the key order of the document
func (o *Object) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			*o = *NewObject()
			return nil
		}
		return o.UnmarshalYAML(n.Content[0])
	case yaml.AliasNode:
		return o.UnmarshalYAML(n.Alias)
	case yaml.MappingNode:
	default:
		if n.ShortTag() == "!!null" {
			*o = *NewObject()
			return nil
		}
		return fmt.Errorf("cannot unmarshal yaml node at line %d into object", n.Line)
	}
	result := NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		var v Value
		if err := v.UnmarshalYAML(n.Content[i+1]); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		result.Set(key, v)
	}
	*o = *result
	return nil
}
