package i18n

import (
	"fmt"
	"sort"

	yaml "go.yaml.in/yaml/v3"
)

// Object is a decoded JSON/YAML mapping that remembers the document order of its keys.
// Locale processing follows that order, so workspace files should be decoded into Object
// rather than map[string]any.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// ObjectFromMap copies a plain map into an Object with keys in sorted order.
// Nested maps are converted as well.
func ObjectFromMap(m map[string]any) *Object {
	obj := NewObject()
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		obj.Set(key, fromPlain(m[key]))
	}
	return obj
}

// Set stores a value, appending the key when it is new.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = map[string]any{}
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o.values[key]
	return value, ok
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Plain converts the Object (recursively) into map[string]any / []any values.
func (o *Object) Plain() map[string]any {
	if o == nil {
		return nil
	}
	out := make(map[string]any, len(o.keys))
	for _, key := range o.keys {
		out[key] = toPlain(o.values[key])
	}
	return out
}

// UnmarshalYAML decodes a mapping node keeping key order. JSON documents decode the same way.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	value, err := decodeNode(node)
	if err != nil {
		return err
	}
	obj, ok := value.(*Object)
	if !ok {
		return fmt.Errorf("expected a mapping, got %s", nodeKind(node))
	}
	*o = *obj
	return nil
}

func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeNode(node.Content[0])
	case yaml.AliasNode:
		return decodeNode(node.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key string
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("decode mapping key at line %d: %w", node.Content[i].Line, err)
			}
			value, err := decodeNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode scalar at line %d: %w", node.Line, err)
		}
		return value, nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d", node.Kind)
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.DocumentNode:
		return "document"
	}
	return "node"
}

func fromPlain(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return ObjectFromMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = fromPlain(item)
		}
		return out
	}
	return value
}

// ToPlain converts ordered objects nested anywhere in value into plain maps.
func ToPlain(value any) any {
	if m, ok := value.(map[string]any); ok {
		return ObjectFromMap(m).Plain()
	}
	return toPlain(value)
}

func toPlain(value any) any {
	switch v := value.(type) {
	case *Object:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toPlain(item)
		}
		return out
	}
	return value
}

// asObject accepts the mapping shapes a metadata provider may hand over.
func asObject(value any) (*Object, bool) {
	switch v := value.(type) {
	case *Object:
		if v == nil {
			return nil, false
		}
		return v, true
	case Object:
		return &v, true
	case map[string]any:
		if v == nil {
			return nil, false
		}
		return ObjectFromMap(v), true
	}
	return nil, false
}
