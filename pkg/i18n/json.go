package i18n

import (
	"fmt"
	"strconv"

	"github.com/tailscale/hujson"
)

// DecodeJSONObject decodes a JSON document into an Object keeping key order.
// Comments and trailing commas are accepted. The top-level value must be an object.
func DecodeJSONObject(raw []byte) (*Object, error) {
	value, err := hujson.Parse(raw)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeJSONValue(value)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(*Object)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", decoded)
	}
	return obj, nil
}

func decodeJSONValue(value hujson.Value) (any, error) {
	switch v := value.Value.(type) {
	case *hujson.Object:
		obj := NewObject()
		for _, member := range v.Members {
			name, ok := member.Name.Value.(hujson.Literal)
			if !ok || name.Kind() != '"' {
				return nil, fmt.Errorf("object key at offset %d is not a string", member.Name.StartOffset)
			}
			decoded, err := decodeJSONValue(member.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(name.String(), decoded)
		}
		return obj, nil
	case *hujson.Array:
		items := make([]any, 0, len(v.Elements))
		for _, element := range v.Elements {
			decoded, err := decodeJSONValue(element)
			if err != nil {
				return nil, err
			}
			items = append(items, decoded)
		}
		return items, nil
	case hujson.Literal:
		return decodeJSONLiteral(v, value.StartOffset)
	}
	return nil, fmt.Errorf("unsupported JSON value at offset %d", value.StartOffset)
}

func decodeJSONLiteral(lit hujson.Literal, offset int) (any, error) {
	switch lit.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return lit.Bool(), nil
	case '"':
		return lit.String(), nil
	case '0':
		if n, err := strconv.Atoi(string(lit)); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(string(lit), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number at offset %d: %w", offset, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("invalid literal at offset %d", offset)
}
