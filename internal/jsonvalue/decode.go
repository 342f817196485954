package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
)

var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrUnsupportedType = errors.New("unsupported value type")
)

// Format selects the decoder used for a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Parse decodes data in the given format into a Value.
func Parse(data []byte, format Format) (Value, error) {
	raw, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// Decode decodes data into plain Go values (map[string]any, []any and
// scalars). Numbers decoded from JSON are json.Number.
func Decode(data []byte, format Format) (any, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidDocument)
	}

	return v, nil
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return v, nil
}

// FromAny converts plain Go values, as produced by encoding/json or a YAML
// decoder, into a Value.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(x), nil
	case string:
		return StringValue(x), nil
	case json.Number:
		return NumberValue(x.String())
	case float64:
		return NumberValue(strconv.FormatFloat(x, 'g', -1, 64))
	case float32:
		return NumberValue(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case int:
		return NumberValue(strconv.Itoa(x))
	case int64:
		return NumberValue(strconv.FormatInt(x, 10))
	case uint64:
		return NumberValue(strconv.FormatUint(x, 10))
	case uint:
		return NumberValue(strconv.FormatUint(uint64(x), 10))
	case []any:
		arr := make(Array, len(x))
		for i, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = converted
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(x))
		for k, item := range x {
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = converted
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(x))
		for k, item := range x {
			name, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", ErrUnsupportedType, k)
			}
			converted, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			obj[name] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
