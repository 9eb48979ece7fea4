package logging

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrOddArguments is returned by Pairs when a key has no value.
var ErrOddArguments = errors.New("logging: arguments must be declared in pairs")

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Pairs groups alternating keys and values into fields. Keys that are not
// strings are formatted with fmt.Sprint.
func Pairs(args ...any) ([]Field, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d arguments", ErrOddArguments, len(args))
	}
	fields := make([]Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields = append(fields, Field{Key: key, Value: args[i+1]})
	}
	return fields, nil
}

// flatten turns fields into hclog's alternating arguments. Slice and array
// values repeat their key once per element; byte slices stay whole.
func flatten(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = appendField(out, f.Key, f.Value)
	}
	return out
}

func appendField(out []any, key string, value any) []any {
	if value == nil {
		return append(out, key, value)
	}
	if _, ok := value.([]byte); ok {
		return append(out, key, value)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			out = appendField(out, key, rv.Index(i).Interface())
		}
		return out
	default:
		return append(out, key, value)
	}
}
