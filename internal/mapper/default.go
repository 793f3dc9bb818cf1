package mapper

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/mcncl/treeval/internal/value"
)

// DefaultPriority is the priority of the generic mapper
const DefaultPriority = 0

// Default maps plain Go values: nil, strings, booleans, numbers,
// json.Number, values of the value model, slices and arrays, and maps with
// string keys. Map keys are sorted so the resulting context iterates
// deterministically.
type Default struct{}

// Priority implements Mapper
func (Default) Priority() int { return DefaultPriority }

// ToValue implements Mapper
func (d Default) ToValue(x any, inner Func) (value.Value, bool, error) {
	switch v := x.(type) {
	case nil:
		return value.NullValue, true, nil
	case value.Value:
		return v, true, nil
	case string:
		return value.String(v), true, nil
	case bool:
		return value.Bool(v), true, nil
	case json.Number:
		return value.Number(v.String()), true, nil
	case int:
		return value.NumberFromInt(int64(v)), true, nil
	case int8:
		return value.NumberFromInt(int64(v)), true, nil
	case int16:
		return value.NumberFromInt(int64(v)), true, nil
	case int32:
		return value.NumberFromInt(int64(v)), true, nil
	case int64:
		return value.NumberFromInt(v), true, nil
	case uint:
		return value.Number(fmt.Sprint(v)), true, nil
	case uint8:
		return value.Number(fmt.Sprint(v)), true, nil
	case uint16:
		return value.Number(fmt.Sprint(v)), true, nil
	case uint32:
		return value.Number(fmt.Sprint(v)), true, nil
	case uint64:
		return value.Number(fmt.Sprint(v)), true, nil
	case float32:
		return value.NumberFromFloat(float64(v)), true, nil
	case float64:
		return value.NumberFromFloat(v), true, nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return value.String(rv.Bytes()), true, nil
		}
		list := make(value.List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := inner(rv.Index(i).Interface())
			if err != nil {
				return nil, false, err
			}
			list = append(list, item)
		}
		return list, true, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false, nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		ctx := value.NewContext(len(keys))
		for _, k := range keys {
			item, err := inner(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return nil, false, err
			}
			ctx.Set(k, item)
		}
		return ctx, true, nil
	default:
		return nil, false, nil
	}
}

// UnpackValue implements Mapper. Numbers unpack as json.Number, lists as
// []any and contexts as map[string]any.
func (d Default) UnpackValue(v value.Value, inner UnpackFunc) (any, bool, error) {
	switch val := v.(type) {
	case value.Null:
		return nil, true, nil
	case value.String:
		return string(val), true, nil
	case value.Bool:
		return bool(val), true, nil
	case value.Number:
		return json.Number(val), true, nil
	case value.List:
		out := make([]any, 0, len(val))
		for _, item := range val {
			u, err := inner(item)
			if err != nil {
				return nil, false, err
			}
			out = append(out, u)
		}
		return out, true, nil
	case *value.Context:
		out := make(map[string]any, val.Len())
		var err error
		val.Range(func(key string, item value.Value) bool {
			var u any
			u, err = inner(item)
			if err != nil {
				return false
			}
			out[key] = u
			return true
		})
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	default:
		return nil, false, nil
	}
}
