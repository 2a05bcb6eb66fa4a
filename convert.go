package nbt

import (
	"fmt"

	"github.com/eluv-io/errors-go"
)

// ToGo converts a tag tree into plain Go values: Compound becomes
// map[string]interface{}, List becomes []interface{}, arrays become copies
// of their element slices, scalars become their underlying Go type and End
// becomes nil. The result shares no memory with the tree.
func ToGo(t Tag) interface{} {
	switch x := t.(type) {
	case nil, End:
		return nil
	case Byte:
		return int8(x)
	case Short:
		return int16(x)
	case Int:
		return int32(x)
	case Long:
		return int64(x)
	case Float:
		return float32(x)
	case Double:
		return float64(x)
	case ByteArray:
		return append([]byte(nil), x...)
	case String:
		return string(x)
	case List:
		items := make([]interface{}, len(x.items))
		for i, item := range x.items {
			items[i] = ToGo(item)
		}
		return items
	case Compound:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[k] = ToGo(v)
		}
		return m
	case IntArray:
		return append([]int32(nil), x...)
	case LongArray:
		return append([]int64(nil), x...)
	}
	return nil
}

// FromGo builds a tag tree from plain Go values, the inverse of ToGo. Widths
// are taken literally: int8/uint8 map to Byte, int16 to Short, int32 to Int,
// int64 to Long, float32 to Float, float64 to Double. []byte, []int32 and
// []int64 map to the array tags, map[string]interface{} to Compound and
// []interface{} to a List whose element type is inferred from the first
// element. Tag values pass through unchanged. Any other type, including
// untyped int, fails with an InvalidTag error so that wire widths are always
// chosen explicitly.
func FromGo(v interface{}) (Tag, error) {
	e := errors.Template("nbt.FromGo", errors.K.Invalid, "reason", InvalidTag)
	switch x := v.(type) {
	case nil:
		return End{}, nil
	case Tag:
		return x, nil
	case int8:
		return Byte(x), nil
	case uint8:
		return Byte(x), nil
	case int16:
		return Short(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Long(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Double(x), nil
	case string:
		return String(x), nil
	case []byte:
		return ByteArray(append([]byte(nil), x...)), nil
	case []int32:
		return IntArray(append([]int32(nil), x...)), nil
	case []int64:
		return LongArray(append([]int64(nil), x...)), nil
	case []interface{}:
		if len(x) == 0 {
			return List{}, nil
		}
		items := make([]Tag, len(x))
		for i, el := range x {
			item, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewList(items[0].Type(), items...)
	case map[string]interface{}:
		c := make(Compound, len(x))
		for k, el := range x {
			item, err := FromGo(el)
			if err != nil {
				return nil, err
			}
			c[k] = item
		}
		return c, nil
	default:
		return nil, e("go_type", fmt.Sprintf("%T", v))
	}
}
