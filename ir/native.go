package ir

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Interface converts v to plain Go data: nil, bool, float64, string, []any
// and map[string]any.  Datetimes become their literal text.
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.Type {
	case BoolType:
		return v.Bool
	case NumberType:
		return v.Number
	case StringType:
		return v.String
	case DatetimeType:
		return v.Datetime.String()
	case ArrayType:
		res := make([]any, len(v.Array))
		for i, e := range v.Array {
			res[i] = e.Interface()
		}
		return res
	case ObjectType:
		res := make(map[string]any, v.Object.Len())
		for k, e := range v.Object.All() {
			res[k] = e.Interface()
		}
		return res
	}
	return nil
}

// FromInterface is the inverse of Interface.  Map keys are sorted since Go
// maps carry no order.
func FromInterface(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case float64:
		return FromNumber(t), nil
	case float32:
		return FromNumber(float64(t)), nil
	case int:
		return FromInt(int64(t)), nil
	case int64:
		return FromInt(t), nil
	case int32:
		return FromInt(int64(t)), nil
	case uint64:
		return FromNumber(float64(t)), nil
	case string:
		return FromString(t), nil
	case time.Time:
		return FromDatetime(Datetime{Kind: OffsetDatetime, Time: t, Digits: fracDigits(t.Format(time.RFC3339Nano))}), nil
	case []any:
		res := make([]*Value, len(t))
		for i, e := range t {
			ev, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			res[i] = ev
		}
		return FromSlice(res), nil
	case map[string]any:
		o := NewObject()
		for _, k := range slices.Sorted(maps.Keys(t)) {
			ev, err := FromInterface(t[k])
			if err != nil {
				return nil, err
			}
			o.Set(k, ev)
		}
		return FromObject(o), nil
	case *Value:
		return t, nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T", ErrUnsupportedType, x)
}
