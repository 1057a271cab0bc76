package ir

import "math"

// Equal reports whether a and b are the same tree.  Object key order is
// significant.
func Equal(a, b *Value) bool {
	return equal(a, b, func(x, y float64) bool {
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	})
}

// EqualApprox is Equal with numbers compared up to the relative tolerance
// eps.
func EqualApprox(a, b *Value, eps float64) bool {
	return equal(a, b, func(x, y float64) bool {
		if x == y || (math.IsNaN(x) && math.IsNaN(y)) {
			return true
		}
		diff := math.Abs(x - y)
		scale := math.Max(math.Abs(x), math.Abs(y))
		return diff <= eps*math.Max(scale, 1)
	})
}

func equal(a, b *Value, numEq func(x, y float64) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case NumberType:
		return numEq(a.Number, b.Number)
	case StringType:
		return a.String == b.String
	case DatetimeType:
		return a.Datetime.Equal(*b.Datetime)
	case ArrayType:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !equal(a.Array[i], b.Array[i], numEq) {
				return false
			}
		}
		return true
	case ObjectType:
		if a.Object.Len() != b.Object.Len() {
			return false
		}
		bKeys := b.Object.Keys()
		i := 0
		for k, av := range a.Object.All() {
			if bKeys[i] != k {
				return false
			}
			if !equal(av, b.Object.Get(k), numEq) {
				return false
			}
			i++
		}
		return true
	}
	return false
}
