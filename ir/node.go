package ir

// Value is a node of the shared document tree.  The Type field selects
// which of the remaining fields is meaningful.
type Value struct {
	Type Type

	Bool     bool
	Number   float64
	String   string
	Array    []*Value
	Object   *Object
	Datetime *Datetime
}

func Null() *Value {
	return &Value{Type: NullType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromNumber(f float64) *Value {
	return &Value{Type: NumberType, Number: f}
}

func FromInt(i int64) *Value {
	return FromNumber(float64(i))
}

func FromString(v string) *Value {
	return &Value{Type: StringType, String: v}
}

func FromSlice(vs []*Value) *Value {
	if vs == nil {
		vs = []*Value{}
	}
	return &Value{Type: ArrayType, Array: vs}
}

func FromObject(o *Object) *Value {
	if o == nil {
		o = NewObject()
	}
	return &Value{Type: ObjectType, Object: o}
}

func FromDatetime(d Datetime) *Value {
	return &Value{Type: DatetimeType, Datetime: &d}
}

// FromKeyVals builds an object from alternating keys and values, later
// keys overwriting earlier ones.
func FromKeyVals(kvs ...KeyVal) *Value {
	o := NewObject()
	for _, kv := range kvs {
		o.Set(kv.Key, kv.Val)
	}
	return FromObject(o)
}

type KeyVal struct {
	Key string
	Val *Value
}

func (v *Value) IsNull() bool {
	return v == nil || v.Type == NullType
}

// Get returns the value under key if v is an object.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Type != ObjectType {
		return nil
	}
	return v.Object.Get(key)
}

// Index returns the i'th element if v is an array.
func (v *Value) Index(i int) *Value {
	if v == nil || v.Type != ArrayType || i < 0 || i >= len(v.Array) {
		return nil
	}
	return v.Array[i]
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := *v
	switch v.Type {
	case ArrayType:
		res.Array = make([]*Value, len(v.Array))
		for i, e := range v.Array {
			res.Array[i] = e.Clone()
		}
	case ObjectType:
		res.Object = v.Object.Clone()
	case DatetimeType:
		d := *v.Datetime
		res.Datetime = &d
	}
	return &res
}

// Visit walks v depth first, calling f before (isPost false) and after
// (isPost true) the children of each value.  Children are visited only
// when the pre call returns true.
func (v *Value) Visit(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		switch v.Type {
		case ArrayType:
			for _, e := range v.Array {
				if err := e.Visit(f); err != nil {
					return err
				}
			}
		case ObjectType:
			for _, e := range v.Object.All() {
				if err := e.Visit(f); err != nil {
					return err
				}
			}
		}
	}
	_, err = f(v, true)
	return err
}

// Depth returns the container nesting depth of v: 0 for a leaf, 1 for a
// container of leaves.
func (v *Value) Depth() int {
	d := 0
	switch v.Type {
	case ArrayType:
		for _, e := range v.Array {
			d = max(d, e.Depth())
		}
	case ObjectType:
		for _, e := range v.Object.All() {
			d = max(d, e.Depth())
		}
	default:
		return 0
	}
	return d + 1
}
