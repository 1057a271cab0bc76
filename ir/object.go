package ir

import "iter"

// Object is a string keyed mapping which preserves first insertion order.
type Object struct {
	keys   []string
	values []*Value
	index  map[string]int
}

func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

func (o *Object) Get(key string) *Value {
	if o == nil {
		return nil
	}
	i, ok := o.index[key]
	if !ok {
		return nil
	}
	return o.values[i]
}

func (o *Object) Has(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.index[key]
	return ok
}

// Set stores v under key.  An existing key keeps its position.
func (o *Object) Set(key string, v *Value) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Insert stores v under key unless key is already present, reporting
// whether it did.
func (o *Object) Insert(key string, v *Value) bool {
	if _, ok := o.index[key]; ok {
		return false
	}
	o.Set(key, v)
	return true
}

func (o *Object) Delete(key string) bool {
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.keys); j++ {
		o.index[o.keys[j]] = j
	}
	return true
}

func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return append([]string(nil), o.keys...)
}

// All iterates the entries in insertion order.
func (o *Object) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		if o == nil {
			return
		}
		for i, k := range o.keys {
			if !yield(k, o.values[i]) {
				return
			}
		}
	}
}

func (o *Object) Clone() *Object {
	res := NewObject()
	for k, v := range o.All() {
		res.Set(k, v.Clone())
	}
	return res
}
