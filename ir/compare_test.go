package ir

import (
	"math"
	"testing"
)

func TestEqual(t *testing.T) {
	obj := func(kvs ...KeyVal) *Value { return FromKeyVals(kvs...) }
	tests := []struct {
		name string
		a, b *Value
		want bool
	}{
		{"null", Null(), Null(), true},
		{"bool", FromBool(true), FromBool(false), false},
		{"number", FromNumber(1), FromInt(1), true},
		{"nan", FromNumber(math.NaN()), FromNumber(math.NaN()), true},
		{"type mismatch", FromString("1"), FromNumber(1), false},
		{"array", FromSlice([]*Value{FromInt(1)}), FromSlice([]*Value{FromInt(1)}), true},
		{"array len", FromSlice(nil), FromSlice([]*Value{Null()}), false},
		{"object", obj(KeyVal{"a", FromInt(1)}), obj(KeyVal{"a", FromInt(1)}), true},
		{"object order", obj(KeyVal{"a", Null()}, KeyVal{"b", Null()}), obj(KeyVal{"b", Null()}, KeyVal{"a", Null()}), false},
		{"object value", obj(KeyVal{"a", FromInt(1)}), obj(KeyVal{"a", FromInt(2)}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualApprox(t *testing.T) {
	x, y := 0.1, 0.2
	a := FromSlice([]*Value{FromNumber(x + y)})
	b := FromSlice([]*Value{FromNumber(0.3)})
	if Equal(a, b) {
		t.Errorf("exact equal should fail")
	}
	if !EqualApprox(a, b, 1e-9) {
		t.Errorf("approx equal should succeed")
	}
}

func TestObjectOrder(t *testing.T) {
	o := NewObject()
	o.Set("b", FromInt(1))
	o.Set("a", FromInt(2))
	o.Set("b", FromInt(3))
	if got := o.Keys(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("keys: %v", got)
	}
	if o.Get("b").Number != 3 {
		t.Errorf("overwrite in place failed")
	}
	if o.Insert("a", Null()) {
		t.Errorf("insert of existing key succeeded")
	}
	if !o.Insert("c", Null()) {
		t.Errorf("insert of new key failed")
	}
	if !o.Delete("b") || o.Has("b") || o.Len() != 2 {
		t.Errorf("delete failed")
	}
	if got := o.Keys(); got[0] != "a" || got[1] != "c" {
		t.Errorf("keys after delete: %v", got)
	}
	o.Set("b", Null())
	if got := o.Keys(); got[2] != "b" {
		t.Errorf("reinsert position: %v", got)
	}
}

func TestDepth(t *testing.T) {
	v := FromSlice([]*Value{FromSlice([]*Value{FromInt(1)}), FromInt(2)})
	if d := v.Depth(); d != 2 {
		t.Errorf("depth %d", d)
	}
	if d := FromInt(1).Depth(); d != 0 {
		t.Errorf("leaf depth %d", d)
	}
}

func TestInterfaceRoundTrip(t *testing.T) {
	v := FromKeyVals(
		KeyVal{"a", FromSlice([]*Value{FromInt(1), FromBool(true), Null()})},
		KeyVal{"b", FromString("x")},
	)
	back, err := FromInterface(v.Interface())
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(v, back) {
		t.Errorf("round trip mismatch")
	}
	if _, err := FromInterface(struct{}{}); err == nil {
		t.Errorf("expected error for struct")
	}
}

func TestTypeText(t *testing.T) {
	for _, typ := range Types() {
		d, err := typ.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Type
		if err := back.UnmarshalText(d); err != nil {
			t.Fatal(err)
		}
		if back != typ {
			t.Errorf("%s came back as %s", typ, back)
		}
		if typ.IsLeaf() == (typ == ArrayType || typ == ObjectType) {
			t.Errorf("%s: IsLeaf %v", typ, typ.IsLeaf())
		}
	}
	var bad Type
	if err := bad.UnmarshalText([]byte("Map")); err == nil {
		t.Error("expected error for Map")
	}
}
