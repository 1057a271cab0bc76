package encode

import (
	"github.com/fatih/color"
	"github.com/signadot/zparse/ir"
)

// ColorAttr is the part of the output being colored.
type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

// Colorable keys a Colors palette.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

// Colors maps (type, attr) pairs to colorizing functions; pairs absent
// from Map are left plain.
type Colors struct {
	Map map[Colorable]func(string) string
}

var palette = []struct {
	able Colorable
	c    *color.Color
}{
	{Colorable{ir.NumberType, ValueColor}, color.RGB(128, 216, 236)},
	{Colorable{ir.NullType, ValueColor}, color.RGB(168, 0, 196)},
	{Colorable{ir.BoolType, ValueColor}, color.New(color.FgCyan)},
	{Colorable{ir.DatetimeType, ValueColor}, color.RGB(198, 198, 46)},
	{Colorable{ir.StringType, ValueColor}, color.RGB(8, 196, 16)},
	{Colorable{ir.ObjectType, FieldColor}, color.RGB(128, 168, 196)},
	{Colorable{ir.ObjectType, SepColor}, color.RGB(196, 128, 128)},
	{Colorable{ir.ArrayType, SepColor}, color.RGB(255, 0, 196)},
}

// NewColors returns the terminal palette used by the zparse command.
// Whether escapes are emitted at all is up to color.NoColor.
func NewColors() *Colors {
	colors := &Colors{Map: make(map[Colorable]func(string) string, len(palette))}
	for _, p := range palette {
		sprint := p.c.SprintFunc()
		colors.Map[p.able] = func(s string) string { return sprint(s) }
	}
	return colors
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	if f := c.Map[Colorable{Type: t, Attr: a}]; f != nil {
		return f(s)
	}
	return s
}
