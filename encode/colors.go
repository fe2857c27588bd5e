package encode

import (
	"strings"

	"github.com/fatih/color"
)

// ValueKind classifies a document node for coloring.
type ValueKind int

const (
	NullValue ValueKind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

func ValueKinds() []ValueKind {
	return []ValueKind{NullValue, BoolValue, NumberValue, StringValue, ArrayValue, ObjectValue}
}

type Colorable struct {
	Kind ValueKind
	Attr ColorAttr
}

type ColorAttr int

const (
	FieldColor ColorAttr = iota
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range ValueKinds() {
		colors.Map[Colorable{Kind: k, Attr: SepColor}] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = NumberValue
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = NullValue
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = BoolValue
	colors.Map[able] = color.CyanString

	able.Kind = ObjectValue
	able.Attr = FieldColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	able.Attr = SepColor
	colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()

	able.Kind = StringValue
	able.Attr = ValueColor
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k ValueKind, a ColorAttr, s string) string {
	res := c.Get(k, a)(s)
	return res
}

func (c *Colors) Get(k ValueKind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
