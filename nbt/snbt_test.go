package nbt

import (
	"math"
	"testing"
)

func TestEmit_Scalars(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
		want string
	}{
		{"byte", Byte(-5), "-5b"},
		{"short", Short(300), "300s"},
		{"int", Int(42), "42"},
		{"long", Long(-7), "-7L"},
		{"float", Float(1.5), "1.5f"},
		{"float integral", Float(2), "2.0f"},
		{"double", Double(0.25), "0.25d"},
		{"double nan", Double(math.NaN()), "NaNd"},
		{"double inf", Double(math.Inf(1)), "Infinityd"},
		{"string", Str("hi"), `"hi"`},
		{"string escapes", Str(`say "hi" \ bye`), `"say \"hi\" \\ bye"`},
		{"byte array", ByteArray([]int8{1, -2}), "[B;1b,-2b]"},
		{"int array", IntArray([]int32{3, 4}), "[I;3,4]"},
		{"long array", LongArray([]int64{5}), "[L;5L]"},
		{"list", List(Int(1), Int(2)), "[1,2]"},
		{"empty compound", Compound(nil), "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Emit(tt.tag); got != tt.want {
				t.Errorf("Emit: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEmit_CompoundSorted(t *testing.T) {
	tag := Compound(map[string]*Tag{
		"zed":      Int(1),
		"alpha":    Str("x"),
		"weird k!": Byte(0),
	})

	want := `{alpha:"x","weird k!":0b,zed:1}`
	if got := Emit(tag); got != want {
		t.Errorf("Emit: got %s, want %s", got, want)
	}
}

func TestEmit_Pretty(t *testing.T) {
	tag := Compound(map[string]*Tag{
		"list": List(Int(1), Int(2)),
	})

	want := "{\n  list: [\n    1,\n    2\n  ]\n}"
	got := EmitWithOptions(tag, EmitOptions{Pretty: true, Indent: "  ", SortKeys: true})
	if got != want {
		t.Errorf("Emit pretty:\n  got:  %q\n  want: %q", got, want)
	}
}

func TestEmit_Nested(t *testing.T) {
	tag := Compound(map[string]*Tag{
		"pos": Compound(map[string]*Tag{
			"x": Double(1.5),
			"y": Double(-2.5),
		}),
	})

	want := `{pos:{x:1.5d,y:-2.5d}}`
	if got := Emit(tag); got != want {
		t.Errorf("Emit: got %s, want %s", got, want)
	}
}
