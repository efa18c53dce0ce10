package nbt

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// EmitOptions configures the SNBT emitter.
type EmitOptions struct {
	// Pretty adds newlines and indentation for readability
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string

	// SortKeys sorts compound keys alphabetically (for canonical output)
	SortKeys bool
}

// DefaultEmitOptions returns sensible defaults.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		Pretty:   false,
		Indent:   "  ",
		SortKeys: true,
	}
}

// Emit renders a tag as SNBT (stringified NBT) text. This is a one-way
// diagnostic notation; there is no SNBT parser here.
func Emit(t *Tag) string {
	return EmitWithOptions(t, DefaultEmitOptions())
}

// EmitWithOptions renders a tag with custom options.
func EmitWithOptions(t *Tag, opts EmitOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	e := &emitter{opts: opts}
	e.emit(t, 0)
	return e.sb.String()
}

type emitter struct {
	sb   strings.Builder
	opts EmitOptions
}

func (e *emitter) emit(t *Tag, depth int) {
	if t == nil {
		e.sb.WriteString("<nil>")
		return
	}

	switch t.typ {
	case TypeByte:
		e.sb.WriteString(strconv.FormatInt(int64(t.byteVal), 10))
		e.sb.WriteByte('b')

	case TypeShort:
		e.sb.WriteString(strconv.FormatInt(int64(t.shortVal), 10))
		e.sb.WriteByte('s')

	case TypeInt:
		e.sb.WriteString(strconv.FormatInt(int64(t.intVal), 10))

	case TypeLong:
		e.sb.WriteString(strconv.FormatInt(t.longVal, 10))
		e.sb.WriteByte('L')

	case TypeFloat:
		e.emitFloat(float64(t.floatVal), 32)
		e.sb.WriteByte('f')

	case TypeDouble:
		e.emitFloat(t.doubleVal, 64)
		e.sb.WriteByte('d')

	case TypeString:
		e.emitString(t.strVal)

	case TypeByteArray:
		e.sb.WriteString("[B;")
		for i, v := range t.byteArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(v), 10))
			e.sb.WriteByte('b')
		}
		e.sb.WriteByte(']')

	case TypeIntArray:
		e.sb.WriteString("[I;")
		for i, v := range t.intArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(int64(v), 10))
		}
		e.sb.WriteByte(']')

	case TypeLongArray:
		e.sb.WriteString("[L;")
		for i, v := range t.longArr {
			if i > 0 {
				e.sb.WriteByte(',')
			}
			e.sb.WriteString(strconv.FormatInt(v, 10))
			e.sb.WriteByte('L')
		}
		e.sb.WriteByte(']')

	case TypeList:
		e.emitList(t, depth)

	case TypeCompound:
		e.emitCompound(t, depth)
	}
}

func (e *emitter) emitList(t *Tag, depth int) {
	if len(t.listVal) == 0 {
		e.sb.WriteString("[]")
		return
	}
	e.sb.WriteByte('[')
	for i, elem := range t.listVal {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		if e.opts.Pretty {
			e.newline(depth + 1)
		}
		e.emit(elem, depth+1)
	}
	if e.opts.Pretty {
		e.newline(depth)
	}
	e.sb.WriteByte(']')
}

func (e *emitter) emitCompound(t *Tag, depth int) {
	if len(t.compoundVal) == 0 {
		e.sb.WriteString("{}")
		return
	}

	keys := make([]string, 0, len(t.compoundVal))
	for k := range t.compoundVal {
		keys = append(keys, k)
	}
	if e.opts.SortKeys {
		sort.Strings(keys)
	}

	e.sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.sb.WriteByte(',')
		}
		if e.opts.Pretty {
			e.newline(depth + 1)
		}
		e.emitKey(k)
		e.sb.WriteByte(':')
		if e.opts.Pretty {
			e.sb.WriteByte(' ')
		}
		e.emit(t.compoundVal[k], depth+1)
	}
	if e.opts.Pretty {
		e.newline(depth)
	}
	e.sb.WriteByte('}')
}

func (e *emitter) newline(depth int) {
	e.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}

// emitKey writes a compound key, bare when it is SNBT-safe.
func (e *emitter) emitKey(k string) {
	if isBareKey(k) {
		e.sb.WriteString(k)
		return
	}
	e.emitString(k)
}

func isBareKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.' || c == '+':
		default:
			return false
		}
	}
	return true
}

func (e *emitter) emitString(s string) {
	e.sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			e.sb.WriteString(`\"`)
		case '\\':
			e.sb.WriteString(`\\`)
		default:
			e.sb.WriteByte(c)
		}
	}
	e.sb.WriteByte('"')
}

// emitFloat formats finite values with minimal digits. Non-finite values
// have no SNBT literal, so they render as named constants.
func (e *emitter) emitFloat(v float64, bits int) {
	switch {
	case math.IsNaN(v):
		e.sb.WriteString("NaN")
	case math.IsInf(v, 1):
		e.sb.WriteString("Infinity")
	case math.IsInf(v, -1):
		e.sb.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(v, 'g', -1, bits)
		e.sb.WriteString(s)
		// A bare integer mantissa still needs to read as a float.
		if !strings.ContainsAny(s, ".eE") {
			e.sb.WriteString(".0")
		}
	}
}
