package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// ErrorKind classifies a decode failure.
type ErrorKind uint8

const (
	// ErrTruncated: fewer bytes remain than a fixed-width field, length
	// prefix, or declared count requires.
	ErrTruncated ErrorKind = iota
	// ErrMalformedText: name or string bytes are not valid UTF-8.
	ErrMalformedText
	// ErrUnknownType: a type-id byte outside 1-12 where a value is expected.
	ErrUnknownType
	// ErrStructural: a list or array declared with count < 1, or a root tag
	// that is not a compound.
	ErrStructural
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrTruncated:
		return "truncated"
	case ErrMalformedText:
		return "malformed text"
	case ErrUnknownType:
		return "unknown type id"
	case ErrStructural:
		return "structural"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// DecodeError describes why a decode failed. Offset is the byte position
// at which the offending field begins.
type DecodeError struct {
	Kind   ErrorKind
	Offset int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbt: %s at offset %d: %s", e.Kind, e.Offset, e.Reason)
}

// Decode parses data as one complete NBT document. The root tag must be a
// compound; trailing bytes after the document are an error. A failing
// decode returns no partial tree, only the error.
func Decode(data []byte) (*Document, error) {
	doc, rest, err := DecodeFirst(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, &DecodeError{
			Kind:   ErrStructural,
			Offset: len(data) - len(rest),
			Reason: fmt.Sprintf("%d trailing bytes after document", len(rest)),
		}
	}
	return doc, nil
}

// DecodeFirst parses the first NBT document in data and returns the
// unconsumed remainder. Use this to process concatenated documents one at
// a time.
func DecodeFirst(data []byte) (*Document, []byte, error) {
	r := &reader{data: data}

	start := r.pos
	name, tag, err := r.readNamed()
	if err != nil {
		return nil, nil, err
	}
	if tag.Type() != TypeCompound {
		return nil, nil, &DecodeError{
			Kind:   ErrStructural,
			Offset: start,
			Reason: fmt.Sprintf("root tag must be a compound, got %s", tag.Type()),
		}
	}
	return &Document{Name: name, Root: tag}, data[r.pos:], nil
}

// reader is a cursor over the input buffer. All reads advance pos; every
// read checks remaining length first so truncation is always reported at
// the field where it happens.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) fail(kind ErrorKind, offset int, format string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// take returns the next n bytes, or a truncation error naming the field.
func (r *reader) take(n int, what string) ([]byte, error) {
	if n > len(r.data)-r.pos {
		return nil, r.fail(ErrTruncated, r.pos, "%s needs %d bytes, %d remain", what, n, len(r.data)-r.pos)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) u8(what string) (byte, error) {
	b, err := r.take(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(what string) (uint16, error) {
	b, err := r.take(2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) i32(what string) (int32, error) {
	b, err := r.take(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) i64(what string) (int64, error) {
	b, err := r.take(8, what)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// name reads a u16 length prefix followed by that many UTF-8 bytes. Names
// and string payloads share this framing.
func (r *reader) name(what string) (string, error) {
	n, err := r.u16(what + " length")
	if err != nil {
		return "", err
	}
	start := r.pos
	b, err := r.take(int(n), what)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", r.fail(ErrMalformedText, start, "%s is not valid UTF-8", what)
	}
	return string(b), nil
}

// count reads an i32 element count for a list or array and rejects counts
// below one. An empty list cannot record its element type, and the format
// rejects empty numeric arrays for symmetry; an empty compound stays legal.
//
// The count is also bounded against the remaining input before any caller
// allocates: elemWidth is the minimum encoded size of one element, so a
// count needing more bytes than remain is truncation, reported here rather
// than by attempting a multi-gigabyte allocation.
func (r *reader) count(what string, elemWidth int) (int, error) {
	start := r.pos
	n, err := r.i32(what + " count")
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, r.fail(ErrStructural, start, "%s count must be >= 1, got %d", what, n)
	}
	if need := int64(n) * int64(elemWidth); need > int64(len(r.data)-r.pos) {
		return 0, r.fail(ErrTruncated, start, "%s count %d needs %d bytes, %d remain", what, n, need, len(r.data)-r.pos)
	}
	return int(n), nil
}

// readNamed parses one full tag entry: type id, name, payload. This is the
// shape of the document envelope and of every compound entry.
func (r *reader) readNamed() (string, *Tag, error) {
	idOff := r.pos
	id, err := r.u8("type id")
	if err != nil {
		return "", nil, err
	}
	typ := TagType(id)
	if !typ.isValue() {
		return "", nil, r.fail(ErrUnknownType, idOff, "type id %d is not a value tag", id)
	}
	name, err := r.name("tag name")
	if err != nil {
		return "", nil, err
	}
	tag, err := r.readPayload(typ)
	if err != nil {
		return "", nil, err
	}
	return name, tag, nil
}

// readPayload parses the payload of a tag whose type is already known.
func (r *reader) readPayload(typ TagType) (*Tag, error) {
	switch typ {
	case TypeByte:
		b, err := r.u8("byte payload")
		if err != nil {
			return nil, err
		}
		return Byte(int8(b)), nil

	case TypeShort:
		v, err := r.u16("short payload")
		if err != nil {
			return nil, err
		}
		return Short(int16(v)), nil

	case TypeInt:
		v, err := r.i32("int payload")
		if err != nil {
			return nil, err
		}
		return Int(v), nil

	case TypeLong:
		v, err := r.i64("long payload")
		if err != nil {
			return nil, err
		}
		return Long(v), nil

	case TypeFloat:
		v, err := r.i32("float payload")
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(uint32(v))), nil

	case TypeDouble:
		v, err := r.i64("double payload")
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(uint64(v))), nil

	case TypeByteArray:
		n, err := r.count("byte array", 1)
		if err != nil {
			return nil, err
		}
		b, err := r.take(n, "byte array elements")
		if err != nil {
			return nil, err
		}
		elems := make([]int8, n)
		for i, v := range b {
			elems[i] = int8(v)
		}
		return ByteArray(elems), nil

	case TypeString:
		s, err := r.name("string payload")
		if err != nil {
			return nil, err
		}
		return Str(s), nil

	case TypeList:
		return r.readList()

	case TypeCompound:
		return r.readCompound()

	case TypeIntArray:
		n, err := r.count("int array", 4)
		if err != nil {
			return nil, err
		}
		elems := make([]int32, n)
		for i := range elems {
			v, err := r.i32("int array element")
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return IntArray(elems), nil

	case TypeLongArray:
		n, err := r.count("long array", 8)
		if err != nil {
			return nil, err
		}
		elems := make([]int64, n)
		for i := range elems {
			v, err := r.i64("long array element")
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return LongArray(elems), nil

	default:
		// readNamed and readList validate ids before dispatching here.
		return nil, r.fail(ErrUnknownType, r.pos, "type id %d is not a value tag", uint8(typ))
	}
}

// readList parses a list payload: one element type id, an i32 count, then
// count bare payloads. Elements carry no per-element id or name.
func (r *reader) readList() (*Tag, error) {
	idOff := r.pos
	id, err := r.u8("list element type id")
	if err != nil {
		return nil, err
	}
	elemType := TagType(id)
	if !elemType.isValue() {
		return nil, r.fail(ErrUnknownType, idOff, "list element type id %d is not a value tag", id)
	}
	// Every list element encodes to at least one byte, so the remaining
	// input bounds the plausible count.
	n, err := r.count("list", 1)
	if err != nil {
		return nil, err
	}
	elems := make([]*Tag, n)
	for i := range elems {
		elem, err := r.readPayload(elemType)
		if err != nil {
			return nil, err
		}
		elems[i] = elem
	}
	return List(elems...), nil
}

// readCompound parses named entries until the 0x00 terminator. The
// terminator is consumed and discarded; duplicate names overwrite the
// earlier entry silently.
func (r *reader) readCompound() (*Tag, error) {
	entries := make(map[string]*Tag)
	for {
		if r.pos < len(r.data) && r.data[r.pos] == byte(TypeEnd) {
			r.pos++
			return Compound(entries), nil
		}
		name, tag, err := r.readNamed()
		if err != nil {
			return nil, err
		}
		entries[name] = tag
	}
}
