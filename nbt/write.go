package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// EncodeError describes a structurally invalid tree: an empty list, an End
// tag in value position, or a name/string too long for its u16 length
// prefix. Encoding never fails for any other reason.
type EncodeError struct {
	Reason string
}

func (e *EncodeError) Error() string {
	return "nbt: " + e.Reason
}

// Encode serializes a document: the root compound is written as one full
// id + name + payload entry, using the document's name. Compound entries
// are emitted in sorted key order, so the same logical tree always
// produces identical bytes.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, &EncodeError{Reason: "cannot encode nil document"}
	}
	if doc.Root.Type() != TypeCompound {
		return nil, &EncodeError{Reason: fmt.Sprintf("document root must be a compound, got %s", doc.Root.Type())}
	}
	w := &writer{}
	if err := w.writeTag(doc.Root, true, true, doc.Name); err != nil {
		return nil, err
	}
	return w.buf, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (d *Document) MarshalBinary() ([]byte, error) {
	return Encode(d)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Document) UnmarshalBinary(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// writer accumulates output. One writer exclusively owns its buffer for
// the duration of one Encode call.
type writer struct {
	buf []byte
}

func (w *writer) u8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *writer) i32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *writer) i64(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

// name writes the u16 length prefix followed by the UTF-8 bytes. Names and
// string payloads share this framing; an empty string is a zero length
// with no bytes after it.
func (w *writer) name(s string) error {
	if len(s) > math.MaxUint16 {
		return &EncodeError{Reason: fmt.Sprintf("string of %d bytes exceeds u16 length prefix", len(s))}
	}
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// writeTag serializes one tag. The document envelope writes id and name,
// nested compound entries write both, list elements write neither.
func (w *writer) writeTag(tag *Tag, writeID, writeName bool, name string) error {
	if tag == nil {
		return &EncodeError{Reason: "cannot encode nil tag"}
	}
	if !tag.typ.isValue() {
		return &EncodeError{Reason: fmt.Sprintf("cannot encode %s tag as a value", tag.typ)}
	}

	if writeID {
		w.u8(byte(tag.typ))
	}
	if writeName {
		if err := w.name(name); err != nil {
			return err
		}
	}

	switch tag.typ {
	case TypeByte:
		w.u8(byte(tag.byteVal))

	case TypeShort:
		w.u16(uint16(tag.shortVal))

	case TypeInt:
		w.i32(tag.intVal)

	case TypeLong:
		w.i64(tag.longVal)

	case TypeFloat:
		w.i32(int32(math.Float32bits(tag.floatVal)))

	case TypeDouble:
		w.i64(int64(math.Float64bits(tag.doubleVal)))

	case TypeByteArray:
		w.i32(int32(len(tag.byteArr)))
		for _, v := range tag.byteArr {
			w.u8(byte(v))
		}

	case TypeString:
		if err := w.name(tag.strVal); err != nil {
			return err
		}

	case TypeList:
		return w.writeList(tag)

	case TypeCompound:
		return w.writeCompound(tag)

	case TypeIntArray:
		w.i32(int32(len(tag.intArr)))
		for _, v := range tag.intArr {
			w.i32(v)
		}

	case TypeLongArray:
		w.i32(int32(len(tag.longArr)))
		for _, v := range tag.longArr {
			w.i64(v)
		}
	}
	return nil
}

// writeList writes element id, count, then each element as a bare payload.
// The element type is recorded once, taken from the first element, so an
// empty list has no encoding; a mixed-type list would decode as garbage
// and is rejected here.
func (w *writer) writeList(tag *Tag) error {
	if len(tag.listVal) == 0 {
		return &EncodeError{Reason: "cannot encode empty list: element type is undeterminable"}
	}
	elemType := tag.listVal[0].Type()
	w.u8(byte(elemType))
	w.i32(int32(len(tag.listVal)))
	for i, elem := range tag.listVal {
		if elem.Type() != elemType {
			return &EncodeError{Reason: fmt.Sprintf("list element %d is %s, list is %s", i, elem.Type(), elemType)}
		}
		if err := w.writeTag(elem, false, false, ""); err != nil {
			return err
		}
	}
	return nil
}

// writeCompound writes each entry as a full id + name + payload tag,
// terminated by a single 0x00 byte. Entry order on the wire is not
// significant, so keys are sorted for deterministic output.
func (w *writer) writeCompound(tag *Tag) error {
	keys := make([]string, 0, len(tag.compoundVal))
	for k := range tag.compoundVal {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.writeTag(tag.compoundVal[k], true, true, k); err != nil {
			return err
		}
	}
	w.u8(byte(TypeEnd))
	return nil
}
