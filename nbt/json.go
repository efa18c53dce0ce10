package nbt

import (
	"encoding/json"
	"math"
	"strconv"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// One-way conversion from a tag tree to JSON for tooling interchange.
// The mapping is lossy: the numeric widths collapse to JSON numbers, so
// decoding the JSON back would not recover the original tag types.

// ToJSON renders a tag as JSON bytes. Compounds become objects, lists and
// arrays become arrays, scalars become numbers and strings. Non-finite
// floats have no JSON literal and become their SNBT constant names as
// strings ("NaN", "Infinity", "-Infinity").
func ToJSON(t *Tag) ([]byte, error) {
	return json.Marshal(toJSONValue(t))
}

// ToJSONIndent renders a tag as indented JSON bytes.
func ToJSONIndent(t *Tag, indent string) ([]byte, error) {
	return json.MarshalIndent(toJSONValue(t), "", indent)
}

// DocumentToJSON renders a document as a single-key object mapping the
// document name to the root compound.
func DocumentToJSON(doc *Document) ([]byte, error) {
	return json.Marshal(map[string]any{doc.Name: toJSONValue(doc.Root)})
}

func toJSONValue(t *Tag) any {
	if t == nil {
		return nil
	}

	switch t.typ {
	case TypeByte:
		return t.byteVal
	case TypeShort:
		return t.shortVal
	case TypeInt:
		return t.intVal
	case TypeLong:
		return t.longVal
	case TypeFloat:
		return jsonFloat(float64(t.floatVal), 32)
	case TypeDouble:
		return jsonFloat(t.doubleVal, 64)
	case TypeString:
		return t.strVal
	case TypeByteArray:
		return t.byteArr
	case TypeIntArray:
		return t.intArr
	case TypeLongArray:
		return t.longArr
	case TypeList:
		items := make([]any, len(t.listVal))
		for i, elem := range t.listVal {
			items[i] = toJSONValue(elem)
		}
		return items
	case TypeCompound:
		obj := make(map[string]any, len(t.compoundVal))
		for k, v := range t.compoundVal {
			obj[k] = toJSONValue(v)
		}
		return obj
	default:
		return nil
	}
}

func jsonFloat(v float64, bits int) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if bits == 32 {
		// Re-narrow so 0.1f renders as 0.1, not the float64 widening.
		s := strconv.FormatFloat(v, 'g', -1, 32)
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	return v
}
