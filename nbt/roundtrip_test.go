package nbt

import (
	"math"
	"testing"
)

// fullDocument builds a tree exercising every value variant, nesting, and
// awkward scalar values (negatives, extremes, NaN).
func fullDocument() *Document {
	return &Document{
		Name: "level",
		Root: Compound(map[string]*Tag{
			"byte":       Byte(-128),
			"short":      Short(-32768),
			"int":        Int(-2147483648),
			"long":       Long(math.MinInt64),
			"float":      Float(float32(math.Pi)),
			"double":     Double(-2.5e300),
			"nan":        Double(math.NaN()),
			"string":     Str("héllo wörld ✓"),
			"empty_str":  Str(""),
			"byte_array": ByteArray([]int8{-1, 0, 1, 127, -128}),
			"int_array":  IntArray([]int32{1, -2, 2147483647}),
			"long_array": LongArray([]int64{math.MaxInt64, math.MinInt64, 0}),
			"ints":       List(Int(1), Int(2), Int(3)),
			"nested": Compound(map[string]*Tag{
				"inner": Compound(map[string]*Tag{
					"deep": Str("value"),
				}),
				"empty": Compound(nil),
			}),
			"compound_list": List(
				Compound(map[string]*Tag{"id": Int(1)}),
				Compound(map[string]*Tag{"id": Int(2)}),
			),
			"list_of_lists": List(
				List(Byte(1)),
				List(Byte(2), Byte(3)),
			),
		}),
	}
}

func TestRoundTrip_FullDocument(t *testing.T) {
	doc := fullDocument()

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !back.Equal(doc) {
		t.Error("round trip changed the document")
	}

	// Re-encoding the decoded tree must reproduce the bytes exactly.
	data2, err := Encode(back)
	if err != nil {
		t.Fatalf("re-Encode failed: %v", err)
	}
	if string(data) != string(data2) {
		t.Error("re-encoded bytes differ")
	}
}

func TestRoundTrip_PayloadBijection(t *testing.T) {
	// For every variant, the bare payload written without id or name must
	// decode back to an equal tag via the id-dispatched payload rule.
	tags := []*Tag{
		Byte(42),
		Short(-300),
		Int(123456789),
		Long(-987654321012345),
		Float(1.5),
		Double(math.Inf(-1)),
		ByteArray([]int8{5}),
		Str("bijection"),
		List(Str("a"), Str("b")),
		Compound(map[string]*Tag{"k": Long(9)}),
		IntArray([]int32{7, 8}),
		LongArray([]int64{-9}),
	}

	for _, tag := range tags {
		t.Run(tag.Type().String(), func(t *testing.T) {
			w := &writer{}
			if err := w.writeTag(tag, false, false, ""); err != nil {
				t.Fatalf("write payload: %v", err)
			}
			r := &reader{data: w.buf}
			got, err := r.readPayload(tag.Type())
			if err != nil {
				t.Fatalf("read payload: %v", err)
			}
			if !got.Equal(tag) {
				t.Error("payload round trip changed the tag")
			}
			if r.pos != len(w.buf) {
				t.Errorf("unconsumed payload bytes: %d", len(w.buf)-r.pos)
			}
		})
	}
}

func TestRoundTrip_TruncationSweep(t *testing.T) {
	// Chopping any amount off the end of a rich document must always
	// surface as a truncation error.
	data, err := Encode(fullDocument())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	for i := 0; i < len(data); i++ {
		if _, err := Decode(data[:i]); !isDecodeKind(err, ErrTruncated) {
			t.Fatalf("prefix of %d bytes: got %v, want truncation error", i, err)
		}
	}
}
