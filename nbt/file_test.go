package nbt

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Compression
	}{
		{"gzip magic", []byte{0x1f, 0x8b, 0x08}, CompressionGzip},
		{"zlib magic", []byte{0x78, 0x9c}, CompressionZlib},
		{"raw document", []byte{0x0A, 0x00, 0x00, 0x00}, CompressionNone},
		{"empty", nil, CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompression(tt.data); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want Compression
		ok   bool
	}{
		{"none", CompressionNone, true},
		{"gzip", CompressionGzip, true},
		{"gz", CompressionGzip, true},
		{"zlib", CompressionZlib, true},
		{"lz4", CompressionNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseCompression(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCompression(%q): got %s/%v, want %s/%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestReadWrite_Containers(t *testing.T) {
	doc := fullDocument()

	for _, comp := range []Compression{CompressionNone, CompressionGzip, CompressionZlib} {
		t.Run(comp.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, doc, comp); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			if got := DetectCompression(buf.Bytes()); got != comp {
				t.Errorf("container sniff: got %s, want %s", got, comp)
			}

			back, err := Read(&buf)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if !back.Equal(doc) {
				t.Error("container round trip changed the document")
			}
		})
	}
}

func TestRead_TrailingBytesTolerated(t *testing.T) {
	// The file shim stops at the end of the document; padding after it is
	// not an error there, unlike strict Decode.
	data := append(append([]byte{}, helloDoc...), 0x00, 0x00, 0x00)

	doc, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if doc.Name != "e" {
		t.Errorf("document name: got %q, want %q", doc.Name, "e")
	}
}

func TestReadWriteFile(t *testing.T) {
	doc := &Document{
		Name: "save",
		Root: Compound(map[string]*Tag{
			"seed": Long(42),
			"name": Str("world"),
		}),
	}

	path := filepath.Join(t.TempDir(), "level.dat")
	if err := WriteFile(path, doc, CompressionGzip); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !back.Equal(doc) {
		t.Error("file round trip changed the document")
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.dat")); err == nil {
		t.Error("ReadFile of a missing path must fail")
	}
}

func TestRead_CorruptGzip(t *testing.T) {
	data := []byte{0x1f, 0x8b, 0xFF, 0x00, 0x01}
	if _, err := Read(bytes.NewReader(data)); err == nil {
		t.Error("Read of a corrupt gzip stream must fail")
	}
}
