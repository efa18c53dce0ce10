package nbt

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies the whole-stream container around a serialized
// document. The tag format itself is uncompressed; files on disk are
// conventionally gzip, and embedded chunk payloads zlib.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name.
func ParseCompression(s string) (Compression, bool) {
	switch s {
	case "none", "raw":
		return CompressionNone, true
	case "gzip", "gz":
		return CompressionGzip, true
	case "zlib":
		return CompressionZlib, true
	default:
		return CompressionNone, false
	}
}

// DetectCompression sniffs the container from leading magic bytes: 1f 8b
// for gzip, 78 for zlib. An uncompressed document always starts with 0x0a
// (the compound type id), which collides with neither.
func DetectCompression(data []byte) Compression {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return CompressionGzip
	}
	if len(data) >= 1 && data[0] == 0x78 {
		return CompressionZlib
	}
	return CompressionNone
}

// Read reads one whole stream from r, decompresses it if the leading
// bytes identify a gzip or zlib container, and decodes the document.
// Bytes after the document are ignored: files in the wild carry padding,
// and the document is self-delimiting. Use Decode for strict parsing.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("nbt: read stream: %w", err)
	}

	switch DetectCompression(data) {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: open gzip stream: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("nbt: decompress gzip stream: %w", err)
		}
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("nbt: open zlib stream: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("nbt: decompress zlib stream: %w", err)
		}
	}

	doc, _, err := DecodeFirst(data)
	return doc, err
}

// ReadFile reads and decodes the document stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nbt: open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("nbt: read %s: %w", path, err)
	}
	return doc, nil
}

// Write encodes doc and writes it to w inside the requested container.
func Write(w io.Writer, doc *Document, c Compression) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	switch c {
	case CompressionNone:
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("nbt: write stream: %w", err)
		}
		return nil
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return fmt.Errorf("nbt: write gzip stream: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("nbt: flush gzip stream: %w", err)
		}
		return nil
	case CompressionZlib:
		zw := zlib.NewWriter(w)
		if _, err := zw.Write(data); err != nil {
			zw.Close()
			return fmt.Errorf("nbt: write zlib stream: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("nbt: flush zlib stream: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("nbt: unknown compression %d", uint8(c))
	}
}

// WriteFile encodes doc and writes it to path, replacing any existing
// file.
func WriteFile(path string, doc *Document, c Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("nbt: create %s: %w", path, err)
	}

	if err := Write(f, doc, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("nbt: close %s: %w", path, err)
	}
	return nil
}
