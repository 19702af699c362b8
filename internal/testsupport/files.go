package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"placing/internal/streamio"
)

// WriteLines writes lines, each terminated by "\n", to dir/name and returns
// the full path. The codec selects the compression applied to the file.
func WriteLines(t testing.TB, dir, name string, codec streamio.Codec, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	var body string
	if len(lines) > 0 {
		body = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, Compress(t, codec, []byte(body)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Compress encodes data with the given codec. Plain returns data unchanged.
func Compress(t testing.TB, codec streamio.Codec, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	switch codec {
	case streamio.CodecPlain:
		return data
	case streamio.CodecGzip:
		w = gzip.NewWriter(&buf)
	case streamio.CodecZstd:
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		w = enc
	case streamio.CodecLZ4:
		w = lz4.NewWriter(&buf)
	default:
		t.Fatalf("no test writer for codec %q", codec)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("compress %s: %v", codec, err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close %s writer: %v", codec, err)
	}
	return buf.Bytes()
}

// ReadLines returns the lines of a plain text file without terminators.
func ReadLines(t testing.TB, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
