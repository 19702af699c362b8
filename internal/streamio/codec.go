package streamio

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec names the compression format of an input stream.
type Codec string

const (
	CodecPlain Codec = "plain"
	CodecBzip2 Codec = "bzip2"
	CodecGzip  Codec = "gzip"
	CodecZstd  Codec = "zstd"
	CodecLZ4   Codec = "lz4"
)

var (
	magicBzip2 = []byte("BZh")
	magicGzip  = []byte{0x1f, 0x8b}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4   = []byte{0x04, 0x22, 0x4d, 0x18}
)

// magicLen is the number of leading bytes needed to tell every codec apart.
const magicLen = 4

// DetectCodec identifies the codec from the first bytes of a stream.
func DetectCodec(header []byte) Codec {
	switch {
	case bytes.HasPrefix(header, magicZstd):
		return CodecZstd
	case bytes.HasPrefix(header, magicLZ4):
		return CodecLZ4
	case bytes.HasPrefix(header, magicGzip):
		return CodecGzip
	case len(header) >= 4 && bytes.HasPrefix(header, magicBzip2) && header[3] >= '1' && header[3] <= '9':
		return CodecBzip2
	default:
		return CodecPlain
	}
}

// decompress wraps r in the decoder for codec. The returned closer releases
// decoder resources; it does not close r.
func decompress(codec Codec, r io.Reader) (io.Reader, func() error, error) {
	noop := func() error { return nil }
	switch codec {
	case CodecPlain:
		return r, noop, nil
	case CodecBzip2:
		return bzip2.NewReader(r), noop, nil
	case CodecGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, zr.Close, nil
	case CodecZstd:
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, func() error { zr.Close(); return nil }, nil
	case CodecLZ4:
		return lz4.NewReader(r), noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported codec %q", codec)
	}
}
