package streamio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
)

const readBufferSize = 1 << 20

// Reader is a decompressing, forward-only view of one input file.
type Reader struct {
	io.Reader
	path    string
	codec   Codec
	file    *os.File
	release func() error
	bar     *progressbar.ProgressBar
}

// Option customizes Open.
type Option func(*openOptions)

type openOptions struct {
	progress io.Writer
}

// WithProgressBar draws a byte progress bar for the raw (compressed) file on w.
// A nil writer disables the bar.
func WithProgressBar(w io.Writer) Option {
	return func(o *openOptions) {
		o.progress = w
	}
}

// Open opens path and detects its compression from the leading bytes.
func Open(path string, opts ...Option) (*Reader, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var raw io.Reader = file
	var bar *progressbar.ProgressBar
	if o.progress != nil {
		size := int64(-1)
		if info, err := file.Stat(); err == nil {
			size = info.Size()
		}
		bar = progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(o.progress),
			progressbar.OptionSetDescription(filepath.Base(path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionFullWidth(),
		)
		raw = io.TeeReader(file, bar)
	}

	buffered := bufio.NewReaderSize(raw, readBufferSize)
	header, err := buffered.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	codec := DetectCodec(header)
	decoded, release, err := decompress(codec, buffered)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Reader{
		Reader:  decoded,
		path:    path,
		codec:   codec,
		file:    file,
		release: release,
		bar:     bar,
	}, nil
}

// Path returns the file path the reader was opened with.
func (r *Reader) Path() string { return r.path }

// Codec returns the detected compression format.
func (r *Reader) Codec() Codec { return r.codec }

// Close releases the decoder and the underlying file.
func (r *Reader) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	releaseErr := r.release()
	closeErr := r.file.Close()
	r.file = nil
	return errors.Join(releaseErr, closeErr)
}

// LineFunc receives one line (without its terminator) and its 1-based number.
type LineFunc func(lineNo int, line string) error

// ErrStop can be returned from a LineFunc to end iteration without an error.
var ErrStop = errors.New("stop iteration")

// ForEachLine calls fn for every line in r, in order. Lines of any length are
// supported. A final line without a terminator is still delivered.
func ForEachLine(r io.Reader, fn LineFunc) error {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, readBufferSize)
	}
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
				if len(line) > 0 && line[len(line)-1] == '\r' {
					line = line[:len(line)-1]
				}
			}
			if ferr := fn(lineNo, line); ferr != nil {
				if errors.Is(ferr, ErrStop) {
					return nil
				}
				return ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// ForEachFileLine opens path and iterates its lines, closing the file on
// every exit path.
func ForEachFileLine(path string, fn LineFunc, opts ...Option) (err error) {
	r, err := Open(path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := ForEachLine(r, fn); err != nil {
		return err
	}
	return nil
}
