package streamio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"
)

const writeBufferSize = 1 << 20

// ErrLocked reports that another run holds the lock on a destination.
var ErrLocked = errors.New("destination is locked by another run")

// Destination is a buffered output sink. Writes are flushed on Close.
type Destination struct {
	*bufio.Writer
	name     string
	file     *os.File
	owned    bool
	lock     *flock.Flock
	lockPath string
}

// Create truncates (or creates) path for writing. When lock is set, an
// advisory lock on "<path>.lock" is held until Close.
func Create(path string, lock bool) (*Destination, error) {
	d := &Destination{name: path, owned: true}
	if lock {
		d.lockPath = path + ".lock"
		d.lock = flock.New(d.lockPath)
		ok, err := d.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock for %s: %w", path, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrLocked)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		d.releaseLock()
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	d.file = file
	d.Writer = bufio.NewWriterSize(file, writeBufferSize)
	return d, nil
}

// Wrap buffers an existing writer such as os.Stdout. Close flushes but does
// not close w.
func Wrap(name string, w io.Writer) *Destination {
	return &Destination{name: name, Writer: bufio.NewWriterSize(w, writeBufferSize)}
}

// Name returns the destination path or label.
func (d *Destination) Name() string { return d.name }

// Close flushes buffered output, closes owned files, and releases the lock.
// It is safe to call more than once.
func (d *Destination) Close() error {
	if d == nil || d.Writer == nil {
		return nil
	}
	flushErr := d.Flush()
	var closeErr error
	if d.owned && d.file != nil {
		closeErr = d.file.Close()
		d.file = nil
	}
	d.Writer = nil
	d.releaseLock()
	if flushErr != nil {
		return fmt.Errorf("flush %s: %w", d.name, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", d.name, closeErr)
	}
	return nil
}

func (d *Destination) releaseLock() {
	if d.lock == nil {
		return
	}
	_ = d.lock.Unlock()
	_ = os.Remove(d.lockPath)
	d.lock = nil
}
