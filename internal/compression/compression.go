// Package compression opens and creates files that are transparently compressed according to
// their extension.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// MaxDecompressedSize caps how much Open will inflate from a single file.
const MaxDecompressedSize = 256 * 1024 * 1024

// Format is a compression format.
type Format int

// Supported formats.
const (
	FormatNone Format = iota
	FormatGzip
	FormatXz
	FormatBzip2
)

// String returns the conventional extension without the dot, or "none".
func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gz"
	case FormatXz:
		return "xz"
	case FormatBzip2:
		return "bz2"
	default:
		return "none"
	}
}

// FormatFromPath detects the format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2":
		return FormatBzip2
	default:
		return FormatNone
	}
}

// Create creates path, compressing writes according to its extension. Closing the returned
// writer flushes the compressor and closes the file.
func Create(path string) (io.WriteCloser, error) {
	format := FormatFromPath(path)
	if format == FormatBzip2 {
		return nil, fmt.Errorf("cannot write %s: bzip2 is supported for reading only", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - output directories are user readable
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	f, err := os.Create(path) // #nosec G304 - output path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	w, err := NewWriter(f, format)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &stackedWriter{WriteCloser: w, file: f}, nil
}

// NewWriter wraps w with a compressor for format. FormatNone returns a writer whose Close is a
// no-op.
func NewWriter(w io.Writer, format Format) (io.WriteCloser, error) {
	switch format {
	case FormatGzip:
		return gzip.NewWriter(w), nil
	case FormatXz:
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzw, nil
	case FormatNone:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}

// Open opens path and decompresses it according to its extension. Reads fail once more than
// MaxDecompressedSize bytes have been produced.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) // #nosec G304 - input path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r, err := NewReader(f, FormatFromPath(path))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &stackedReader{Reader: NewLimitedReader(r, MaxDecompressedSize), closers: []io.Closer{r, f}}, nil
}

// NewReader wraps r with a decompressor for format.
func NewReader(r io.Reader, format Format) (io.ReadCloser, error) {
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, nil
	case FormatXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return io.NopCloser(xzr), nil
	case FormatBzip2:
		return io.NopCloser(bzip2.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// LimitedReader limits the total bytes that can be read and fails, rather than returning EOF,
// when the limit is hit.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// NewLimitedReader creates a LimitedReader with the given limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{R: r, Remaining: maxBytes}
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, fmt.Errorf("decompression size limit exceeded")
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type stackedWriter struct {
	io.WriteCloser
	file *os.File
}

func (w *stackedWriter) Close() error {
	return errors.Join(w.WriteCloser.Close(), w.file.Close())
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
