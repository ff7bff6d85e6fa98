package sealmsg

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultLimit bounds how many bytes a pipeline reads from its source.
	DefaultLimit = 1_048_576

	// DefaultSecretPath is where the one-time secret is expected when no
	// other location is configured.
	DefaultSecretPath = "/run/secrets/key1time"
)

// ReadBounded reads from r until EOF or until maxLen bytes have been read,
// whichever comes first. A short or empty source is not an error.
func ReadBounded(r io.Reader, maxLen int64) ([]byte, error) {
	if maxLen < 0 {
		maxLen = 0
	}

	b, err := io.ReadAll(io.LimitReader(r, maxLen))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return b, nil
}

// ReadFileBounded opens path, reads at most maxLen bytes from it and closes
// it. A missing or unreadable file is an error.
func ReadFileBounded(path string, maxLen int64) (b []byte, err error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = closeFile(f, path, err) }()

	b, err = ReadBounded(f, maxLen)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	return b, nil
}

func openFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no file name given", ErrIO)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}

// closeFile closes f and folds a close failure into err.
func closeFile(f *os.File, path string, err error) error {
	cerr := f.Close()
	if cerr == nil {
		return err
	}

	cerr = fmt.Errorf("%w: failed to close %s: %w", ErrIO, path, cerr)
	if err == nil {
		return cerr
	}
	return multierror.Append(err, cerr)
}

// readLimited reads at most limit bytes and fails with ErrInputTooLarge when
// the source holds more. A limit <= 0 means DefaultLimit.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	// one byte past the limit tells a full source from an oversize one
	n := limit
	if limit < math.MaxInt64 {
		n++
	}

	b, err := ReadBounded(r, n)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}
	return b, nil
}

func readFileLimited(path string, limit int64) (b []byte, err error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { err = closeFile(f, path, err) }()

	b, err = readLimited(f, limit)
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", path, err)
	}
	return b, nil
}

func write(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: failed to write output: %w", ErrIO, err)
	}
	return nil
}

// SealStream reads a message of at most size bytes from r, seals it and writes
// the combined form to w. Nothing is written unless sealing succeeded.
func (s *Sealer) SealStream(r io.Reader, w io.Writer, size int64, key SymmetricKey) error {
	msg, err := readLimited(r, size)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	return s.sealTo(w, msg, key)
}

// OpenStream reads a combined sealed message of at most size bytes from r,
// opens it and writes the plaintext to w. Nothing is written unless the
// message authenticated.
func (s *Sealer) OpenStream(r io.Reader, w io.Writer, size int64, key SymmetricKey) error {
	sealed, err := readLimited(r, size)
	if err != nil {
		return fmt.Errorf("failed to read sealed message: %w", err)
	}
	return s.openTo(w, sealed, key)
}

// SealFile reads the message in the file at path (at most limit bytes), seals
// it and writes the combined form to w.
func (s *Sealer) SealFile(path string, key SymmetricKey, limit int64, w io.Writer) error {
	msg, err := readFileLimited(path, limit)
	if err != nil {
		return fmt.Errorf("failed to read message: %w", err)
	}
	return s.sealTo(w, msg, key)
}

// OpenFile reads the combined sealed message in the file at path (at most
// limit bytes), opens it and writes the plaintext to w.
func (s *Sealer) OpenFile(path string, key SymmetricKey, limit int64, w io.Writer) error {
	sealed, err := readFileLimited(path, limit)
	if err != nil {
		return fmt.Errorf("failed to read sealed message: %w", err)
	}
	return s.openTo(w, sealed, key)
}

func (s *Sealer) sealTo(w io.Writer, msg []byte, key SymmetricKey) error {
	box, err := s.Seal(msg, key)
	if err != nil {
		return fmt.Errorf("failed to seal: %w", err)
	}
	return write(w, box.Combined())
}

func (s *Sealer) openTo(w io.Writer, sealed []byte, key SymmetricKey) error {
	msg, err := s.OpenCombined(sealed, key)
	if err != nil {
		return fmt.Errorf("failed to open: %w", err)
	}
	return write(w, msg)
}

// SealStream seals from r to w using the default sealer.
func SealStream(r io.Reader, w io.Writer, size int64, key SymmetricKey) error {
	return Default.SealStream(r, w, size, key)
}

// OpenStream opens from r to w using the default sealer.
func OpenStream(r io.Reader, w io.Writer, size int64, key SymmetricKey) error {
	return Default.OpenStream(r, w, size, key)
}

// SealFile seals a file to w using the default sealer.
func SealFile(path string, key SymmetricKey, limit int64, w io.Writer) error {
	return Default.SealFile(path, key, limit, w)
}

// OpenFile opens a sealed file to w using the default sealer.
func OpenFile(path string, key SymmetricKey, limit int64, w io.Writer) error {
	return Default.OpenFile(path, key, limit, w)
}
