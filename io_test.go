package sealmsg

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBounded(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int64
		want   string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"longer than limit", "hello,world", 5, "hello"},
		{"empty", "", 5, ""},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ReadBounded(strings.NewReader(tt.input), tt.maxLen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}

	_, err := ReadBounded(failingReader{}, 10)
	assert.ErrorIs(t, err, ErrIO)
}

func TestReadFileBounded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "msg")
	require.NoError(t, os.WriteFile(path, []byte("hello,world"), 0o600))

	b, err := ReadFileBounded(path, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = ReadFileBounded(path, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, "hello,world", string(b))

	_, err = ReadFileBounded(filepath.Join(dir, "missing"), 5)
	assert.ErrorIs(t, err, ErrIO)

	// a directory opens but cannot be read
	_, err = ReadFileBounded(dir, 5)
	assert.ErrorIs(t, err, ErrIO)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFilePipelines(t *testing.T) {
	eachCipher(t, func(t *testing.T, s *Sealer) {
		key := mustKey(t)
		msgPath := writeFile(t, "msg", []byte("hello,world"))

		var sealed bytes.Buffer
		require.NoError(t, s.SealFile(msgPath, key, DefaultLimit, &sealed))
		assert.Equal(t, Overhead+len("hello,world"), sealed.Len())

		sealedPath := writeFile(t, "msg.sealed", sealed.Bytes())

		var opened bytes.Buffer
		require.NoError(t, s.OpenFile(sealedPath, key, DefaultLimit, &opened))
		assert.Equal(t, "hello,world", opened.String())
	})
}

func TestStreamPipelines(t *testing.T) {
	eachCipher(t, func(t *testing.T, s *Sealer) {
		key := mustKey(t)

		var sealed bytes.Buffer
		require.NoError(t, s.SealStream(strings.NewReader("from stdin"), &sealed, 1024, key))

		var opened bytes.Buffer
		require.NoError(t, s.OpenStream(bytes.NewReader(sealed.Bytes()), &opened, 1024+Overhead, key))
		assert.Equal(t, "from stdin", opened.String())
	})
}

func TestPipelineEmptyMessage(t *testing.T) {
	key := mustKey(t)

	var sealed bytes.Buffer
	require.NoError(t, SealStream(strings.NewReader(""), &sealed, 1024, key))
	assert.Equal(t, Overhead, sealed.Len())

	var opened bytes.Buffer
	require.NoError(t, OpenStream(&sealed, &opened, 1024, key))
	assert.Zero(t, opened.Len())
}

func TestPipelineFailuresWriteNothing(t *testing.T) {
	key := mustKey(t)
	other := mustKey(t)

	var sealed bytes.Buffer
	require.NoError(t, SealStream(strings.NewReader("secret"), &sealed, 1024, key))
	sealedPath := writeFile(t, "sealed", sealed.Bytes())

	tests := []struct {
		name    string
		run     func(w *bytes.Buffer) error
		wantErr error
	}{
		{
			name:    "wrong key",
			run:     func(w *bytes.Buffer) error { return OpenFile(sealedPath, other, 1024, w) },
			wantErr: ErrAuthenticationFailed,
		},
		{
			name:    "truncated sealed message",
			run:     func(w *bytes.Buffer) error { return OpenStream(bytes.NewReader(sealed.Bytes()[:20]), w, 1024, key) },
			wantErr: ErrMalformedInput,
		},
		{
			name:    "missing message file",
			run:     func(w *bytes.Buffer) error { return SealFile(filepath.Join(t.TempDir(), "nope"), key, 1024, w) },
			wantErr: ErrIO,
		},
		{
			name:    "missing sealed file",
			run:     func(w *bytes.Buffer) error { return OpenFile(filepath.Join(t.TempDir(), "nope"), key, 1024, w) },
			wantErr: ErrIO,
		},
		{
			name:    "message over limit",
			run:     func(w *bytes.Buffer) error { return SealStream(strings.NewReader("0123456789"), w, 9, key) },
			wantErr: ErrInputTooLarge,
		},
		{
			name:    "sealed file over limit",
			run:     func(w *bytes.Buffer) error { return OpenFile(sealedPath, key, int64(sealed.Len()-1), w) },
			wantErr: ErrInputTooLarge,
		},
		{
			name:    "unreadable input",
			run:     func(w *bytes.Buffer) error { return SealStream(failingReader{}, w, 1024, key) },
			wantErr: ErrIO,
		},
		{
			name:    "invalid key",
			run:     func(w *bytes.Buffer) error { return SealStream(strings.NewReader("x"), w, 1024, SymmetricKey{}) },
			wantErr: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := tt.run(&out)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, out.Len(), "output written on failure")
		})
	}
}

func TestPipelineExactLimit(t *testing.T) {
	key := mustKey(t)

	var sealed bytes.Buffer
	require.NoError(t, SealStream(strings.NewReader("0123456789"), &sealed, 10, key))

	var opened bytes.Buffer
	require.NoError(t, OpenStream(&sealed, &opened, int64(10+Overhead), key))
	assert.Equal(t, "0123456789", opened.String())
}

func TestPipelineLargestLimit(t *testing.T) {
	key := mustKey(t)

	var sealed bytes.Buffer
	require.NoError(t, SealStream(strings.NewReader("important message"), &sealed, math.MaxInt64, key))
	assert.Equal(t, Overhead+len("important message"), sealed.Len())

	var opened bytes.Buffer
	require.NoError(t, OpenStream(&sealed, &opened, math.MaxInt64, key))
	assert.Equal(t, "important message", opened.String())
}

func TestCloseFileFoldsErrors(t *testing.T) {
	path := writeFile(t, "msg", []byte("hello"))
	f, err := os.Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	readErr := fmt.Errorf("%w: short read", ErrIO)
	err = closeFile(f, path, readErr)
	assert.ErrorIs(t, err, readErr)
	assert.ErrorIs(t, err, os.ErrClosed)

	err = closeFile(f, path, nil)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestPipelineSinkFailure(t *testing.T) {
	err := SealStream(strings.NewReader("message"), failingWriter{}, 1024, mustKey(t))
	assert.ErrorIs(t, err, ErrIO)
}
