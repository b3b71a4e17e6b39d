package persist

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmarbury/stockroom/internal/codec"
)

type widget struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func newTestAdapter(t *testing.T, format string) *Adapter[widget] {
	t.Helper()
	c, err := codec.Lookup(format)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshot"+c.Ext())
	a, err := NewAdapter[widget](path, c, nil)
	require.NoError(t, err)
	return a
}

func TestNewAdapterValidatesInputs(t *testing.T) {
	t.Parallel()

	_, err := NewAdapter[widget]("", codec.NewJSONCodec(), nil)
	require.Error(t, err)

	_, err = NewAdapter[widget]("somewhere.json", nil, nil)
	require.Error(t, err)
}

// TestRoundTrip saves a snapshot into a directory that does not exist yet
// and loads it back unchanged, for both supported formats.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "yaml"} {
		format := format
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			a := newTestAdapter(t, format)
			in := []widget{{ID: 1, Name: "anvil"}, {ID: 2, Name: "crate"}}
			require.NoError(t, a.Save(in))

			out, err := a.Load()
			require.NoError(t, err)
			require.Equal(t, in, out)
		})
	}
}

// TestLoadMissingFileIsNotAnError models the first run with no prior
// session.
func TestLoadMissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t, "json")
	out, err := a.Load()
	require.NoError(t, err)
	require.Nil(t, out)
}

// TestLoadCorruptedFile expects ErrDecode with a diagnosable DecodeError in
// the chain.
func TestLoadCorruptedFile(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t, "json")
	require.NoError(t, os.MkdirAll(filepath.Dir(a.Path()), 0o750))
	require.NoError(t, os.WriteFile(a.Path(), []byte(`[{"id": 1,}]`), 0o600))

	_, err := a.Load()
	require.ErrorIs(t, err, ErrDecode)

	var decodeErr *codec.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Positive(t, decodeErr.Offset)
}

// TestSaveOverwritesAtomically saves twice and expects exactly the second
// snapshot, with no temp files left behind.
func TestSaveOverwritesAtomically(t *testing.T) {
	t.Parallel()

	a := newTestAdapter(t, "json")
	require.NoError(t, a.Save([]widget{{ID: 1, Name: "old"}}))
	require.NoError(t, a.Save([]widget{{ID: 1, Name: "new"}, {ID: 2, Name: "extra"}}))

	out, err := a.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "new", out[0].Name)

	entries, err := os.ReadDir(filepath.Dir(a.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

type explodingCodec struct{}

func (explodingCodec) Encode(io.Writer, any) error { return errors.New("cannot encode") }
func (explodingCodec) Decode(io.Reader, any) error { return errors.New("cannot decode") }
func (explodingCodec) Format() string              { return "exploding" }
func (explodingCodec) Ext() string                 { return ".boom" }

// TestSaveEncodeFailureLeavesPriorState writes a snapshot, then fails an
// encode, and expects the destination untouched.
func TestSaveEncodeFailureLeavesPriorState(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	good, err := NewAdapter[widget](path, codec.NewJSONCodec(), nil)
	require.NoError(t, err)
	require.NoError(t, good.Save([]widget{{ID: 1, Name: "safe"}}))

	bad, err := NewAdapter[widget](path, explodingCodec{}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, bad.Save([]widget{{ID: 2}}), ErrEncode)

	out, err := good.Load()
	require.NoError(t, err)
	require.Equal(t, []widget{{ID: 1, Name: "safe"}}, out)
}

// TestLoadUnreadableFile expects ErrIO when the file exists but cannot be
// opened.
func TestLoadUnreadableFile(t *testing.T) {
	t.Parallel()
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o000))

	a, err := NewAdapter[widget](path, codec.NewJSONCodec(), nil)
	require.NoError(t, err)
	_, err = a.Load()
	require.ErrorIs(t, err, ErrIO)
}
