// Package persist moves entity snapshots between memory and a file on disk.
// A save is atomic from the caller's perspective: the snapshot is encoded in
// full, written to a temporary file beside the destination, and renamed into
// place, so a failed save leaves the destination absent or in its prior
// state. Loading a destination that does not exist is not an error; it
// models a first run with no prior session.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tmarbury/stockroom/internal/codec"
)

// ErrIO signals a storage medium failure (permissions, missing device, ...).
var ErrIO = errors.New("snapshot i/o failure")

// ErrEncode signals that the snapshot could not be serialized. It should not
// occur for well-formed entities.
var ErrEncode = errors.New("snapshot encode failure")

// ErrDecode signals that persisted content could not be parsed back into the
// expected entity shape. The wrapped *codec.DecodeError carries the detail.
var ErrDecode = errors.New("snapshot decode failure")

// Adapter persists snapshots of T at a fixed destination path using a fixed
// codec. Each Save or Load runs to completion independently; no state is
// carried between calls.
type Adapter[T any] struct {
	path   string
	codec  codec.Codec
	logger *zap.Logger
}

// NewAdapter constructs an Adapter writing to path with c. The destination
// directory does not need to exist yet.
func NewAdapter[T any](path string, c codec.Codec, logger *zap.Logger) (*Adapter[T], error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	if c == nil {
		return nil, fmt.Errorf("codec is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter[T]{path: path, codec: c, logger: logger}, nil
}

// Path returns the destination path.
func (a *Adapter[T]) Path() string {
	return a.path
}

// Save writes the snapshot to the destination, creating missing parent
// directories. The encode runs fully in memory before any byte reaches
// disk, so an encode failure never touches the destination.
func (a *Adapter[T]) Save(items []T) error {
	var buf bytes.Buffer
	if err := a.codec.Encode(&buf, items); err != nil {
		return fmt.Errorf("encode snapshot: %w: %w", ErrEncode, err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create snapshot dir %s: %w: %w", dir, ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*"+a.codec.Ext())
	if err != nil {
		return fmt.Errorf("create temp snapshot in %s: %w: %w", dir, ErrIO, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot %s: %w: %w", tmpName, ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot %s: %w: %w", tmpName, ErrIO, err)
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish snapshot %s: %w: %w", a.path, ErrIO, err)
	}

	a.logger.Info("snapshot saved",
		zap.String("path", a.path),
		zap.String("format", a.codec.Format()),
		zap.Int("entities", len(items)),
	)
	return nil
}

// Load reads the snapshot back. A missing destination yields (nil, nil);
// malformed content fails with ErrDecode and a diagnosable *codec.DecodeError
// in the chain. Entities come back in the order they were stored, ready to
// be re-added one by one into a fresh repository so identity invariants are
// re-validated.
func (a *Adapter[T]) Load() ([]T, error) {
	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			a.logger.Info("no snapshot found", zap.String("path", a.path))
			return nil, nil
		}
		return nil, fmt.Errorf("open snapshot %s: %w: %w", a.path, ErrIO, err)
	}
	defer f.Close()

	var items []T
	if err := a.codec.Decode(f, &items); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w: %w", a.path, ErrDecode, err)
	}

	a.logger.Info("snapshot loaded",
		zap.String("path", a.path),
		zap.String("format", a.codec.Format()),
		zap.Int("entities", len(items)),
	)
	return items, nil
}
