// Package codec defines the encoders used to persist entity snapshots and
// the concrete JSON and YAML implementations. Both formats are structured,
// indented, and carry every field by name, so a snapshot written today stays
// readable after fields are added or reordered.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes and decodes an entity snapshot on a byte stream.
type Codec interface {
	Encode(w io.Writer, v any) error
	Decode(r io.Reader, v any) error
	// Format returns the codec identifier used in configuration.
	Format() string
	// Ext returns the conventional file extension, dot included.
	Ext() string
}

// DecodeError describes a malformed snapshot with enough context to diagnose
// it: the format, the byte offset where decoding stopped (when the format
// reports one), and the field that failed (when known).
type DecodeError struct {
	Format string
	Offset int64
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("malformed %s at field %q: %v", e.Format, e.Field, e.Err)
	case e.Offset > 0:
		return fmt.Sprintf("malformed %s at byte %d: %v", e.Format, e.Offset, e.Err)
	default:
		return fmt.Sprintf("malformed %s: %v", e.Format, e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Lookup resolves a codec by its format identifier.
func Lookup(format string) (Codec, error) {
	switch format {
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}
