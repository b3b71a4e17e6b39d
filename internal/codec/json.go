package codec

import (
	"errors"
	"io"

	"github.com/goccy/go-json"
)

// JSONCodec reads and writes indented JSON snapshots.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier.
func (c *JSONCodec) Format() string {
	return "json"
}

// Ext returns the snapshot file extension.
func (c *JSONCodec) Ext() string {
	return ".json"
}

// Encode writes v as indented JSON.
func (c *JSONCodec) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return nil
}

// Decode parses JSON into v, translating parser failures into a DecodeError
// carrying the byte offset and, for type mismatches, the offending field.
func (c *JSONCodec) Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return c.decodeError(err)
	}
	return nil
}

func (c *JSONCodec) decodeError(err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &DecodeError{Format: c.Format(), Offset: syn.Offset, Err: err}
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return &DecodeError{Format: c.Format(), Offset: typ.Offset, Field: typ.Field, Err: err}
	}
	return &DecodeError{Format: c.Format(), Err: err}
}
