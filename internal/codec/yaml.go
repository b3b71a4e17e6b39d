package codec

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLCodec reads and writes YAML snapshots.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec.
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier.
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Ext returns the snapshot file extension.
func (c *YAMLCodec) Ext() string {
	return ".yaml"
}

// Encode writes v as two-space indented YAML.
func (c *YAMLCodec) Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Decode parses YAML into v. The yaml parser reports line and column in its
// error text, so DecodeError carries no separate offset for this format.
func (c *YAMLCodec) Decode(r io.Reader, v any) error {
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return &DecodeError{Format: c.Format(), Err: err}
	}
	return nil
}
