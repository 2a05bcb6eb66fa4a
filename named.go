package nbt

import (
	"bytes"
	"io"
)

// NamedTag pairs a top-level tag with its name, the unit of a complete NBT
// document. Root compounds conventionally use an empty name. Tags nested
// inside a Compound carry their names as map keys, not as a NamedTag.
type NamedTag struct {
	Name string
	Tag  Tag
}

// NewNamedTag returns a NamedTag wrapping the given tag.
func NewNamedTag(name string, tag Tag) *NamedTag {
	return &NamedTag{Name: name, Tag: tag}
}

// Type returns the type ID of the wrapped tag, or TypeEnd if it is nil.
func (n *NamedTag) Type() Type {
	if n == nil || n.Tag == nil {
		return TypeEnd
	}
	return n.Tag.Type()
}

// Equal reports structural equality with another named tag: equal names and
// structurally equal tags.
func (n *NamedTag) Equal(o *NamedTag) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.Name == o.Name && Equal(n.Tag, o.Tag)
}

// Copy returns a deep copy of the named tag.
func (n *NamedTag) Copy() *NamedTag {
	if n == nil {
		return nil
	}
	return &NamedTag{Name: n.Name, Tag: Copy(n.Tag)}
}

// Read decodes one complete NBT document from the given stream of raw,
// uncompressed bytes. Compression (gzip by convention for .nbt/.dat files)
// must be handled by the caller around this entry point, e.g. with the
// nbtfile package.
func Read(r io.Reader) (*NamedTag, error) {
	return NewDecoder(r).Decode()
}

// Write encodes the given document to the stream as raw, uncompressed bytes.
func Write(w io.Writer, nt *NamedTag) error {
	return NewEncoder(w).Encode(nt)
}

// Marshal encodes the given document into a byte buffer.
func Marshal(nt *NamedTag) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(nt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document from the given byte buffer.
func Unmarshal(data []byte) (*NamedTag, error) {
	return NewDecoder(bytes.NewReader(data)).Decode()
}
