package nbt

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/eluv-io/errors-go"
)

// DefaultMaxDepth is the default bound on container nesting during decode
// and encode. Recursive descent is otherwise bounded only by input size, so
// the bound guards against stack exhaustion on adversarial or corrupted
// input.
const DefaultMaxDepth = 512

// readChunk caps the up-front allocation for a declared array count, so a
// corrupted count cannot force a multi-gigabyte allocation before the stream
// runs dry.
const readChunk = 1 << 16

// Decoder reads NBT documents from an uncompressed byte stream. It performs
// a single forward pass with no backtracking and fails fast on the first
// error, never returning a partial tree. A Decoder is not safe for
// concurrent use; distinct Decoders on distinct streams are.
type Decoder struct {
	r           io.Reader
	buf         [8]byte
	off         int64
	path        Path
	maxDepth    int
	keepLastDup bool
}

// NewDecoder returns a Decoder reading from r. The stream must hold raw NBT
// bytes: any decompression (gzip by convention for .nbt/.dat files) is the
// caller's responsibility, composed around the Decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth overrides the maximum container nesting depth (default
// DefaultMaxDepth). Exceeding it fails with a NestingTooDeep error.
func (d *Decoder) WithMaxDepth(n int) *Decoder {
	d.maxDepth = n
	return d
}

// WithKeepLastDuplicate switches the duplicate-key policy from fail-fast
// (the default, a DuplicateKey error) to last-write-wins, for compatibility
// with lenient real-world files that repeat compound keys.
func (d *Decoder) WithKeepLastDuplicate() *Decoder {
	d.keepLastDup = true
	return d
}

// Offset returns the number of bytes consumed from the stream so far.
func (d *Decoder) Offset() int64 {
	return d.off
}

// Decode reads one complete named document from the stream: a type ID byte,
// a name, and the payload for that type. A root End tag carries neither name
// nor payload and yields a NamedTag with an empty name and an End tag.
func (d *Decoder) Decode() (*NamedTag, error) {
	const op = "nbt.Decode"
	d.path = d.path[:0]
	id, err := d.readByte(op)
	if err != nil {
		return nil, err
	}
	t := Type(id)
	if !t.Valid() {
		return nil, d.fail(op, errors.K.Invalid, InvalidTag, "type_id", int(id))
	}
	if t == TypeEnd {
		return &NamedTag{Tag: End{}}, nil
	}
	name, err := d.readString(op)
	if err != nil {
		return nil, err
	}
	tag, err := d.decodePayload(op, t, 0)
	if err != nil {
		return nil, err
	}
	return &NamedTag{Name: name, Tag: tag}, nil
}

// decodePayload reads the payload for the given type ID. Dispatch is purely
// by type ID; list elements are payload-only, with no per-element ID or
// name.
func (d *Decoder) decodePayload(op string, t Type, depth int) (Tag, error) {
	switch t {
	case TypeByte:
		b, err := d.readByte(op)
		if err != nil {
			return nil, err
		}
		return Byte(b), nil
	case TypeShort:
		b, err := d.read(op, 2)
		if err != nil {
			return nil, err
		}
		return Short(int16(binary.BigEndian.Uint16(b))), nil
	case TypeInt:
		b, err := d.read(op, 4)
		if err != nil {
			return nil, err
		}
		return Int(int32(binary.BigEndian.Uint32(b))), nil
	case TypeLong:
		b, err := d.read(op, 8)
		if err != nil {
			return nil, err
		}
		return Long(int64(binary.BigEndian.Uint64(b))), nil
	case TypeFloat:
		b, err := d.read(op, 4)
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case TypeDouble:
		b, err := d.read(op, 8)
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(b))), nil
	case TypeByteArray:
		count, err := d.readCount(op)
		if err != nil {
			return nil, err
		}
		return d.readByteArray(op, count)
	case TypeString:
		s, err := d.readString(op)
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TypeList:
		return d.decodeList(op, depth)
	case TypeCompound:
		return d.decodeCompound(op, depth)
	case TypeIntArray:
		count, err := d.readCount(op)
		if err != nil {
			return nil, err
		}
		arr := make(IntArray, 0, min(count, readChunk/4))
		for i := 0; i < count; i++ {
			b, err := d.read(op, 4)
			if err != nil {
				return nil, err
			}
			arr = append(arr, int32(binary.BigEndian.Uint32(b)))
		}
		return arr, nil
	case TypeLongArray:
		count, err := d.readCount(op)
		if err != nil {
			return nil, err
		}
		arr := make(LongArray, 0, min(count, readChunk/8))
		for i := 0; i < count; i++ {
			b, err := d.read(op, 8)
			if err != nil {
				return nil, err
			}
			arr = append(arr, int64(binary.BigEndian.Uint64(b)))
		}
		return arr, nil
	}
	// TypeEnd has no payload and is only valid as a compound terminator or
	// the element type of an empty list; both are handled by the callers.
	return nil, d.fail(op, errors.K.Invalid, InvalidTag, "type_id", int(t))
}

func (d *Decoder) decodeList(op string, depth int) (Tag, error) {
	if depth >= d.maxDepth {
		return nil, d.fail(op, errors.K.Invalid, NestingTooDeep, "max_depth", d.maxDepth)
	}
	id, err := d.readByte(op)
	if err != nil {
		return nil, err
	}
	elem := Type(id)
	if !elem.Valid() {
		return nil, d.fail(op, errors.K.Invalid, InvalidTag, "element_type_id", int(id))
	}
	count, err := d.readCount(op)
	if err != nil {
		return nil, err
	}
	if elem == TypeEnd && count > 0 {
		return nil, d.fail(op, errors.K.Invalid, InvalidTag,
			"element_type", elem.String(), "count", count)
	}
	items := make([]Tag, 0, min(count, readChunk))
	for i := 0; i < count; i++ {
		d.path = d.path.pushIndex(i)
		item, err := d.decodePayload(op, elem, depth+1)
		if err != nil {
			return nil, err
		}
		d.path = d.path[:len(d.path)-1]
		items = append(items, item)
	}
	return List{elem: elem, items: items}, nil
}

func (d *Decoder) decodeCompound(op string, depth int) (Tag, error) {
	if depth >= d.maxDepth {
		return nil, d.fail(op, errors.K.Invalid, NestingTooDeep, "max_depth", d.maxDepth)
	}
	c := Compound{}
	for {
		id, err := d.readByte(op)
		if err != nil {
			return nil, err
		}
		t := Type(id)
		if t == TypeEnd {
			return c, nil
		}
		if !t.Valid() {
			return nil, d.fail(op, errors.K.Invalid, InvalidTag, "type_id", int(id))
		}
		name, err := d.readString(op)
		if err != nil {
			return nil, err
		}
		if _, ok := c[name]; ok && !d.keepLastDup {
			return nil, d.fail(op, errors.K.Exist, DuplicateKey, "key", name)
		}
		d.path = d.path.push(name)
		tag, err := d.decodePayload(op, t, depth+1)
		if err != nil {
			return nil, err
		}
		d.path = d.path[:len(d.path)-1]
		c[name] = tag
	}
}

// readCount reads a signed 32-bit big-endian element count and rejects
// negative values with a MalformedLength error.
func (d *Decoder) readCount(op string) (int, error) {
	b, err := d.read(op, 4)
	if err != nil {
		return 0, err
	}
	count := int32(binary.BigEndian.Uint32(b))
	if count < 0 {
		return 0, d.fail(op, errors.K.Invalid, MalformedLength, "count", count)
	}
	return int(count), nil
}

// readString reads an unsigned 16-bit byte length followed by that many
// UTF-8 bytes. Invalid byte sequences fail with an InvalidEncoding error and
// are never substituted or silently repaired.
func (d *Decoder) readString(op string) (string, error) {
	b, err := d.read(op, 2)
	if err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(b))
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if err := d.readFull(op, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", d.fail(op, errors.K.Invalid, InvalidEncoding, "length", n)
	}
	return string(buf), nil
}

// readByteArray reads count raw bytes in bounded chunks, so the allocation
// grows with bytes actually present in the stream rather than with the
// declared count.
func (d *Decoder) readByteArray(op string, count int) (ByteArray, error) {
	arr := make([]byte, 0, min(count, readChunk))
	chunk := make([]byte, readChunk)
	for remaining := count; remaining > 0; {
		n := min(remaining, readChunk)
		if err := d.readFull(op, chunk[:n]); err != nil {
			return nil, err
		}
		arr = append(arr, chunk[:n]...)
		remaining -= n
	}
	return arr, nil
}

func (d *Decoder) readByte(op string) (byte, error) {
	b, err := d.read(op, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// read reads exactly n bytes (n <= 8) into the decoder's scratch buffer.
func (d *Decoder) read(op string, n int) ([]byte, error) {
	if err := d.readFull(op, d.buf[:n]); err != nil {
		return nil, err
	}
	return d.buf[:n], nil
}

// readFull fills buf from the stream, advancing the decoder's byte offset by
// the number of bytes actually read. Truncation mid-read fails with an
// UnexpectedEndOfStream error carrying the offset and tag path reached.
func (d *Decoder) readFull(op string, buf []byte) error {
	n, err := io.ReadFull(d.r, buf)
	d.off += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return d.fail(op, errors.K.IO, UnexpectedEndOfStream, err,
			"want", len(buf), "got", n)
	} else if err != nil {
		return d.fail(op, errors.K.IO, UnexpectedEndOfStream, err)
	}
	return nil
}

// fail builds a decode error with the byte offset and tag path traversed to
// reach the failure.
func (d *Decoder) fail(op string, kind interface{}, reason Reason, fields ...interface{}) error {
	args := append([]interface{}{op, kind, "reason", reason,
		"offset", d.off, "path", d.path.String()}, fields...)
	return errors.E(args...)
}
