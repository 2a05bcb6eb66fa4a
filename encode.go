package nbt

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/eluv-io/errors-go"
)

// Encoder writes NBT documents to a byte stream as the exact structural and
// byte-level inverse of Decoder. The whole tree is validated before any byte
// is written, so an invalid tree never produces a truncated, malformed
// document. An Encoder is not safe for concurrent use.
type Encoder struct {
	w        io.Writer
	buf      [8]byte
	maxDepth int
}

// NewEncoder returns an Encoder writing raw NBT bytes to w. Compression is
// the caller's responsibility, composed around the Encoder.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, maxDepth: DefaultMaxDepth}
}

// WithMaxDepth overrides the maximum container nesting depth (default
// DefaultMaxDepth).
func (e *Encoder) WithMaxDepth(n int) *Encoder {
	e.maxDepth = n
	return e
}

// Encode validates the given document and writes it to the stream: the type
// ID byte, the name, and the payload. A root End tag is written as the
// single End byte with neither name nor payload. If the underlying writer
// fails mid-write, the sink is left in an undefined truncated state and must
// be discarded by the caller.
func (e *Encoder) Encode(nt *NamedTag) error {
	const op = "nbt.Encode"
	if nt == nil || nt.Tag == nil {
		return errors.E(op, errors.K.Invalid, "reason", InvalidTag, "nil", true)
	}
	if err := validate(op, nt.Tag, 0, e.maxDepth, nil); err != nil {
		return err
	}
	if err := validateString(op, nt.Name, nil); err != nil {
		return err
	}
	if err := e.writeByte(op, byte(nt.Tag.Type())); err != nil {
		return err
	}
	if nt.Tag.Type() == TypeEnd {
		return nil
	}
	if err := e.writeString(op, nt.Name); err != nil {
		return err
	}
	return e.encodePayload(op, nt.Tag)
}

// Validate checks the structural invariants the encoder enforces before
// writing: homogeneous lists, valid and bounded strings and keys, element
// counts within the signed 32-bit wire limit, and nesting within
// DefaultMaxDepth. It is exposed so trees built programmatically can be
// checked without encoding them.
func Validate(t Tag) error {
	return validate("nbt.Validate", t, 0, DefaultMaxDepth, nil)
}

func validate(op string, t Tag, depth, maxDepth int, path Path) error {
	if t == nil {
		return failAt(op, path, errors.K.Invalid, InvalidTag, "nil", true)
	}
	switch x := t.(type) {
	case String:
		return validateString(op, string(x), path)
	case ByteArray:
		if len(x) > math.MaxInt32 {
			return failAt(op, path, errors.K.Invalid, CollectionTooLarge, "count", len(x))
		}
	case IntArray:
		if len(x) > math.MaxInt32 {
			return failAt(op, path, errors.K.Invalid, CollectionTooLarge, "count", len(x))
		}
	case LongArray:
		if len(x) > math.MaxInt32 {
			return failAt(op, path, errors.K.Invalid, CollectionTooLarge, "count", len(x))
		}
	case List:
		if depth >= maxDepth {
			return failAt(op, path, errors.K.Invalid, NestingTooDeep, "max_depth", maxDepth)
		}
		if len(x.items) > math.MaxInt32 {
			return failAt(op, path, errors.K.Invalid, CollectionTooLarge, "count", len(x.items))
		}
		elem := x.ElementType()
		if !elem.Valid() || (elem == TypeEnd && len(x.items) > 0) {
			return failAt(op, path, errors.K.Invalid, InvalidTag,
				"element_type", int(elem), "count", len(x.items))
		}
		for i, item := range x.items {
			if item == nil || item.Type() != elem {
				return failAt(op, path, errors.K.Invalid, InvalidTag,
					"element_type", elem.String(), "index", i)
			}
			if err := validate(op, item, depth+1, maxDepth, path.pushIndex(i)); err != nil {
				return err
			}
		}
	case Compound:
		if depth >= maxDepth {
			return failAt(op, path, errors.K.Invalid, NestingTooDeep, "max_depth", maxDepth)
		}
		for k, v := range x {
			if err := validateString(op, k, path); err != nil {
				return err
			}
			if v == nil || v.Type() == TypeEnd {
				return failAt(op, path.CopyAppend(k), errors.K.Invalid, InvalidTag, "key", k)
			}
			if err := validate(op, v, depth+1, maxDepth, path.push(k)); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateString enforces the unsigned 16-bit byte-length wire limit and
// UTF-8 validity for strings and compound keys.
func validateString(op string, s string, path Path) error {
	if len(s) > math.MaxUint16 {
		return failAt(op, path, errors.K.Invalid, StringTooLong, "length", len(s))
	}
	if !utf8.ValidString(s) {
		return failAt(op, path, errors.K.Invalid, InvalidEncoding, "length", len(s))
	}
	return nil
}

func failAt(op string, path Path, kind interface{}, reason Reason, fields ...interface{}) error {
	args := append([]interface{}{op, kind, "reason", reason, "path", path.String()}, fields...)
	return errors.E(args...)
}

// encodePayload writes the payload for the given tag. The tree has already
// been validated, so only I/O can fail from here on.
func (e *Encoder) encodePayload(op string, t Tag) error {
	switch x := t.(type) {
	case End:
		return nil
	case Byte:
		return e.writeByte(op, byte(x))
	case Short:
		binary.BigEndian.PutUint16(e.buf[:2], uint16(x))
		return e.writeRaw(op, e.buf[:2])
	case Int:
		binary.BigEndian.PutUint32(e.buf[:4], uint32(x))
		return e.writeRaw(op, e.buf[:4])
	case Long:
		binary.BigEndian.PutUint64(e.buf[:8], uint64(x))
		return e.writeRaw(op, e.buf[:8])
	case Float:
		binary.BigEndian.PutUint32(e.buf[:4], math.Float32bits(float32(x)))
		return e.writeRaw(op, e.buf[:4])
	case Double:
		binary.BigEndian.PutUint64(e.buf[:8], math.Float64bits(float64(x)))
		return e.writeRaw(op, e.buf[:8])
	case ByteArray:
		if err := e.writeCount(op, len(x)); err != nil {
			return err
		}
		return e.writeRaw(op, x)
	case String:
		return e.writeString(op, string(x))
	case List:
		if err := e.writeByte(op, byte(x.ElementType())); err != nil {
			return err
		}
		if err := e.writeCount(op, len(x.items)); err != nil {
			return err
		}
		for _, item := range x.items {
			if err := e.encodePayload(op, item); err != nil {
				return err
			}
		}
		return nil
	case Compound:
		// Iteration order is unspecified: it affects only the serialized
		// byte order, never equality.
		for k, v := range x {
			if err := e.writeByte(op, byte(v.Type())); err != nil {
				return err
			}
			if err := e.writeString(op, k); err != nil {
				return err
			}
			if err := e.encodePayload(op, v); err != nil {
				return err
			}
		}
		return e.writeByte(op, byte(TypeEnd))
	case IntArray:
		if err := e.writeCount(op, len(x)); err != nil {
			return err
		}
		for _, v := range x {
			binary.BigEndian.PutUint32(e.buf[:4], uint32(v))
			if err := e.writeRaw(op, e.buf[:4]); err != nil {
				return err
			}
		}
		return nil
	case LongArray:
		if err := e.writeCount(op, len(x)); err != nil {
			return err
		}
		for _, v := range x {
			binary.BigEndian.PutUint64(e.buf[:8], uint64(v))
			if err := e.writeRaw(op, e.buf[:8]); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.E(op, errors.K.Invalid, "reason", InvalidTag, "type", t.Type().String())
}

// writeCount writes a signed 32-bit big-endian element count.
func (e *Encoder) writeCount(op string, n int) error {
	binary.BigEndian.PutUint32(e.buf[:4], uint32(int32(n)))
	return e.writeRaw(op, e.buf[:4])
}

// writeString writes the unsigned 16-bit byte length followed by the UTF-8
// bytes.
func (e *Encoder) writeString(op string, s string) error {
	binary.BigEndian.PutUint16(e.buf[:2], uint16(len(s)))
	if err := e.writeRaw(op, e.buf[:2]); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return e.writeRaw(op, []byte(s))
}

func (e *Encoder) writeByte(op string, b byte) error {
	e.buf[0] = b
	return e.writeRaw(op, e.buf[:1])
}

func (e *Encoder) writeRaw(op string, b []byte) error {
	_, err := e.w.Write(b)
	if err != nil {
		return errors.E(op, errors.K.IO, err)
	}
	return nil
}
