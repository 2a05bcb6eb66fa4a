// Package nbtprint renders NBT trees in the human-readable layout used by
// the examples of the original NBT specification. It is a read-only consumer
// of the nbt tag model and contains no codec logic.
package nbtprint

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/eluv-io/errors-go"
	"github.com/fatih/color"

	nbt "github.com/eluv-io/nbt-go"
)

// Printer renders NBT documents. The zero value prints with two-space
// indentation, summarizes arrays longer than 10 elements and produces no
// color.
type Printer struct {
	// Indent is the indentation unit, "  " if empty.
	Indent string
	// MaxInline is the largest array printed element by element; longer
	// arrays are summarized as "[N bytes]" etc. Defaults to 10.
	MaxInline int
	// Color enables ANSI-colored type and tag names.
	Color bool
}

// New returns a Printer with the default settings.
func New() *Printer {
	return &Printer{}
}

// Fprint renders the given document to w. Compound entries are printed in
// sorted key order so the output is deterministic.
func (p *Printer) Fprint(w io.Writer, nt *nbt.NamedTag) error {
	e := errors.Template("nbtprint.Fprint", errors.K.Invalid)
	if nt == nil || nt.Tag == nil {
		return e("reason", "nil document")
	}
	s := p.newState(w)
	s.tag(nt.Name, nt.Tag, 0, false)
	s.printf("\n")
	if s.err != nil {
		return errors.E("nbtprint.Fprint", errors.K.IO, s.err)
	}
	return nil
}

// Sprint renders the given document to a string, ignoring write errors.
func (p *Printer) Sprint(nt *nbt.NamedTag) string {
	var sb strings.Builder
	_ = p.Fprint(&sb, nt)
	return sb.String()
}

type state struct {
	p        *Printer
	w        io.Writer
	err      error
	indent   string
	maxInl   int
	typeName func(a ...interface{}) string
	tagName  func(a ...interface{}) string
}

func (p *Printer) newState(w io.Writer) *state {
	s := &state{p: p, w: w, indent: p.Indent, maxInl: p.MaxInline}
	if s.indent == "" {
		s.indent = "  "
	}
	if s.maxInl <= 0 {
		s.maxInl = 10
	}
	if p.Color {
		s.typeName = color.New(color.FgCyan).SprintFunc()
		s.tagName = color.New(color.FgYellow).SprintFunc()
	} else {
		s.typeName = fmt.Sprint
		s.tagName = fmt.Sprint
	}
	return s
}

func (s *state) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

// tag prints one tag: the type name, the tag name unless the tag is a list
// element, and the payload.
func (s *state) tag(name string, t nbt.Tag, depth int, inList bool) {
	s.printf("%s", strings.Repeat(s.indent, depth))
	if name != "" && !inList {
		s.printf("%s(%s): ", s.typeName(t.Type().String()), s.tagName(fmt.Sprintf("%q", name)))
	} else {
		s.printf("%s: ", s.typeName(t.Type().String()))
	}
	s.payload(t, depth)
}

func (s *state) payload(t nbt.Tag, depth int) {
	switch x := t.(type) {
	case nbt.End:
		s.printf("<end>")
	case nbt.Byte:
		s.printf("%d", int8(x))
	case nbt.Short:
		s.printf("%d", int16(x))
	case nbt.Int:
		s.printf("%d", int32(x))
	case nbt.Long:
		s.printf("%d", int64(x))
	case nbt.Float:
		s.printf("%v", float32(x))
	case nbt.Double:
		s.printf("%v", float64(x))
	case nbt.String:
		s.printf("%q", string(x))
	case nbt.ByteArray:
		if len(x) > s.maxInl {
			s.printf("[%d bytes]", len(x))
		} else {
			s.printf("[ ")
			for _, b := range x {
				s.printf("%02X ", b)
			}
			s.printf("]")
		}
	case nbt.IntArray:
		if len(x) > s.maxInl {
			s.printf("[%d ints]", len(x))
		} else {
			s.printf("%v", []int32(x))
		}
	case nbt.LongArray:
		if len(x) > s.maxInl {
			s.printf("[%d longs]", len(x))
		} else {
			s.printf("%v", []int64(x))
		}
	case nbt.List:
		s.printf("%d entries of type %s {\n", x.Len(), s.typeName(x.ElementType().String()))
		for i := 0; i < x.Len(); i++ {
			s.tag("", x.At(i), depth+1, true)
			s.printf("\n")
		}
		s.printf("%s}", strings.Repeat(s.indent, depth))
	case nbt.Compound:
		s.printf("%d entries {\n", len(x))
		keys := x.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			s.tag(k, x[k], depth+1, false)
			s.printf("\n")
		}
		s.printf("%s}", strings.Repeat(s.indent, depth))
	}
}
