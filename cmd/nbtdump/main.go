// Command nbtdump prints the contents of an NBT file (gzip-wrapped or
// plain) in the layout used by the examples of the original NBT
// specification.
//
// Usage:
//
//	nbtdump [--raw] [--no-color] [--lenient] [--max-depth N] <file>
//
// The file argument "-" reads from stdin.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	nbt "github.com/eluv-io/nbt-go"
	"github.com/eluv-io/nbt-go/nbtprint"
)

func main() {
	var (
		raw      = pflag.Bool("raw", false, "treat the input as uncompressed NBT, skipping gzip detection")
		noColor  = pflag.Bool("no-color", false, "disable colored output")
		lenient  = pflag.Bool("lenient", false, "resolve duplicate compound keys as last-write-wins")
		maxDepth = pflag.Int("max-depth", nbt.DefaultMaxDepth, "maximum container nesting depth")
	)
	pflag.Parse()
	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(1)
	}

	err := dump(pflag.Arg(0), *raw, *noColor, *lenient, *maxDepth)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dump(path string, raw, noColor, lenient bool, maxDepth int) error {
	var src io.Reader
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	br := bufio.NewReader(src)
	rdr := io.Reader(br)
	if !raw {
		if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
			zr, err := gzip.NewReader(br)
			if err != nil {
				return err
			}
			defer func() { _ = zr.Close() }()
			rdr = zr
		}
	}

	d := nbt.NewDecoder(rdr).WithMaxDepth(maxDepth)
	if lenient {
		d = d.WithKeepLastDuplicate()
	}
	nt, err := d.Decode()
	if err != nil {
		return err
	}

	p := nbtprint.New()
	p.Color = !noColor && isatty.IsTerminal(os.Stdout.Fd())
	return p.Fprint(os.Stdout, nt)
}
