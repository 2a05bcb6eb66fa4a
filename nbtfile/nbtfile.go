// Package nbtfile reads and writes persisted NBT documents. Persisted files
// (.nbt/.dat) are conventionally gzip-wrapped; this package composes the
// compression transport around the core codec, which itself only ever sees
// raw bytes. Reading sniffs the gzip magic, so both compressed and plain
// files are handled transparently.
package nbtfile

import (
	"bufio"
	"io"

	"github.com/eluv-io/errors-go"
	elog "github.com/eluv-io/log-go"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"

	nbt "github.com/eluv-io/nbt-go"
)

var log = elog.Get("/eluvio/nbt/file")

const tempExt = ".temp"

// gzip member header magic, RFC 1952.
var gzipMagic = []byte{0x1f, 0x8b}

// Read decodes one NBT document from r, transparently decompressing if the
// stream starts with the gzip magic.
func Read(r io.Reader) (*nbt.NamedTag, error) {
	e := errors.Template("nbtfile.Read", errors.K.IO)
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, e(err, "reason", "invalid gzip stream")
		}
		defer errors.Ignore(zr.Close)
		return nbt.Read(zr)
	}
	// Too-short streams fall through: the decoder reports the truncation
	// with its offset.
	return nbt.Read(br)
}

// Write encodes the given document to w, gzip-wrapping it if compress is
// true.
func Write(w io.Writer, nt *nbt.NamedTag, compress bool) error {
	e := errors.Template("nbtfile.Write", errors.K.IO)
	if !compress {
		return nbt.Write(w, nt)
	}
	zw := gzip.NewWriter(w)
	if err := nbt.Write(zw, nt); err != nil {
		_ = zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return e(err)
	}
	return nil
}

// ReadFile decodes the NBT document stored at path. A nil fs defaults to the
// OS filesystem.
func ReadFile(fs afero.Fs, path string) (*nbt.NamedTag, error) {
	e := errors.Template("nbtfile.ReadFile", errors.K.IO, "path", path)
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, e(err)
	}
	defer errors.Ignore(f.Close)
	// codec errors already carry op, reason, offset and path; propagate them
	// untouched
	return Read(f)
}

// WriteFile encodes the given document to path, gzip-wrapped if compress is
// true. The data is written to a temporary file that replaces the target
// upon success, so a failed write never leaves a truncated file at the
// target path. A nil fs defaults to the OS filesystem.
func WriteFile(fs afero.Fs, path string, nt *nbt.NamedTag, compress bool) error {
	e := errors.Template("nbtfile.WriteFile", errors.K.IO, "path", path)
	if fs == nil {
		fs = afero.NewOsFs()
	}
	tmp := path + tempExt
	f, err := fs.Create(tmp)
	if err != nil {
		return e(err)
	}
	err = Write(f, nt, compress)
	if err2 := f.Close(); err == nil && err2 != nil {
		err = e(err2)
	}
	if err != nil {
		_ = fs.Remove(tmp)
		return err
	}
	if err := fs.Rename(tmp, path); err != nil {
		log.Warn("nbt file write - rename failed", err, "temp_file", tmp, "path", path)
		_ = fs.Remove(tmp)
		return e(err)
	}
	return nil
}
