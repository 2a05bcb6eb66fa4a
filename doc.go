// Package nbt implements the Named Binary Tag (NBT) format: the recursive,
// self-describing binary serialization used by Minecraft save files.
//
// The package provides the closed tag value model (the classical 12-type
// system plus the End terminator), a streaming Decoder and Encoder that
// losslessly round-trip a tree through its big-endian wire form, and the
// NamedTag document root with Read/Write stream entry points.
//
// The codec always operates on raw, uncompressed bytes. Persisted NBT
// documents are conventionally gzip-wrapped; see the nbtfile package for
// helpers that compose decompression around the codec.
//
// All failures are github.com/eluv-io/errors-go errors carrying a typed
// "reason" field (see Reason) plus, for decode failures, the byte offset and
// tag path reached.
package nbt
