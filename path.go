package nbt

import (
	"strconv"
	"strings"
)

const pathSeparator = "/"

var (
	pathEncoder = strings.NewReplacer("~", "~0", "/", "~1")
)

// Path is the trail of compound keys and list indices leading to a tag
// inside a tree. It is reported with decode errors for diagnosability.
type Path []string

// String formats the path with '/' separators, escaping '/' and '~' in keys
// per RFC 6901 so the formatted path stays unambiguous.
func (p Path) String() string {
	if len(p) == 0 {
		return pathSeparator
	}
	var sb strings.Builder
	for _, seg := range p {
		sb.WriteString(pathSeparator)
		sb.WriteString(pathEncoder.Replace(seg))
	}
	return sb.String()
}

// CopyAppend makes a copy of this path with the given segments appended.
func (p Path) CopyAppend(segments ...string) Path {
	c := make(Path, len(p)+len(segments))
	copy(c, p)
	copy(c[len(p):], segments)
	return c
}

// push appends a segment in place. The returned Path value must be used.
func (p Path) push(seg string) Path {
	return append(p, seg)
}

// pushIndex appends a list index segment.
func (p Path) pushIndex(i int) Path {
	return append(p, strconv.Itoa(i))
}
