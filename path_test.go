package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathString(t *testing.T) {
	require.Equal(t, "/", Path{}.String())
	require.Equal(t, "/a/b", Path{"a", "b"}.String())
	require.Equal(t, "/a/0/b", Path{"a"}.pushIndex(0).push("b").String())

	// keys containing the separator or tilde are escaped per RFC 6901
	require.Equal(t, "/a~1b/c~0d", Path{"a/b", "c~d"}.String())
}

func TestPathCopyAppend(t *testing.T) {
	p := Path{"a"}
	q := p.CopyAppend("b", "c")
	require.Equal(t, Path{"a"}, p)
	require.Equal(t, Path{"a", "b", "c"}, q)
	q[0] = "z"
	require.Equal(t, Path{"a"}, p)
}
