package nbt_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	nbt "github.com/eluv-io/nbt-go"
)

func TestReadWrite(t *testing.T) {
	in := nbt.NewNamedTag("level", nbt.Compound{
		"seed": nbt.Long(12345),
		"name": nbt.String("world"),
	})

	var buf bytes.Buffer
	require.NoError(t, nbt.Write(&buf, in))

	out, err := nbt.Read(&buf)
	require.NoError(t, err)
	require.True(t, in.Equal(out))
}

func TestReadMultipleDocuments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, nbt.Write(&buf, nbt.NewNamedTag("a", nbt.Byte(1))))
	require.NoError(t, nbt.Write(&buf, nbt.NewNamedTag("b", nbt.Byte(2))))

	d := nbt.NewDecoder(&buf)
	first, err := d.Decode()
	require.NoError(t, err)
	require.Equal(t, "a", first.Name)
	second, err := d.Decode()
	require.NoError(t, err)
	require.Equal(t, "b", second.Name)
}

func TestNamedTagType(t *testing.T) {
	require.Equal(t, nbt.TypeEnd, (*nbt.NamedTag)(nil).Type())
	require.Equal(t, nbt.TypeEnd, nbt.NewNamedTag("", nil).Type())
	require.Equal(t, nbt.TypeInt, nbt.NewNamedTag("", nbt.Int(1)).Type())
}

func TestNamedTagEqual(t *testing.T) {
	a := nbt.NewNamedTag("n", nbt.Int(1))
	require.True(t, a.Equal(nbt.NewNamedTag("n", nbt.Int(1))))
	require.False(t, a.Equal(nbt.NewNamedTag("m", nbt.Int(1))))
	require.False(t, a.Equal(nbt.NewNamedTag("n", nbt.Int(2))))
	require.False(t, a.Equal(nil))
	require.True(t, (*nbt.NamedTag)(nil).Equal(nil))
}

func TestNamedTagCopy(t *testing.T) {
	a := nbt.NewNamedTag("n", nbt.Compound{"x": nbt.IntArray{1, 2}})
	b := a.Copy()
	require.True(t, a.Equal(b))
	b.Tag.(nbt.Compound)["x"].(nbt.IntArray)[0] = 9
	require.Equal(t, int32(1), []int32(a.Tag.(nbt.Compound)["x"].(nbt.IntArray))[0])
	require.Nil(t, (*nbt.NamedTag)(nil).Copy())
}
