package nbt_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	nbt "github.com/eluv-io/nbt-go"
)

// end-to-end per the classic usage: an unnamed root compound with a single
// float entry survives a full encode/decode cycle bit-exactly
func TestRoundTripEndToEnd(t *testing.T) {
	in := nbt.NewNamedTag("", nbt.Compound{"x": nbt.Float(3.0)})

	data, err := nbt.Marshal(in)
	require.NoError(t, err)

	out, err := nbt.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "", out.Name)

	c := out.Tag.(nbt.Compound)
	require.Len(t, c, 1)
	f, ok := c["x"].(nbt.Float)
	require.True(t, ok)
	require.Equal(t, math.Float32bits(3.0), math.Float32bits(float32(f)))
}

func TestRoundTripFixed(t *testing.T) {
	trees := []nbt.Tag{
		nbt.End{},
		nbt.Byte(-1),
		nbt.Short(-32768),
		nbt.Int(42),
		nbt.Long(math.MaxInt64),
		nbt.Float(float32(math.Inf(-1))),
		nbt.Double(math.NaN()),
		nbt.ByteArray{},
		nbt.ByteArray{0, 255, 127},
		nbt.String(""),
		nbt.String("héllo wörld ✓"),
		nbt.List{},
		nbt.MustList(nbt.TypeCompound, nbt.Compound{"a": nbt.Int(1)}, nbt.Compound{}),
		nbt.MustList(nbt.TypeList),
		nbt.Compound{},
		nbt.Compound{
			"nested": nbt.Compound{
				"deep": nbt.MustList(nbt.TypeLong, nbt.Long(1), nbt.Long(2)),
			},
			"ints":  nbt.IntArray{math.MinInt32, math.MaxInt32},
			"longs": nbt.LongArray{math.MinInt64, math.MaxInt64},
		},
		nbt.IntArray{},
		nbt.LongArray{0},
	}
	for _, tree := range trees {
		in := nbt.NewNamedTag("root", tree)
		data, err := nbt.Marshal(in)
		require.NoError(t, err)
		out, err := nbt.Unmarshal(data)
		require.NoError(t, err)
		if tree.Type() == nbt.TypeEnd {
			// a root End document drops the name on the wire
			require.Equal(t, "", out.Name)
			require.Equal(t, nbt.TypeEnd, out.Type())
			continue
		}
		require.True(t, in.Equal(out), "tree type %s", tree.Type())
	}
}

func TestRoundTripRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		in := nbt.NewNamedTag("r", randomTag(rnd, 0))
		data, err := nbt.Marshal(in)
		require.NoError(t, err)

		out, err := nbt.Unmarshal(data)
		require.NoError(t, err)
		require.True(t, in.Equal(out), "iteration %d", i)

		// decode is idempotent over the same buffer
		out2, err := nbt.Unmarshal(data)
		require.NoError(t, err)
		require.True(t, out.Equal(out2), "iteration %d", i)

		// re-encoding the decoded tree yields bytes that decode to an equal
		// tree again (byte equality is not required: compound entry order is
		// unspecified)
		data2, err := nbt.Marshal(out)
		require.NoError(t, err)
		out3, err := nbt.Unmarshal(data2)
		require.NoError(t, err)
		require.True(t, out.Equal(out3), "iteration %d", i)
	}
}

// randomTag builds an arbitrary valid tag tree, shrinking the container
// probability with depth so trees stay small.
func randomTag(rnd *rand.Rand, depth int) nbt.Tag {
	scalar := depth >= 3 || rnd.Intn(3) > 0
	if scalar {
		switch rnd.Intn(10) {
		case 0:
			return nbt.Byte(rnd.Intn(256) - 128)
		case 1:
			return nbt.Short(rnd.Intn(1 << 16))
		case 2:
			return nbt.Int(rnd.Int31())
		case 3:
			return nbt.Long(rnd.Int63())
		case 4:
			return nbt.Float(rnd.Float32())
		case 5:
			return nbt.Double(rnd.NormFloat64())
		case 6:
			b := make(nbt.ByteArray, rnd.Intn(20))
			rnd.Read(b)
			return b
		case 7:
			return nbt.String(randomString(rnd))
		case 8:
			a := make(nbt.IntArray, rnd.Intn(10))
			for i := range a {
				a[i] = rnd.Int31() - (1 << 30)
			}
			return a
		default:
			a := make(nbt.LongArray, rnd.Intn(10))
			for i := range a {
				a[i] = rnd.Int63() - (1 << 62)
			}
			return a
		}
	}
	if rnd.Intn(2) == 0 {
		// homogeneous list: generate one element, then more of its type
		first := randomTag(rnd, depth+1)
		items := []nbt.Tag{first}
		target := 1 + rnd.Intn(4)
		for len(items) < target {
			next := randomTag(rnd, depth+1)
			if next.Type() != first.Type() {
				continue
			}
			items = append(items, next)
		}
		return nbt.MustList(first.Type(), items...)
	}
	c := nbt.Compound{}
	for i, n := 0, rnd.Intn(5); i < n; i++ {
		c[randomString(rnd)+string(rune('a'+i))] = randomTag(rnd, depth+1)
	}
	return c
}

func randomString(rnd *rand.Rand) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz äöü✓/~"
	runes := []rune(alphabet)
	n := rnd.Intn(8)
	out := make([]rune, n)
	for i := range out {
		out[i] = runes[rnd.Intn(len(runes))]
	}
	return string(out)
}
