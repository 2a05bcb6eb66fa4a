package nbt_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	nbt "github.com/eluv-io/nbt-go"
)

func TestEqual(t *testing.T) {
	Convey("Structural equality of tags", t, func() {

		Convey("scalars compare by value", func() {
			So(nbt.Equal(nbt.Int(7), nbt.Int(7)), ShouldBeTrue)
			So(nbt.Equal(nbt.Int(7), nbt.Int(8)), ShouldBeFalse)
			So(nbt.Equal(nbt.String("a"), nbt.String("a")), ShouldBeTrue)
			So(nbt.Equal(nbt.End{}, nbt.End{}), ShouldBeTrue)
		})

		Convey("different variants are never equal, even with equal values", func() {
			So(nbt.Equal(nbt.Int(1), nbt.Long(1)), ShouldBeFalse)
			So(nbt.Equal(nbt.Byte(0), nbt.End{}), ShouldBeFalse)
		})

		Convey("floats compare by IEEE-754 bit pattern", func() {
			So(nbt.Equal(nbt.Float(3.0), nbt.Float(3.0)), ShouldBeTrue)
			nan := nbt.Double(math.NaN())
			So(nbt.Equal(nan, nan), ShouldBeTrue)
			So(nbt.Equal(nbt.Double(0), nbt.Double(math.Copysign(0, -1))), ShouldBeFalse)
		})

		Convey("list equality is order-sensitive", func() {
			a := nbt.MustList(nbt.TypeInt, nbt.Int(1), nbt.Int(2))
			b := nbt.MustList(nbt.TypeInt, nbt.Int(2), nbt.Int(1))
			c := nbt.MustList(nbt.TypeInt, nbt.Int(1), nbt.Int(2))
			So(nbt.Equal(a, c), ShouldBeTrue)
			So(nbt.Equal(a, b), ShouldBeFalse)
		})

		Convey("empty lists carry their declared element type", func() {
			a := nbt.MustList(nbt.TypeEnd)
			b := nbt.MustList(nbt.TypeInt)
			So(nbt.Equal(a, a), ShouldBeTrue)
			So(nbt.Equal(a, b), ShouldBeFalse)
		})

		Convey("compound equality ignores entry order", func() {
			a := nbt.Compound{"x": nbt.Int(1), "y": nbt.String("s")}
			b := nbt.Compound{"y": nbt.String("s"), "x": nbt.Int(1)}
			So(nbt.Equal(a, b), ShouldBeTrue)
			So(nbt.Equal(a, nbt.Compound{"x": nbt.Int(1)}), ShouldBeFalse)
			So(nbt.Equal(a, nbt.Compound{"x": nbt.Int(1), "z": nbt.String("s")}), ShouldBeFalse)
		})

		Convey("arrays are order-sensitive", func() {
			So(nbt.Equal(nbt.IntArray{1, 2}, nbt.IntArray{1, 2}), ShouldBeTrue)
			So(nbt.Equal(nbt.IntArray{1, 2}, nbt.IntArray{2, 1}), ShouldBeFalse)
			So(nbt.Equal(nbt.ByteArray{1}, nbt.ByteArray{1}), ShouldBeTrue)
			So(nbt.Equal(nbt.LongArray{1}, nbt.LongArray{1, 2}), ShouldBeFalse)
		})

		Convey("nested trees compare recursively", func() {
			mk := func() nbt.Tag {
				return nbt.Compound{
					"list": nbt.MustList(nbt.TypeCompound,
						nbt.Compound{"a": nbt.Byte(1)},
						nbt.Compound{"b": nbt.Byte(2)},
					),
					"data": nbt.ByteArray{0xde, 0xad},
				}
			}
			So(nbt.Equal(mk(), mk()), ShouldBeTrue)
		})
	})
}

func TestCopy(t *testing.T) {
	Convey("Copy returns a deep, structurally equal copy", t, func() {
		orig := nbt.Compound{
			"bytes": nbt.ByteArray{1, 2, 3},
			"ints":  nbt.IntArray{4, 5},
			"longs": nbt.LongArray{6},
			"list":  nbt.MustList(nbt.TypeString, nbt.String("a"), nbt.String("b")),
			"inner": nbt.Compound{"x": nbt.Float(1.5)},
		}
		cp := nbt.Copy(orig)
		So(nbt.Equal(orig, cp), ShouldBeTrue)

		Convey("mutating the copy leaves the original untouched", func() {
			c := cp.(nbt.Compound)
			c["bytes"].(nbt.ByteArray)[0] = 99
			c["inner"].(nbt.Compound)["x"] = nbt.Float(0)
			delete(c, "longs")
			So(orig["bytes"].(nbt.ByteArray)[0], ShouldEqual, byte(1))
			So(nbt.Equal(orig["inner"], nbt.Compound{"x": nbt.Float(1.5)}), ShouldBeTrue)
			So(orig["longs"], ShouldNotBeNil)
		})
	})
}
