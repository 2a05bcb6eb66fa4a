package nbt

// Copy returns a deep copy of the given tag. Scalar tags are returned as-is
// since they are values; containers and arrays are copied recursively, so
// mutating the copy's backing slices or maps never affects the original.
func Copy(t Tag) Tag {
	switch x := t.(type) {
	case ByteArray:
		return ByteArray(append([]byte(nil), x...))
	case IntArray:
		return IntArray(append([]int32(nil), x...))
	case LongArray:
		return LongArray(append([]int64(nil), x...))
	case List:
		items := make([]Tag, len(x.items))
		for i, item := range x.items {
			items[i] = Copy(item)
		}
		return List{elem: x.elem, items: items}
	case Compound:
		c := make(Compound, len(x))
		for k, v := range x {
			c[k] = Copy(v)
		}
		return c
	default:
		return t
	}
}
