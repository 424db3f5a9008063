package value

// Zero returns the zero value for a declared type: 0/0.0/false/"" for
// scalars, or an empty array for array types. Used when materializing a
// component's attributes from its schema (spec §4.5: "instantiate a
// UserComponent of that type with zero attribute values").
func Zero(t Type) Value {
	if t.IsArray {
		return NewArray(t.ElemTag, make([]int, t.NumDims), nil)
	}
	switch t.Tag {
	case Int32:
		return NewInt32(0)
	case Int64:
		return NewInt64(0)
	case Float32:
		return NewFloat32(0)
	case Float64:
		return NewFloat64(0)
	case Bool:
		return NewBool(false)
	case String:
		return NewString("")
	default:
		panic("Zero: invalid declared tag")
	}
}
