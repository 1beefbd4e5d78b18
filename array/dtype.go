package array

// Elem is a constraint for supported element types.
type Elem interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataType represents runtime type information for array elements.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point kind.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// PromoteTypes resolves the result dtype of a binary operation over
// mixed operand dtypes. The rule: the floating kind dominates the
// integer kind, and within a kind the wider type wins. So
// int32+int64=int64, int64+float32=float32, float32+float64=float64.
func PromoteTypes(a, b DataType) DataType {
	if a == b {
		return a
	}
	switch {
	case a.IsFloat() && b.IsFloat():
		return Float64 // the only mixed-float pair
	case a.IsFloat():
		return a
	case b.IsFloat():
		return b
	default:
		return Int64 // the only mixed-int pair
	}
}

// inferDataType infers the runtime DataType from a generic type T.
func inferDataType[T Elem](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	default:
		panic("unsupported type")
	}
}
