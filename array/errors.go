package array

import "errors"

// Contract-violation errors. All are detected eagerly at the violating
// call, never deferred to materialization time.
var (
	ErrInvalidShape    = errors.New("invalid shape")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrShapeMismatch   = errors.New("shapes not broadcast-compatible")
	ErrTypeMismatch    = errors.New("scalar type incompatible with dtype")
)
