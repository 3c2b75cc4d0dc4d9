package Trees

import (
	"errors"
	"fmt"
)

var (
	// ErrAttached is used when a node that is part of some tree is inserted.
	ErrAttached = errors.New("node is attached to a tree")
	// ErrNotMember is used when a node is removed from, or navigated in, a tree it doesn't belong to.
	ErrNotMember = errors.New("node doesn't belong to the tree")
)

// PreconditionError is the panic value of misused mutations. It wraps ErrAttached or ErrNotMember.
type PreconditionError struct {
	Op  string
	Key any
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Key, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// InvalidSliceError is the panic value of From when the nodes aren't strictly ascending.
type InvalidSliceError[K Number] struct {
	Index     int
	Prev, Cur K
}

func (e InvalidSliceError[K]) Error() string {
	return fmt.Sprintf("keys at %d and %d aren't strictly ascending: %v, %v", e.Index-1, e.Index, e.Prev, e.Cur)
}

// VerifyError reports the first node found violating a property of the tree.
type VerifyError struct {
	Key    any
	Reason string
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("node %v: %s", e.Key, e.Reason)
}
