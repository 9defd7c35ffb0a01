package storage

import "fmt"

// ListOptions controls the walk of `GetIterator`: the direction, the key it
// starts from and the maximum number of items; a zero limit is unlimited.
type ListOptions interface {
	Reverse() bool
	Cursor() []byte
	Limit() uint64
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{reverse: reverse, cursor: cursor, limit: limit}
}

func (o *DefaultListOptions) Reverse() bool  { return o.reverse }
func (o *DefaultListOptions) Cursor() []byte { return o.cursor }
func (o *DefaultListOptions) Limit() uint64  { return o.limit }

func (o *DefaultListOptions) SetCursor(c []byte) *DefaultListOptions {
	o.cursor = c
	return o
}

func (o *DefaultListOptions) SetLimit(l uint64) *DefaultListOptions {
	o.limit = l
	return o
}

func (o *DefaultListOptions) String() string {
	return fmt.Sprintf("reverse=%t cursor=%q limit=%d", o.reverse, o.cursor, o.limit)
}
