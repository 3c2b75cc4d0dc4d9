// Package Queues holds a growable FIFO backed by a circular array.
package Queues

// ArrayQueue is a FIFO queue in a circular slice that doubles when full. The zero value is
// an empty queue ready to use.
type ArrayQueue[T any] struct {
	sz, head int
	content  []T
}

func MakeArrayQueue[T any](initCap int) *ArrayQueue[T] {
	return &ArrayQueue[T]{content: make([]T, max(initCap, 1))}
}

func (u *ArrayQueue[T]) Empty() bool {
	return u.sz == 0
}

func (u *ArrayQueue[T]) Size() int {
	return u.sz
}

func (u *ArrayQueue[T]) resize(newLen int) {
	nc := make([]T, newLen)
	if tail := u.head + u.sz; tail <= len(u.content) {
		copy(nc, u.content[u.head:tail])
	} else {
		n := copy(nc, u.content[u.head:])
		copy(nc[n:], u.content[:tail-len(u.content)])
	}
	u.content, u.head = nc, 0
}

// Push to the tail.
// Time: amortized O(1)
func (u *ArrayQueue[T]) Push(item T) {
	if u.sz == len(u.content) {
		u.resize(max(2*u.sz, 4))
	}
	u.content[(u.head+u.sz)%len(u.content)] = item
	u.sz++
}

// Pop from the head. Returns (zero,false) if the queue is empty.
func (u *ArrayQueue[T]) Pop() (item T, ok bool) {
	if u.sz == 0 {
		return
	}
	item, ok = u.content[u.head], true
	u.content[u.head] = *new(T)
	u.head = (u.head + 1) % len(u.content)
	u.sz--
	return
}
