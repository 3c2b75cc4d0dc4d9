package Trees

import "golang.org/x/exp/constraints"

const (
	left  = 0
	right = 1
)

// Node in the WAVLTree. Create it with NewNode; only the key is meaningful to the caller.
// While attached, its links, flags and aggregates belong to the tree.
type Node[K Number, S constraints.Unsigned] struct {
	key    K
	sum    K // sum of keys in the subtree
	sz     S // number of nodes in the subtree
	ch     [2]*Node[K, S]
	parent *Node[K, S] // non-owning
	// rd2[d] is set when the rank difference to ch[d] is 2, clear when it is 1.
	// A missing child has rank -1.
	rd2   [2]bool
	owner *WAVLTree[K, S]
}

// NewNode returns an unattached node holding key.
func NewNode[K Number, S constraints.Unsigned](key K) *Node[K, S] {
	return &Node[K, S]{key: key, sum: key, sz: 1}
}

func (n *Node[K, S]) Key() K {
	return n.key
}

// Sum of the keys in the subtree rooted at n.
func (n *Node[K, S]) Sum() K {
	return n.sum
}

// Size of the subtree rooted at n.
func (n *Node[K, S]) Size() S {
	return n.sz
}

func (n *Node[K, S]) Left() *Node[K, S] {
	return n.ch[left]
}

func (n *Node[K, S]) Right() *Node[K, S] {
	return n.ch[right]
}

func (n *Node[K, S]) Parent() *Node[K, S] {
	return n.parent
}

// Attached reports whether n currently belongs to a tree.
func (n *Node[K, S]) Attached() bool {
	return n.owner != nil
}

// RankDiff returns the rank difference, 1 or 2, of the left (d=0) or right (d=1) edge.
func (n *Node[K, S]) RankDiff(d int) int {
	if n.rd2[d] {
		return 2
	}
	return 1
}

// dir of n under its parent.
func (n *Node[K, S]) dir() int {
	if n.parent.ch[right] == n {
		return right
	}
	return left
}

// recompute sz and sum of n from its children, whose aggregates must be correct.
// Time: O(1)
func (n *Node[K, S]) recompute() {
	n.sum, n.sz = n.key, 1
	for _, c := range n.ch {
		if c != nil {
			n.sum += c.sum
			n.sz += c.sz
		}
	}
}

// reset n to the state NewNode returns.
func (n *Node[K, S]) reset() {
	n.ch[left], n.ch[right], n.parent = nil, nil, nil
	n.rd2[left], n.rd2[right] = false, false
	n.sum, n.sz = n.key, 1
	n.owner = nil
}

// rotate lifts pivot=x.ch[d] into the position of x. pivot's 1-d subtree moves to x.ch[d],
// and x becomes pivot's 1-d child. Only x is recomputed, pivot's aggregates are left to the caller.
// Flags are left to the caller too.
// Time: O(1); Space: O(1)
func (u *WAVLTree[K, S]) rotate(x *Node[K, S], d int) *Node[K, S] {
	pivot := x.ch[d]
	if x.ch[d] = pivot.ch[1-d]; x.ch[d] != nil {
		x.ch[d].parent = x
	}
	if pivot.parent = x.parent; pivot.parent == nil {
		u.root = pivot
	} else {
		pivot.parent.ch[x.dir()] = pivot
	}
	pivot.ch[1-d] = x
	x.parent = pivot
	x.recompute()
	return pivot
}
