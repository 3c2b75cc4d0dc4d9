package Trees

import (
	"golang.org/x/exp/constraints"
)

// WAVLTree is a binary search tree with no repeated keys. It maintains
// balance through rank differences: every edge from a node to a child has a rank
// difference of 1 or 2, a missing child has rank -1, and a leaf has rank 0.
// Insertion rebalances by promotions and at most one single or double rotation;
// deletion by demotions and at most one single or double rotation.
// K is the type of the keys, S is the type of the variables used for
// storing the sizes of subtrees, it should be a wide upperbound for the size of the tree.
// The height of the tree is at most 2*log2(n), and at most 1.44*log2(n) if there
// were no deletions.
// The zero value is an empty tree.
type WAVLTree[K Number, S constraints.Unsigned] struct {
	root *Node[K, S]
}

// New returns an empty tree.
func New[K Number, S constraints.Unsigned]() *WAVLTree[K, S] {
	return &WAVLTree[K, S]{}
}

// From builds a WAVLTree using the given nodes. This is faster than
// repeatedly calling Insert.
// The nodes must be unattached and sorted in ascending order of keys without
// duplicates. If safe==true, the order is checked and From panics with InvalidSliceError
// if it is broken. Otherwise it is up to the caller to ensure the order(otherwise the tree
// will be corrupt). Attached nodes always cause a panic with ErrAttached.
// Time: O(n).
func From[K Number, S constraints.Unsigned](nodes []*Node[K, S], safe bool) *WAVLTree[K, S] {
	u := New[K, S]()
	for i, n := range nodes {
		if n.busy() {
			panic(&PreconditionError{Op: "from", Key: n.key, Err: ErrAttached})
		}
		if safe && i > 0 && !(nodes[i-1].key < n.key) {
			panic(InvalidSliceError[K]{Index: i, Prev: nodes[i-1].key, Cur: n.key})
		}
	}
	//returns the subtree and its rank.
	var build func([]*Node[K, S]) (*Node[K, S], int)
	build = func(s []*Node[K, S]) (*Node[K, S], int) {
		if len(s) == 0 {
			return nil, -1
		}
		mid := len(s) >> 1
		n := s[mid]
		l, lr := build(s[:mid])
		r, rr := build(s[mid+1:])
		rk := max(lr, rr) + 1
		n.ch[left], n.ch[right] = l, r
		n.rd2[left], n.rd2[right] = rk-lr == 2, rk-rr == 2
		for _, c := range n.ch {
			if c != nil {
				c.parent = n
			}
		}
		n.owner = u
		n.recompute()
		return n, rk
	}
	u.root, _ = build(nodes)
	return u
}

// busy means n can't be inserted.
func (n *Node[K, S]) busy() bool {
	return n.owner != nil || n.parent != nil || n.ch[left] != nil || n.ch[right] != nil
}

// Size returns the size of the tree.
// Time: O(1); Space: O(1)
func (u *WAVLTree[K, S]) Size() S {
	if u.root == nil {
		return 0
	}
	return u.root.sz
}

// Sum returns the sum of all keys in the tree.
// Time: O(1); Space: O(1)
func (u *WAVLTree[K, S]) Sum() K {
	if u.root == nil {
		return 0
	}
	return u.root.sum
}

func (u *WAVLTree[K, S]) Root() *Node[K, S] {
	return u.root
}

// Clear detaches every node from the tree. The nodes can be inserted again afterwards.
// Uses an explicit stack, so the cost is O(size) time and O(height) space.
func (u *WAVLTree[K, S]) Clear() {
	var st []*Node[K, S]
	if u.root != nil {
		st = append(st, u.root)
	}
	for len(st) > 0 {
		n := st[len(st)-1]
		st = st[:len(st)-1]
		for _, c := range n.ch {
			if c != nil {
				st = append(st, c)
			}
		}
		n.reset()
	}
	u.root = nil
}

// Insert [Tree.Insert].
// n must be unattached, otherwise Insert panics with ErrAttached. When a node with the
// same key is present, n is left untouched and false is returned.
// Time: O(D)
func (u *WAVLTree[K, S]) Insert(n *Node[K, S]) bool {
	if n.busy() {
		panic(&PreconditionError{Op: "insert", Key: n.key, Err: ErrAttached})
	}
	if u.root == nil {
		n.reset()
		n.owner, u.root = u, n
		return true
	}
	p, d := u.root, left
	for {
		if n.key < p.key {
			d = left
		} else if n.key > p.key {
			d = right
		} else {
			return false
		}
		if p.ch[d] == nil {
			break
		}
		p = p.ch[d]
	}
	n.reset()
	n.owner, n.parent, p.ch[d] = u, p, n
	u.promote(p, d)
	for c := n; c != nil; c = c.parent {
		c.recompute()
	}
	return true
}

// promote walks up from p after a leaf was attached at p.ch[d].
// Every step either absorbs the rank change at a 2-edge, promotes the parent and continues,
// or resolves a parent with rank differences (0,2) by one single or double rotation.
func (u *WAVLTree[K, S]) promote(p *Node[K, S], d int) {
	if p.rd2[d] {
		p.rd2[d] = false
		return
	}
	// p was a leaf, (1,1) becomes (1,2) and p gains a rank.
	p.rd2[1-d] = true
	x, d1 := p, d // d1 is the side of x whose child was promoted.
	for p = x.parent; p != nil; x, p = p, p.parent {
		d = x.dir()
		if p.rd2[d] {
			p.rd2[d] = false
			return
		}
		if !p.rd2[1-d] {
			p.rd2[1-d] = true
			d1 = d
			continue
		}
		// p is (0,2), x is (1,2) with its 1-edge at d1.
		p.rd2[1-d] = false
		if d1 != d {
			x.rd2[d] = false
			y := u.rotate(x, 1-d)
			if y.rd2[d] {
				x.rd2[1-d] = true
			} else if y.rd2[1-d] {
				p.rd2[d] = true
			}
		}
		u.rotate(p, d).rd2 = [2]bool{}
		return
	}
}

// Remove [Tree.Remove].
// n must belong to u, otherwise Remove panics with ErrNotMember. Afterwards, n is unattached
// and owned by the caller.
// Time: O(D)
func (u *WAVLTree[K, S]) Remove(n *Node[K, S]) {
	if u == nil || n.owner != u {
		panic(&PreconditionError{Op: "remove", Key: n.key, Err: ErrNotMember})
	}
	y := n
	if n.ch[left] != nil && n.ch[right] != nil {
		for y = n.ch[right]; y.ch[left] != nil; y = y.ch[left] {
		}
	}
	// y has at most one child x, which takes its place.
	p, x := y.parent, y.ch[left]
	if x == nil {
		x = y.ch[right]
	}
	d := left
	if p == nil {
		u.root = x
	} else {
		d = y.dir()
		p.ch[d] = x
	}
	if x != nil {
		x.parent = p
	}
	if y != n {
		// the successor takes the structural position of n, including its rank.
		y.ch, y.rd2, y.parent = n.ch, n.rd2, n.parent
		if n.parent == nil {
			u.root = y
		} else {
			n.parent.ch[n.dir()] = y
		}
		for _, c := range y.ch {
			if c != nil {
				c.parent = y
			}
		}
		if p == n {
			p = y
		}
	}
	n.reset()
	if p != nil {
		u.demote(p, d)
		for ; p != nil; p = p.parent {
			p.recompute()
		}
	}
}

// demote walks up from p after the rank of p.ch[d] dropped by one, which is also the
// case when a leaf at p.ch[d] was removed.
func (u *WAVLTree[K, S]) demote(p *Node[K, S], d int) {
	if p.ch[d] == nil && p.ch[1-d] == nil {
		// p lost its only child, it is a leaf of rank 0 now.
		p.rd2 = [2]bool{}
		x := p
		if p = x.parent; p == nil {
			return
		}
		d = x.dir()
	}
	for {
		if !p.rd2[d] {
			p.rd2[d] = true
			return
		}
		// the edge at d has rank difference 3.
		if p.rd2[1-d] {
			p.rd2[1-d] = false
		} else if s := p.ch[1-d]; s.rd2[left] && s.rd2[right] {
			s.rd2 = [2]bool{}
		} else {
			u.demoteRotate(p, d)
			return
		}
		x := p
		if p = x.parent; p == nil {
			return
		}
		d = x.dir()
	}
}

// demoteRotate resolves p with rank differences (3,1) whose sibling s=p.ch[1-d] isn't (2,2).
func (u *WAVLTree[K, S]) demoteRotate(p *Node[K, S], d int) {
	s := p.ch[1-d]
	if !s.rd2[1-d] {
		s.rd2[1-d] = true
		if s.rd2[d] {
			// p would be (2,2), so it drops one more rank.
			p.rd2[d] = false
		}
	} else {
		s.rd2[1-d] = false
		p.rd2[d] = false
		t := u.rotate(s, d)
		s.rd2[d] = t.rd2[1-d]
		p.rd2[1-d] = t.rd2[d]
		t.rd2 = [2]bool{true, true}
	}
	u.rotate(p, 1-d)
}
