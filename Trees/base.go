package Trees

import "github.com/g-m-twostay/go-wavl/Queues"

// Find [Tree.Find]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Find(k K) *Node[K, S] {
	for cur := u.root; cur != nil; {
		if k < cur.key {
			cur = cur.ch[left]
		} else if k > cur.key {
			cur = cur.ch[right]
		} else {
			return cur
		}
	}
	return nil
}

// Has [Tree.Has]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Has(k K) bool {
	return u.Find(k) != nil
}

// Min [Tree.Min]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Min() *Node[K, S] {
	return u.root.extreme(left)
}

// Max [Tree.Max]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Max() *Node[K, S] {
	return u.root.extreme(right)
}

// extreme descends from n towards d until there's no child.
func (n *Node[K, S]) extreme(d int) *Node[K, S] {
	if n == nil {
		return nil
	}
	for n.ch[d] != nil {
		n = n.ch[d]
	}
	return n
}

// step returns the neighbor of n in the direction d of the in-order.
func (n *Node[K, S]) step(d int) *Node[K, S] {
	if n.ch[d] != nil {
		return n.ch[d].extreme(1 - d)
	}
	for n.parent != nil && n.dir() == d {
		n = n.parent
	}
	return n.parent
}

// Successor [Tree.Successor]
// Panics with ErrNotMember if n isn't in u.
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Successor(n *Node[K, S]) *Node[K, S] {
	if n.owner != u {
		panic(&PreconditionError{Op: "successor", Key: n.key, Err: ErrNotMember})
	}
	return n.step(right)
}

// Predecessor [Tree.Predecessor]
// Panics with ErrNotMember if n isn't in u.
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Predecessor(n *Node[K, S]) *Node[K, S] {
	if n.owner != u {
		panic(&PreconditionError{Op: "predecessor", Key: n.key, Err: ErrNotMember})
	}
	return n.step(left)
}

func (n *Node[K, S]) size() S {
	if n == nil {
		return 0
	}
	return n.sz
}

func (n *Node[K, S]) total() K {
	if n == nil {
		return 0
	}
	return n.sum
}

// Rank [Tree.Rank]
// The result doesn't depend on whether k is in the tree.
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Rank(k K) S {
	var ra S = 0
	for cur := u.root; cur != nil; {
		if k <= cur.key {
			cur = cur.ch[left]
		} else {
			ra += cur.ch[left].size() + 1
			cur = cur.ch[right]
		}
	}
	return ra
}

// SumLess returns the sum of the keys strictly less than k.
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) SumLess(k K) K {
	var s K = 0
	for cur := u.root; cur != nil; {
		if k <= cur.key {
			cur = cur.ch[left]
		} else {
			s += cur.ch[left].total() + cur.key
			cur = cur.ch[right]
		}
	}
	return s
}

// SelectNode returns the node holding the k-th smallest key, starting from 0, or nil if k>=Size().
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) SelectNode(k S) *Node[K, S] {
	for cur := u.root; cur != nil; {
		if lsz := cur.ch[left].size(); k < lsz {
			cur = cur.ch[left]
		} else if k > lsz {
			k -= lsz + 1
			cur = cur.ch[right]
		} else {
			return cur
		}
	}
	return nil
}

// Select [Tree.Select]
// Returns (x,true) if k<Size(), otherwise (0,false).
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Select(k S) (K, bool) {
	if n := u.SelectNode(k); n != nil {
		return n.key, true
	}
	return 0, false
}

// Prev [Tree.Prev]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Prev(k K) (K, bool) {
	var p *Node[K, S]
	for cur := u.root; cur != nil; {
		if k <= cur.key {
			cur = cur.ch[left]
		} else {
			p = cur
			cur = cur.ch[right]
		}
	}
	if p == nil {
		return 0, false
	}
	return p.key, true
}

// Next [Tree.Next]
// Time: O(D); Space: O(1)
func (u *WAVLTree[K, S]) Next(k K) (K, bool) {
	var p *Node[K, S]
	for cur := u.root; cur != nil; {
		if k >= cur.key {
			cur = cur.ch[right]
		} else {
			p = cur
			cur = cur.ch[left]
		}
	}
	if p == nil {
		return 0, false
	}
	return p.key, true
}

// InOrder [Tree.InOrder]
// Follows parent links, so no extra memory is used.
// Time: O(n) in total; Space: O(1)
func (u *WAVLTree[K, S]) InOrder(f func(*Node[K, S]) bool) {
	for cur := u.Min(); cur != nil; cur = cur.step(right) {
		if !f(cur) {
			return
		}
	}
}

// LevelOrder calls f on every node, level by level from the root and left to right within a
// level, with the node's depth (the root is at 1). Iteration stops when f returns false.
// Time: O(n); Space: O(n)
func (u *WAVLTree[K, S]) LevelOrder(f func(n *Node[K, S], depth int) bool) {
	if u.root == nil {
		return
	}
	type item struct {
		n *Node[K, S]
		d int
	}
	q := Queues.MakeArrayQueue[item](16)
	q.Push(item{u.root, 1})
	for it, ok := q.Pop(); ok; it, ok = q.Pop() {
		if !f(it.n, it.d) {
			return
		}
		for _, c := range it.n.ch {
			if c != nil {
				q.Push(item{c, it.d + 1})
			}
		}
	}
}

// Height of the tree, the number of nodes on the longest path from the root. 0 if empty.
// Time: O(n); Space: O(n)
func (u *WAVLTree[K, S]) Height() (h int) {
	u.LevelOrder(func(_ *Node[K, S], d int) bool {
		h = d
		return true
	})
	return
}
