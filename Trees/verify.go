package Trees

// Verify recomputes the rank of every node from the rank differences of its edges, together
// with the size and sum aggregates, the key order and the parent links, and reports the first
// mismatch. It never changes the tree.
// Time: O(n); Space: O(D)
func (u *WAVLTree[K, S]) Verify() error {
	if u.root != nil && u.root.parent != nil {
		return &VerifyError{u.root.key, "root has a parent"}
	}
	_, err := u.verify(u.root, nil, nil)
	return err
}

// Corrupt [Tree.Corrupt]
func (u *WAVLTree[K, S]) Corrupt() bool {
	return u.Verify() != nil
}

// verify the subtree at n whose keys must be in (lo,hi) and return its rank.
func (u *WAVLTree[K, S]) verify(n *Node[K, S], lo, hi *K) (int, error) {
	if n == nil {
		return -1, nil
	}
	if n.owner != u {
		return 0, &VerifyError{n.key, "owned by another tree"}
	}
	if (lo != nil && n.key <= *lo) || (hi != nil && n.key >= *hi) {
		return 0, &VerifyError{n.key, "key out of order"}
	}
	var rk [2]int
	for d, c := range n.ch {
		if c != nil && c.parent != n {
			return 0, &VerifyError{c.key, "wrong parent"}
		}
		l, h := lo, hi
		if d == left {
			h = &n.key
		} else {
			l = &n.key
		}
		r, err := u.verify(c, l, h)
		if err != nil {
			return 0, err
		}
		rk[d] = r + n.RankDiff(d)
	}
	if rk[left] != rk[right] {
		return 0, &VerifyError{n.key, "rank mismatch"}
	}
	if n.ch[left] == nil && n.ch[right] == nil && (n.rd2[left] || n.rd2[right]) {
		return 0, &VerifyError{n.key, "leaf must be (1,1)"}
	}
	sum, sz := n.key, S(1)
	for _, c := range n.ch {
		if c != nil {
			sum += c.sum
			sz += c.sz
		}
	}
	if n.sum != sum {
		return 0, &VerifyError{n.key, "sum mismatch"}
	}
	if n.sz != sz {
		return 0, &VerifyError{n.key, "size mismatch"}
	}
	return rk[left], nil
}
