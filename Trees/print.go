package Trees

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the tree in key order, one node per line, indented by two spaces per
// level, as "key (l,r)" where l and r are the rank differences of the edges.
// Time: O(n); Space: O(D)
func (u *WAVLTree[K, S]) Fprint(w io.Writer) error {
	type frame struct {
		n *Node[K, S]
		d int
	}
	var st []frame
	for cur, d := u.root, 0; cur != nil || len(st) > 0; {
		for ; cur != nil; cur, d = cur.ch[left], d+1 {
			st = append(st, frame{cur, d})
		}
		top := st[len(st)-1]
		st = st[:len(st)-1]
		n := top.n
		if _, err := fmt.Fprintf(w, "%s%v (%d,%d)\n", strings.Repeat("  ", top.d), n.key, n.RankDiff(left), n.RankDiff(right)); err != nil {
			return err
		}
		cur, d = n.ch[right], top.d+1
	}
	return nil
}

func (u *WAVLTree[K, S]) String() string {
	var sb strings.Builder
	_ = u.Fprint(&sb)
	return sb.String()
}
