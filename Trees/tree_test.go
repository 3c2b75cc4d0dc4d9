package Trees

import (
	"math/rand"
	"slices"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

const (
	tAddN        uint16 = 40000
	tAddValRange        = 80000
)

func fill(t *testing.T, tree *WAVLTree[int, uint16], a []int) map[int]*Node[int, uint16] {
	t.Helper()
	content := make(map[int]*Node[int, uint16])
	for _, b := range a {
		n := NewNode[int, uint16](b)
		_, in := content[b]
		if c := tree.Insert(n); !in && c == false {
			t.Fatalf("failed to insert key %v", b)
		} else if in && c == true {
			t.Fatalf("inserted duplicate key %v", b)
		}
		if !in {
			content[b] = n
		}
	}
	return content
}

func randomKeys(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = rg.Intn(tAddValRange)
	}
	return a
}

func TestWAVLTree_Insert(t *testing.T) {
	tree := New[int, uint16]()
	content := fill(t, tree, randomKeys(int(tAddN)))
	if int(tree.Size()) != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	t.Logf("height: %d, size: %d.\n", tree.Height(), tree.Size())
	for k, n := range content {
		if tree.Find(k) != n {
			t.Errorf("tree does not have key %v", k)
		}
	}
	tree.InOrder(func(n *Node[int, uint16]) bool {
		if _, in := content[n.Key()]; !in {
			t.Errorf("tree has non existent key %v", n.Key())
		}
		return true
	})
}

func TestWAVLTree_Remove(t *testing.T) {
	tree := New[int, uint16]()
	a := randomKeys(int(tAddN))
	content := fill(t, tree, a)
	for i := range rg.Intn(len(a)) {
		n, in := content[a[i]]
		if !in {
			continue
		}
		tree.Remove(n)
		if n.Attached() || n.Parent() != nil || n.Left() != nil || n.Right() != nil {
			t.Fatalf("removed node %v is still linked", a[i])
		}
		if n.Size() != 1 || n.Sum() != a[i] {
			t.Fatalf("removed node %v has aggregates %d %d", a[i], n.Size(), n.Sum())
		}
		if tree.Has(a[i]) {
			t.Errorf("tree still has key %v", a[i])
		}
		delete(content, a[i])
	}
	if int(tree.Size()) != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	t.Logf("height: %d, size: %d.\n", tree.Height(), tree.Size())
	for k := range content {
		if !tree.Has(k) {
			t.Errorf("tree does not have key %v", k)
		}
	}
}

func TestWAVLTree_InsertRemove(t *testing.T) {
	tree := New[int, uint16]()
	a := randomKeys(int(tAddN))
	content := fill(t, tree, a)
	for i := range rg.Intn(len(a)) {
		if n, in := content[a[i]]; in {
			tree.Remove(n)
			delete(content, a[i])
		}
	}
	// fresh nodes go in; the ones whose keys are still present must be rejected.
	b := randomKeys(rg.Intn(int(tAddN)))
	for _, k := range b {
		n := NewNode[int, uint16](k)
		_, in := content[k]
		if c := tree.Insert(n); c == in {
			t.Fatalf("insert of key %v returned %v, key present: %v", k, c, in)
		}
		if in {
			if n.Attached() {
				t.Fatalf("rejected node %v is attached", k)
			}
		} else {
			content[k] = n
		}
	}
	for i := range rg.Intn(len(b)) {
		if n, in := content[b[i]]; in {
			tree.Remove(n)
			delete(content, b[i])
		}
	}
	if int(tree.Size()) != len(content) {
		t.Errorf("tree size is %d, want %d", tree.Size(), len(content))
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
	t.Logf("height: %d, size: %d.\n", tree.Height(), tree.Size())
	sum := 0
	for k := range content {
		sum += k
		if !tree.Has(k) {
			t.Errorf("tree does not have key %v", k)
		}
	}
	if tree.Sum() != sum {
		t.Errorf("tree sum is %d, want %d", tree.Sum(), sum)
	}
}

func TestWAVLTree_InOrder(t *testing.T) {
	tree := New[int, uint16]()
	content := fill(t, tree, randomKeys(int(tAddN)))
	for range 10 {
		var s []int
		tree.InOrder(func(n *Node[int, uint16]) bool {
			s = append(s, n.Key())
			return rg.Intn(int(tree.Size()/2)) != 0
		})
		if !slices.IsSorted(s) {
			t.Errorf("sorted is not sorted")
		}
	}
	var s []int
	tree.InOrder(func(n *Node[int, uint16]) bool {
		s = append(s, n.Key())
		return true
	})
	if int(tree.Size()) != len(s) {
		t.Errorf("sorted size is %d, want %d", len(s), tree.Size())
	}
	for k := range content {
		if _, found := slices.BinarySearch(s, k); !found {
			t.Errorf("sorted does not have key %v", k)
		}
	}
	if !slices.IsSorted(s) {
		t.Errorf("sorted is not sorted")
	}
}

func TestWAVLTree_Walk(t *testing.T) {
	tree := New[int, uint16]()
	fill(t, tree, randomKeys(1000))
	var s []int
	for n := tree.Min(); n != nil; n = tree.Successor(n) {
		s = append(s, n.Key())
	}
	if len(s) != int(tree.Size()) || !slices.IsSorted(s) {
		t.Fatalf("successor walk gave %d sorted=%v keys", len(s), slices.IsSorted(s))
	}
	var r []int
	for n := tree.Max(); n != nil; n = tree.Predecessor(n) {
		r = append(r, n.Key())
	}
	slices.Reverse(r)
	if !slices.Equal(s, r) {
		t.Fatal("predecessor walk differs from successor walk")
	}
}

func TestWAVLTree_Select(t *testing.T) {
	tree := New[int, uint16]()
	content := fill(t, tree, randomKeys(int(tAddN)))
	sorted := make([]int, 0, len(content))
	for k := range content {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)
	for i, v := range sorted {
		a, ok := tree.Select(uint16(i))
		if !ok {
			t.Fatalf("nothing at rank k %d\n", i)
		}
		if a != v {
			t.Fatalf("wrong rank k %d, want %d has %d\n", i, v, a)
		}
		if r := tree.Rank(a); r != uint16(i) {
			t.Fatalf("rank of selected %d is %d, want %d", a, r, i)
		}
	}
	if _, ok := tree.Select(uint16(len(sorted))); ok {
		t.Fatal("select past the end found a key")
	}
}

func sortedNodes(keys []int) []*Node[int, uint16] {
	ns := make([]*Node[int, uint16], len(keys))
	for i, k := range keys {
		ns[i] = NewNode[int, uint16](k)
	}
	return ns
}

func TestWAVLTree_From(t *testing.T) {
	content := make([]int, tAddN)
	{
		all := make(map[int]struct{}, len(content))
		for i := 0; i < len(content); {
			a := rg.Intn(tAddValRange)
			if _, in := all[a]; !in {
				all[a] = struct{}{}
				content[i] = a
				i++
			}
		}
	}
	slices.Sort(content)
	for _, l := range []int{0, 1, 2, 3, 7, 8, 100, len(content)} {
		tree := From(sortedNodes(content[:l]), true)
		if tree.Size() != uint16(l) {
			t.Fatalf("tree size is %d, want %d", tree.Size(), l)
		}
		if err := tree.Verify(); err != nil {
			t.Fatalf("size %d: %v", l, err)
		}
		s := make([]int, 0, l)
		tree.InOrder(func(n *Node[int, uint16]) bool {
			s = append(s, n.Key())
			return true
		})
		if !slices.Equal(s, content[:l]) {
			t.Fatalf("wrong values for size %d", l)
		}
		t.Logf("height: %d, size: %d.\n", tree.Height(), tree.Size())
	}
	// a built tree keeps balancing like any other.
	tree := From(sortedNodes(content), false)
	for i := 0; i < len(content); i += 3 {
		tree.Remove(tree.Find(content[i]))
	}
	if err := tree.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestWAVLTree_FromUnsorted(t *testing.T) {
	defer func() {
		e, ok := recover().(InvalidSliceError[int])
		if !ok {
			t.Fatalf("expected InvalidSliceError, got %v", e)
		}
		if e.Index != 2 || e.Prev != 5 || e.Cur != 5 {
			t.Fatalf("wrong error %v", e)
		}
	}()
	From(sortedNodes([]int{1, 5, 5, 9}), true)
}

func TestWAVLTree_Rank(t *testing.T) {
	content := make([]int, tAddN)
	for i := range int(tAddN) {
		content[i] = i * 2
	}
	tree := From(sortedNodes(content), true)
	for i, v := range content {
		if a := tree.Rank(v); a != uint16(i) {
			t.Fatalf("1wrong rank %d %d", a, i)
		}
		if a := tree.Rank(v + 1); a != uint16(i)+1 {
			t.Fatalf("2wrong rank %d %d", a, i)
		}
	}
	if a := tree.Rank(-1); a != 0 {
		t.Fatalf("wrong rank %d", a)
	}
	if a := tree.Rank(tAddValRange + 1); a != tree.Size() {
		t.Fatalf("wrong rank %d", a)
	}
}

func TestWAVLTree_PrevNext(t *testing.T) {
	content := make([]int, tAddN+2)
	content[0] = -1
	content[tAddN+1] = int(tAddN) * 3
	for i := uint16(1); i <= tAddN; i++ {
		content[i] = int(i) * 2
	}
	tree := New[int, uint16]()
	for _, i := range rg.Perm(len(content)) {
		tree.Insert(NewNode[int, uint16](content[i]))
	}
	for i := uint16(1); i <= tAddN; i++ {
		if a, _ := tree.Prev(content[i]); a != content[i-1] {
			t.Fatalf("wrong predecessor %d %d", a, content[i-1])
		}
		if a, _ := tree.Next(content[i]); a != content[i+1] {
			t.Fatalf("wrong successor %d %d", a, content[i+1])
		}
		if a, _ := tree.Prev(content[i] + 1); a != content[i] {
			t.Fatalf("wrong predecessor %d %d", a, content[i])
		}
		if a, _ := tree.Next(content[i] - 1); a != content[i] {
			t.Fatalf("wrong successor %d %d", a, content[i])
		}
	}
	if _, ok := tree.Prev(content[0]); ok {
		t.Fatal("shouldn't have predecessor")
	}
	if _, ok := tree.Next(content[len(content)-1]); ok {
		t.Fatal("shouldn't have successor")
	}
}

func TestWAVLTree_SumLess(t *testing.T) {
	tree := New[int, uint16]()
	content := fill(t, tree, randomKeys(2000))
	sorted := make([]int, 0, len(content))
	for k := range content {
		sorted = append(sorted, k)
	}
	slices.Sort(sorted)
	prefix := 0
	for _, k := range sorted {
		if s := tree.SumLess(k); s != prefix {
			t.Fatalf("sum below %d is %d, want %d", k, s, prefix)
		}
		prefix += k
	}
	if s := tree.SumLess(tAddValRange); s != tree.Sum() {
		t.Fatalf("sum below everything is %d, want %d", s, tree.Sum())
	}
}

func TestWAVLTree_Clear(t *testing.T) {
	tree := New[int, uint16]()
	content := fill(t, tree, randomKeys(5000))
	tree.Clear()
	if tree.Size() != 0 || tree.Root() != nil || tree.Min() != nil {
		t.Fatal("tree isn't empty after Clear")
	}
	other := New[int, uint16]()
	for k, n := range content {
		if n.Attached() || n.Parent() != nil || n.Left() != nil || n.Right() != nil {
			t.Fatalf("node %d is still linked", k)
		}
		if !other.Insert(n) {
			t.Fatalf("can't reinsert %d", k)
		}
	}
	if err := other.Verify(); err != nil {
		t.Fatal(err)
	}
}
