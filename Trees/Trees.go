// Package Trees implements a WAVL (weak AVL) rank-balanced binary search tree whose
// nodes carry subtree size and key sum aggregates, so that order statistics
// (rank, select, predecessor and successor by value) are answered in O(log n).
//
// Nodes are allocated and owned by the caller. The tree only links and unlinks them.
// A tree isn't safe for concurrent use; guard it with a single lock if it's shared.
package Trees

import "golang.org/x/exp/constraints"

// Number is the set of key types. Keys must be totally ordered, so NaN isn't a valid key.
type Number interface {
	constraints.Integer | constraints.Float
}

// Tree represents an ordered set of caller owned nodes.
// Receivers that has a bool as a second return value indicates whether
// the first return value is defined. Receivers returning a *Node return nil when
// there's no such node.
// Mutations panic with *PreconditionError when called with a node in the wrong state,
// as continuing would corrupt the tree.
type Tree[K Number, S constraints.Unsigned] interface {
	//Insert n to the Tree. Returns false if a node with the same key is already present.
	Insert(n *Node[K, S]) bool
	//Remove n from the Tree. n must belong to the Tree.
	Remove(n *Node[K, S])
	//Find the node with key k.
	Find(k K) *Node[K, S]
	//Has a node with key k.
	Has(k K) bool
	//Min is the node with the smallest key.
	Min() *Node[K, S]
	//Max is the node with the largest key.
	Max() *Node[K, S]
	//Successor of n in key order.
	Successor(n *Node[K, S]) *Node[K, S]
	//Predecessor of n in key order.
	Predecessor(n *Node[K, S]) *Node[K, S]
	//Rank is the number of keys strictly less than k.
	//0<=r<=Size()
	Rank(k K) S
	//Select the k-th smallest key, starting from 0.
	Select(k S) (K, bool)
	//Prev returns the greatest key less than k.
	Prev(k K) (K, bool)
	//Next returns the smallest key greater than k.
	Next(k K) (K, bool)
	//Size of the tree.
	Size() S
	//Sum of all keys.
	Sum() K
	//InOrder calls f on the nodes in ascending key order until f returns false.
	//The tree mustn't be modified during the iteration.
	InOrder(f func(*Node[K, S]) bool)
	//Corrupt returns whether the tree has corrupt structures, when the rank, size, sum,
	//order or parent of some node violates the properties of the tree.
	Corrupt() bool
}

var _ Tree[int, uint] = (*WAVLTree[int, uint])(nil)
