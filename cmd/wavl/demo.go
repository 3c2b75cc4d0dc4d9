package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-wavl/Trees"
)

type demoConfiguration struct {
	Base *baseConfiguration
	N    int
	Seed int64
}

func newDemoCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &demoConfiguration{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "demo",
		Short: "Prints a small tree and a few order statistics queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.N < 0 {
				return fmt.Errorf("n must not be negative: %d", config.N)
			}
			return runDemo(cmd.OutOrStdout(), config)
		},
	}
	cmd.Flags().IntVar(&config.N, "n", 20, "the keys 1..n are inserted in random order")
	cmd.Flags().Int64Var(&config.Seed, "seed", 1, "seed of the shuffle")
	return cmd
}

func runDemo(w io.Writer, config *demoConfiguration) error {
	log := config.Base.log
	t := Trees.New[int, uint32]()
	nodes := make(map[int]*Trees.Node[int, uint32], config.N)
	for _, i := range rand.New(rand.NewSource(config.Seed)).Perm(config.N) {
		n := Trees.NewNode[int, uint32](i + 1)
		nodes[i+1] = n
		t.Insert(n)
	}
	log.Debug().Int("n", config.N).Int("height", t.Height()).Msg("tree built")
	if err := printTree(w, t); err != nil {
		return err
	}

	var removed []int
	for _, k := range []int{5, 10, 15} {
		if n, ok := nodes[k]; ok {
			t.Remove(n)
			removed = append(removed, k)
		}
	}
	if len(removed) > 0 {
		fmt.Fprintf(w, "\nafter removing %v:\n", removed)
		if err := printTree(w, t); err != nil {
			return err
		}
	}

	q := Trees.New[int, uint32]()
	for _, k := range []int{10, 20, 30, 40, 50} {
		q.Insert(Trees.NewNode[int, uint32](k))
	}
	fmt.Fprintf(w, "\nqueries on %v:\n", keys(q))
	for _, k := range []int{25, 30} {
		fmt.Fprintf(w, "rank(%d) = %d\n", k, q.Rank(k))
	}
	for _, r := range []uint32{2, 5} {
		k, ok := q.Select(r)
		fmt.Fprintf(w, "select(%d) = %s\n", r, optional(k, ok))
	}
	for _, k := range []int{21, 10} {
		p, ok := q.Prev(k)
		fmt.Fprintf(w, "prev(%d) = %s\n", k, optional(p, ok))
	}
	for _, k := range []int{15, 50} {
		n, ok := q.Next(k)
		fmt.Fprintf(w, "next(%d) = %s\n", k, optional(n, ok))
	}
	return q.Verify()
}

func printTree(w io.Writer, t *Trees.WAVLTree[int, uint32]) error {
	if err := t.Fprint(w); err != nil {
		return err
	}
	verified := "ok"
	err := t.Verify()
	if err != nil {
		verified = err.Error()
	}
	fmt.Fprintf(w, "size %d, sum %d, height %d, verify: %s\n", t.Size(), t.Sum(), t.Height(), verified)
	return err
}

func keys(t *Trees.WAVLTree[int, uint32]) []int {
	var ks []int
	t.InOrder(func(n *Trees.Node[int, uint32]) bool {
		ks = append(ks, n.Key())
		return true
	})
	return ks
}

func optional(k int, ok bool) string {
	if !ok {
		return "none"
	}
	return fmt.Sprint(k)
}
