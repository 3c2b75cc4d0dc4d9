// Package stress drives a WAVL tree through randomized insertions and removals and
// compares it with a B-tree holding the same keys.
package stress

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/btree"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/g-m-twostay/go-wavl/Trees"
)

type (
	tree = Trees.WAVLTree[int64, uint32]
	node = Trees.Node[int64, uint32]
)

// DivergenceError is returned when the tree breaks an invariant or disagrees with the reference.
type DivergenceError struct {
	Seed int64
	// Op is the index of the last operation, -1 while draining.
	Op  int
	Err error
}

func (e *DivergenceError) Error() string {
	if e.Op < 0 {
		return fmt.Sprintf("seed %d, drain: %v", e.Seed, e.Err)
	}
	return fmt.Sprintf("seed %d, op %d: %v", e.Seed, e.Op, e.Err)
}

func (e *DivergenceError) Unwrap() error {
	return e.Err
}

// Run performs cfg.Ops random operations and then removes every remaining node.
// A cancelled ctx stops the run between operations.
func Run(ctx context.Context, cfg Config, log zerolog.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log = log.With().Int64("seed", cfg.Seed).Logger()
	start := time.Now()
	rnd := rand.New(rand.NewSource(cfg.Seed))
	t := Trees.New[int64, uint32]()
	ref := btree.NewOrderedG[int64](16)
	rep := &Report{Seed: cfg.Seed, Ops: cfg.Ops}
	var live []*node

	for op := range cfg.Ops {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if len(live) < max(cfg.MinLive, 1) || (len(live) < cfg.MaxLive && rnd.Intn(2) == 0) {
			n := Trees.NewNode[int64, uint32](rnd.Int63n(cfg.KeyRange))
			_, had := ref.ReplaceOrInsert(n.Key())
			if t.Insert(n) == had {
				return rep, &DivergenceError{cfg.Seed, op, fmt.Errorf("insert %d: duplicate=%v in the reference only", n.Key(), had)}
			}
			if had {
				rep.Duplicates++
			} else {
				rep.Inserts++
				live = append(live, n)
			}
		} else {
			i := rnd.Intn(len(live))
			n := live[i]
			t.Remove(n)
			ref.Delete(n.Key())
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			rep.Removes++
		}
		rep.MaxSize = max(rep.MaxSize, len(live))
		if op%cfg.CheckEvery == 0 {
			if err := compare(t, ref, rnd, cfg.KeyRange); err != nil {
				return rep, &DivergenceError{cfg.Seed, op, err}
			}
			rep.Checks++
			h := t.Height()
			rep.MaxHeight = max(rep.MaxHeight, h)
			log.Trace().Int("op", op).Uint32("size", t.Size()).Int("height", h).Msg("checked")
		}
	}
	if err := compare(t, ref, rnd, cfg.KeyRange); err != nil {
		return rep, &DivergenceError{cfg.Seed, cfg.Ops, err}
	}
	rep.Checks++
	rep.FinalSize = len(live)
	log.Debug().Int("size", len(live)).Msg("draining")

	for len(live) > 0 {
		n := live[len(live)-1]
		live = live[:len(live)-1]
		t.Remove(n)
		if cfg.VerifyDrain {
			if err := t.Verify(); err != nil {
				return rep, &DivergenceError{cfg.Seed, -1, err}
			}
		}
	}
	if t.Size() != 0 || t.Root() != nil {
		return rep, &DivergenceError{cfg.Seed, -1, fmt.Errorf("%d nodes left after draining", t.Size())}
	}
	rep.Elapsed = time.Since(start)
	log.Info().Int("ops", rep.Ops).Int("inserts", rep.Inserts).Int("removes", rep.Removes).
		Int("max_height", rep.MaxHeight).Dur("elapsed", rep.Elapsed).Msg("stress run passed")
	return rep, nil
}

// RunAll runs cfg once for every seed, with at most parallel runs at a time. Every run
// owns its own tree. Reports are in the order of seeds; the first failure cancels the others.
func RunAll(ctx context.Context, cfg Config, seeds []int64, parallel int, log zerolog.Logger) ([]*Report, error) {
	reps := make([]*Report, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, seed := range seeds {
		c := cfg
		c.Seed = seed
		g.Go(func() error {
			rep, err := Run(gctx, c, log)
			reps[i] = rep
			return err
		})
	}
	return reps, g.Wait()
}

// compare t with ref: invariants, size, sum, contents and a few random queries.
func compare(t *tree, ref *btree.BTreeG[int64], rnd *rand.Rand, keyRange int64) error {
	if err := t.Verify(); err != nil {
		return err
	}
	if int(t.Size()) != ref.Len() {
		return fmt.Errorf("size %d, reference has %d", t.Size(), ref.Len())
	}
	want := make([]int64, 0, ref.Len())
	var sum int64
	ref.Ascend(func(k int64) bool {
		want = append(want, k)
		sum += k
		return true
	})
	if t.Sum() != sum {
		return fmt.Errorf("sum %d, reference has %d", t.Sum(), sum)
	}
	got := make([]int64, 0, t.Size())
	t.InOrder(func(n *node) bool {
		got = append(got, n.Key())
		return true
	})
	if !slices.Equal(got, want) {
		return fmt.Errorf("contents differ from the reference")
	}
	for range 8 {
		k := rnd.Int63n(keyRange+2) - 1
		r, _ := slices.BinarySearch(want, k)
		if rk := t.Rank(k); int(rk) != r {
			return fmt.Errorf("rank(%d)=%d, reference has %d", k, rk, r)
		}
		if p, ok := t.Prev(k); ok != (r > 0) || (ok && p != want[r-1]) {
			return fmt.Errorf("prev(%d)=%d,%v", k, p, ok)
		}
		j, _ := slices.BinarySearch(want, k+1)
		if n, ok := t.Next(k); ok != (j < len(want)) || (ok && n != want[j]) {
			return fmt.Errorf("next(%d)=%d,%v", k, n, ok)
		}
		if len(want) > 0 {
			x := want[rnd.Intn(len(want))]
			if s, ok := t.Select(t.Rank(x)); !ok || s != x {
				return fmt.Errorf("select(rank(%d))=%d,%v", x, s, ok)
			}
		}
	}
	return nil
}
