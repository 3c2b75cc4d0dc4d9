package stress

import (
	"errors"
	"fmt"
)

// Config of a randomized run.
type Config struct {
	// Number of random operations.
	Ops int
	// Seed of the random source.
	Seed int64
	// Keys are drawn from [0, KeyRange).
	KeyRange int64
	// Below MinLive nodes, the next operation is always an insertion. An empty tree is
	// always inserted into.
	MinLive int
	// At or above MaxLive nodes, the next operation is always a removal. Must be positive.
	MaxLive int
	// The tree is checked against the reference every CheckEvery operations.
	CheckEvery int
	// Verify the tree after every removal while draining it.
	VerifyDrain bool
}

func DefaultConfig() Config {
	return Config{
		Ops:         100000,
		Seed:        42,
		KeyRange:    100000,
		MinLive:     5,
		MaxLive:     1000,
		CheckEvery:  100,
		VerifyDrain: true,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Ops < 0 {
		errs = append(errs, fmt.Errorf("ops must not be negative: %d", c.Ops))
	}
	if c.KeyRange < 1 {
		errs = append(errs, fmt.Errorf("key range must be positive: %d", c.KeyRange))
	}
	if c.MinLive < 0 || c.MaxLive < max(c.MinLive, 1) {
		errs = append(errs, fmt.Errorf("invalid live range [%d, %d]", c.MinLive, c.MaxLive))
	}
	if c.CheckEvery < 1 {
		errs = append(errs, fmt.Errorf("check interval must be positive: %d", c.CheckEvery))
	}
	return errors.Join(errs...)
}
