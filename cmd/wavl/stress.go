package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-wavl/internal/stress"
)

type stressConfiguration struct {
	Base   *baseConfiguration
	Run    stress.Config
	Seeds  []int64
	Jobs   int
	Output string
}

func newStressCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &stressConfiguration{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "stress",
		Short: "Runs random insertions and removals against a reference B-tree",
		Long: `Runs random insertions and removals on a weak AVL tree and compares it with a B-tree
holding the same keys. Every seed gets its own tree; a divergence exits with an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, config)
		},
	}
	def := stress.DefaultConfig()
	cmd.Flags().IntVar(&config.Run.Ops, "ops", def.Ops, "number of random operations per seed")
	cmd.Flags().Int64Var(&config.Run.Seed, "seed", def.Seed, "seed of the random source, ignored when --seeds is given")
	cmd.Flags().Int64SliceVar(&config.Seeds, "seeds", nil, "comma separated seeds, one run per seed")
	cmd.Flags().IntVar(&config.Jobs, "parallel", 1, "number of seeds run at the same time")
	cmd.Flags().Int64Var(&config.Run.KeyRange, "key-range", def.KeyRange, "keys are drawn from [0, key-range)")
	cmd.Flags().IntVar(&config.Run.MinLive, "min-live", def.MinLive, "always insert while the tree has fewer nodes")
	cmd.Flags().IntVar(&config.Run.MaxLive, "max-live", def.MaxLive, "always remove once the tree has this many nodes")
	cmd.Flags().IntVar(&config.Run.CheckEvery, "check-every", def.CheckEvery, "compare with the reference every n operations")
	cmd.Flags().BoolVar(&config.Run.VerifyDrain, "verify-drain", def.VerifyDrain, "verify the tree after every removal while draining")
	cmd.Flags().StringVarP(&config.Output, "output", "o", stress.FormatText, "report format, one of: text, json, yaml")
	return cmd
}

func runStress(cmd *cobra.Command, config *stressConfiguration) error {
	if !slices.Contains([]string{stress.FormatText, stress.FormatJSON, stress.FormatYAML}, config.Output) {
		return fmt.Errorf("unknown output format %q", config.Output)
	}
	seeds := config.Seeds
	if len(seeds) == 0 {
		seeds = []int64{config.Run.Seed}
	}
	log := config.Base.log
	log.Debug().Ints64("seeds", seeds).Int("parallel", config.Jobs).Msg("starting stress runs")

	reps, err := stress.RunAll(cmd.Context(), config.Run, seeds, config.Jobs, log)
	done := slices.DeleteFunc(slices.Clone(reps), func(r *stress.Report) bool { return r == nil })
	if encErr := stress.Encode(cmd.OutOrStdout(), config.Output, done); encErr != nil {
		return fmt.Errorf("writing report: %w", encErr)
	}
	if err != nil {
		return fmt.Errorf("stress run failed: %w", err)
	}
	return nil
}
