package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/akerfield/namewright/pkg/corpus"
	"github.com/akerfield/namewright/pkg/namegen"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "namewright",
	Short:         "Generate novel names that resemble a training corpus",
	Long:          "Namewright builds order-k Markov chains over the characters of example names\nand generates new names that statistically resemble them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var sampleFlags struct {
	count       int
	order       int
	candidates  int
	prefer      string
	maxAttempts int
	syllables   bool
	noClean     bool
	seed        uint64
}

var sampleCmd = &cobra.Command{
	Use:   "sample <file>",
	Short: "Print generated names from a training file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := buildSet(args[0], sampleFlags.order, sampleFlags.syllables, sampleFlags.noClean)
		if err != nil {
			return err
		}
		pref, err := preferenceFor(sampleFlags.prefer)
		if err != nil {
			return err
		}
		opts := []namegen.NameOption{
			namegen.WithCandidates(sampleFlags.candidates),
			namegen.WithPreference(pref),
			namegen.WithMaxAttempts(sampleFlags.maxAttempts),
		}
		if sampleFlags.seed != 0 {
			opts = append(opts, namegen.WithRNG(rand.New(rand.NewPCG(sampleFlags.seed, sampleFlags.seed))))
		}

		for i := 0; i < sampleFlags.count; i++ {
			name := ns.MakeName(opts...)
			if name == "" {
				fmt.Fprintln(os.Stderr, "(generation exhausted)")
				break
			}
			fmt.Println(name)
		}
		return nil
	},
}

var stressFlags struct {
	order     int
	limit     int
	syllables bool
	noClean   bool
}

var stressCmd = &cobra.Command{
	Use:   "stress <file>",
	Short: "See how many names a training file can yield before exhausting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := buildSet(args[0], stressFlags.order, stressFlags.syllables, stressFlags.noClean)
		if err != nil {
			return err
		}

		limit := stressFlags.limit
		if limit <= 0 {
			limit = 10000
		}
		generated := 0
		for generated < limit {
			if ns.MakeName() == "" {
				break
			}
			generated++
		}

		fmt.Printf("training names:  %d\n", ns.Len())
		fmt.Printf("generated names: %d", generated)
		if generated >= limit {
			fmt.Print(" (limit reached)")
		}
		fmt.Println()
		fmt.Printf("per training:    %.2f\n", float64(generated)/float64(ns.Len()))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("namewright %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	},
}

// buildSet loads a training file and builds a NameSet for the CLI commands.
func buildSet(path string, order int, syllables, noClean bool) (*namegen.NameSet, error) {
	names, err := corpus.FromFile(path)
	if err != nil {
		return nil, err
	}
	if !noClean {
		names = corpus.Clean(names)
	}
	lengthFn := namegen.RuneCount
	if syllables {
		lengthFn = namegen.Syllables
	}
	ns, err := namegen.New(names, order, lengthFn)
	if err != nil {
		return nil, fmt.Errorf("failed to build a name set from %q: %w", path, err)
	}
	return ns, nil
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleFlags.count, "count", "n", 20, "how many names to print")
	sampleCmd.Flags().IntVar(&sampleFlags.order, "order", namegen.DefaultOrder, "Markov order (context length in characters)")
	sampleCmd.Flags().IntVar(&sampleFlags.candidates, "candidates", namegen.DefaultCandidates, "accepted candidates gathered per name")
	sampleCmd.Flags().StringVar(&sampleFlags.prefer, "prefer", "avg", "candidate selection: avg, min or max")
	sampleCmd.Flags().IntVar(&sampleFlags.maxAttempts, "max-attempts", namegen.DefaultMaxAttempts, "walk retries per candidate")
	sampleCmd.Flags().BoolVar(&sampleFlags.syllables, "syllables", false, "rank candidates by estimated syllables instead of characters")
	sampleCmd.Flags().BoolVar(&sampleFlags.noClean, "no-clean", false, "skip stripping punctuation from training lines")
	sampleCmd.Flags().Uint64Var(&sampleFlags.seed, "seed", 0, "deterministic RNG seed (0 uses the random default)")
	rootCmd.AddCommand(sampleCmd)

	stressCmd.Flags().IntVar(&stressFlags.order, "order", namegen.DefaultOrder, "Markov order (context length in characters)")
	stressCmd.Flags().IntVar(&stressFlags.limit, "limit", 10000, "stop after this many names")
	stressCmd.Flags().BoolVar(&stressFlags.syllables, "syllables", false, "rank candidates by estimated syllables instead of characters")
	stressCmd.Flags().BoolVar(&stressFlags.noClean, "no-clean", false, "skip stripping punctuation from training lines")
	rootCmd.AddCommand(stressCmd)

	rootCmd.AddCommand(versionCmd)
}
