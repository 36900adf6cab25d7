package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/engineconfig"
	"github.com/jpartition/jpartition/internal/fsprovider"
	"github.com/jpartition/jpartition/internal/partition"
	"github.com/jpartition/jpartition/internal/plan"
	"github.com/jpartition/jpartition/internal/tokenizer"
	"github.com/jpartition/jpartition/tui"
)

var (
	inspectRecursive   bool
	inspectGlobFilter  string
	inspectStrategy    string
	inspectQueryPath   []string
	inspectParallelism int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Partition a JSON file or directory and browse the result in a terminal UI",
	Long: `Launch an interactive terminal UI that runs the partitioning engine
against the given path and lets you scroll through the resulting partition
descriptors, inspecting each one's byte range and syntactic context.`,
	Args: cobra.ExactArgs(1),
	Example: `  jpartition inspect data.json
  jpartition inspect ./logs --recursive --glob "**/*.json"`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectRecursive, "recursive", false, "Recurse into subdirectories")
	inspectCmd.Flags().StringVar(&inspectGlobFilter, "glob", "", "doublestar glob filter applied under the input path")
	inspectCmd.Flags().StringVar(&inspectStrategy, "strategy", "", "speculation|full-pass (default full-pass)")
	inspectCmd.Flags().StringSliceVar(&inspectQueryPath, "query", nil, "Comma-separated key path for the default projection DFA")
	inspectCmd.Flags().IntVar(&inspectParallelism, "parallelism", 0, "Worker parallelism (default 8)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := ValidateInputPath(path); err != nil {
		return err
	}

	cfg := engineconfig.Defaults()
	if inspectParallelism > 0 {
		cfg.Parallelism = inspectParallelism
	}
	if inspectStrategy != "" {
		cfg.Strategy = engineconfig.Strategy(inspectStrategy)
	}

	runner := func() ([]partition.Descriptor, error) {
		fs := fsprovider.NewLocal()
		buckets, err := fsprovider.Bucketize(fs, path, fsprovider.BucketizeOptions{
			Recursive:      inspectRecursive,
			PathGlobFilter: inspectGlobFilter,
			MinBucket:      cfg.MinPartitionBytes,
			MaxBucket:      cfg.MaxPartitionBytes,
			Parallelism:    cfg.Parallelism,
		})
		if err != nil {
			return nil, err
		}
		if len(buckets) == 0 {
			return nil, nil
		}

		tok := tokenizer.NewDefault()
		newDFA := func() dfa.DFA { return dfa.NewStatic(inspectQueryPath, true) }
		sizeOf := func(p string) (int64, error) {
			st, err := fs.Stat(p)
			if err != nil {
				return 0, err
			}
			return st.Length, nil
		}

		return plan.Run(context.Background(), buckets, plan.Options{
			Tokenizer:         tok,
			NewDFA:            newDFA,
			Encoding:          cfg.Encoding,
			Parallelism:       cfg.Parallelism,
			PreferSpeculation: cfg.Strategy == engineconfig.StrategySpeculation,
		}, sizeOf)
	}

	GetLogger().Info("launching inspector", "path", path)

	p := tea.NewProgram(tui.New(runner), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running inspector: %w", err)
	}
	return nil
}
