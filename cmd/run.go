package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpartition/jpartition/internal/dfa"
	"github.com/jpartition/jpartition/internal/engineconfig"
	"github.com/jpartition/jpartition/internal/fsprovider"
	"github.com/jpartition/jpartition/internal/plan"
	"github.com/jpartition/jpartition/internal/tokenizer"
)

var (
	runConfigFile  string
	runFilepath    string
	runRecursive   bool
	runGlobFilter  string
	runHDFSPath    string
	runEncoding    string
	runParallelism int
	runMinBytes    int64
	runMaxBytes    int64
	runStrategy    string
	runQueryPath   []string
	runOutputFile  string
)

var runCmd = &cobra.Command{
	Use:   "run <path>",
	Short: "Partition a JSON file or directory and emit partition descriptors",
	Long: `Enumerate matching JSON files, bucket them into byte ranges, and
produce a sequence of partition descriptors using the speculation or
full-pass strategy. Descriptors are printed as a JSON array.`,
	Args: cobra.MaximumNArgs(1),
	Example: `  jpartition run data.json
  jpartition run ./logs --recursive --glob "**/*.json"
  jpartition run data.json --strategy speculation --query a,b`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "", "TOML config file")
	runCmd.Flags().StringVar(&runFilepath, "filepath", "", "Input file/directory/glob (overrides positional arg)")
	runCmd.Flags().BoolVar(&runRecursive, "recursive", false, "Recurse into subdirectories")
	runCmd.Flags().StringVar(&runGlobFilter, "glob", "", "doublestar glob filter applied under the input path")
	runCmd.Flags().StringVar(&runHDFSPath, "hdfs-path", "", "HDFS path prefix (unimplemented; must be empty)")
	runCmd.Flags().StringVar(&runEncoding, "encoding", "", "Text encoding (default utf-8)")
	runCmd.Flags().IntVar(&runParallelism, "parallelism", 0, "Worker parallelism (default 8)")
	runCmd.Flags().Int64Var(&runMinBytes, "min-bytes", 0, "Minimum partition size in bytes")
	runCmd.Flags().Int64Var(&runMaxBytes, "max-bytes", 0, "Maximum partition size in bytes")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "", "speculation|full-pass (default full-pass)")
	runCmd.Flags().StringSliceVar(&runQueryPath, "query", nil, "Comma-separated key path for the default projection DFA (e.g. a,b)")
	runCmd.Flags().StringVarP(&runOutputFile, "output", "o", "", "Write descriptors to this file instead of stdout")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	cfg := engineconfig.Defaults()
	if runConfigFile != "" {
		loaded, err := engineconfig.LoadFromFile(runConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	override := engineconfig.Config{
		Filepath:          runFilepath,
		Recursive:         runRecursive,
		PathGlobFilter:    runGlobFilter,
		HDFSPath:          runHDFSPath,
		Encoding:          runEncoding,
		Parallelism:       runParallelism,
		MinPartitionBytes: runMinBytes,
		MaxPartitionBytes: runMaxBytes,
		Strategy:          engineconfig.Strategy(runStrategy),
	}
	if override.Filepath == "" && len(args) == 1 {
		override.Filepath = args[0]
	}
	cfg = cfg.Merge(override)

	if err := ValidateInputPath(cfg.Filepath); err != nil {
		return err
	}
	if cfg.HDFSPath != "" {
		return fmt.Errorf("hdfs input is not implemented in this build")
	}

	logger.Info("bucketizing", "path", cfg.Filepath, "strategy", cfg.Strategy, "parallelism", cfg.Parallelism)

	fs := fsprovider.NewLocal()
	buckets, err := fsprovider.Bucketize(fs, cfg.Filepath, fsprovider.BucketizeOptions{
		Recursive:      cfg.Recursive,
		PathGlobFilter: cfg.PathGlobFilter,
		MinBucket:      cfg.MinPartitionBytes,
		MaxBucket:      cfg.MaxPartitionBytes,
		Parallelism:    cfg.Parallelism,
	})
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		logger.Warn("no files found, emitting empty result", "path", cfg.Filepath)
		return writeDescriptors(nil, runOutputFile)
	}

	tok := tokenizer.NewDefault()
	newDFA := func() dfa.DFA { return dfa.NewStatic(runQueryPath, true) }

	sizeOf := func(path string) (int64, error) {
		st, err := fs.Stat(path)
		if err != nil {
			return 0, err
		}
		return st.Length, nil
	}

	descs, err := plan.Run(context.Background(), buckets, plan.Options{
		Tokenizer:         tok,
		NewDFA:            newDFA,
		HDFSPath:          cfg.HDFSPath,
		Encoding:          cfg.Encoding,
		Parallelism:       cfg.Parallelism,
		PreferSpeculation: cfg.Strategy == engineconfig.StrategySpeculation,
	}, sizeOf)
	if err != nil {
		return fmt.Errorf("partitioning failed: %w", err)
	}

	logger.Info("partitioning complete", "partitions", len(descs))
	return writeDescriptors(descs, runOutputFile)
}

func writeDescriptors(descs any, outputFile string) error {
	data, err := json.MarshalIndent(descs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal descriptors: %w", err)
	}
	data = append(data, '\n')
	if outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}
