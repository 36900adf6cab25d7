package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpartition/jpartition/internal/jsongen"
)

var (
	genRootObjects  int
	genOutputFile   string
	genSeed         int64
	genMaxDepth     int
	genMaxNodes     int
	genAnchorKey    string
	genAnchorLevel  int
	genAnchorCount  int
	genAnchorValue  string
	genDictWordPath string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic JSON documents for exercising the partitioning engine",
	Long: `Generate a JSON document: a root array of nested objects, with an
optional rare anchor key injected a fixed number of times at a fixed nesting
depth. The anchor key/level/count let generated documents exercise the
speculation table's single-level, high-occurrence qualification rule.

Examples:
  jpartition generate -n 1000 -o big.json
  jpartition generate -n 50 --anchor-key id --anchor-level 2 --anchor-count 1000
  jpartition generate --max-depth 5 --max-nodes 8 --seed 42`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genRootObjects, "root-objects", "n", 10, "Number of top-level array entries to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: stdout)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use seed 1)")
	generateCmd.Flags().IntVar(&genMaxDepth, "max-depth", 4, "Maximum JSON nesting depth")
	generateCmd.Flags().IntVar(&genMaxNodes, "max-nodes", 6, "Maximum JSON fields per object")
	generateCmd.Flags().StringVar(&genAnchorKey, "anchor-key", "", "Rare key to inject repeatedly at --anchor-level")
	generateCmd.Flags().IntVar(&genAnchorLevel, "anchor-level", 1, "Nesting depth at which the anchor key is injected")
	generateCmd.Flags().IntVar(&genAnchorCount, "anchor-count", 1000, "Total occurrences of the anchor key across the document")
	generateCmd.Flags().StringVar(&genAnchorValue, "anchor-value", "anchor", "Value written for each anchor key occurrence")
	generateCmd.Flags().StringVar(&genDictWordPath, "dict", "", "Newline-delimited word list for field names (default: built-in list)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	seed := genSeed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	var words []string
	if genDictWordPath != "" {
		data, err := os.ReadFile(genDictWordPath)
		if err != nil {
			return fmt.Errorf("read dictionary: %w", err)
		}
		words = splitWords(string(data))
	}
	dict := jsongen.NewDictionary(words)

	gen := jsongen.New(dict, jsongen.Options{
		MaxDepth:    genMaxDepth,
		MaxNodes:    genMaxNodes,
		AnchorKey:   genAnchorKey,
		AnchorLevel: genAnchorLevel,
		AnchorCount: genAnchorCount,
		AnchorValue: genAnchorValue,
	}, rng)

	logger.Info("generating document", "rootObjects", genRootObjects, "seed", seed)
	doc := gen.GenerateDocument(genRootObjects)

	if genOutputFile == "" {
		fmt.Println(doc)
		return nil
	}
	if err := os.WriteFile(genOutputFile, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("document written", "path", genOutputFile, "bytes", len(doc))
	return nil
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
