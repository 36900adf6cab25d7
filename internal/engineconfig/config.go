// Package engineconfig holds the engine's configuration keys (spec §6) and
// the layered config/CLI-flag/default resolution used across cmd/.
package engineconfig

// Strategy selects which partitioning strategy to run.
type Strategy string

const (
	StrategySpeculation Strategy = "speculation"
	StrategyFullPass    Strategy = "full-pass"
)

// Config is the fully resolved set of engine configuration keys (spec §6).
type Config struct {
	Filepath          string   `toml:"filepath"`
	Recursive         bool     `toml:"recursive"`
	PathGlobFilter    string   `toml:"path_glob_filter"`
	HDFSPath          string   `toml:"hdfs_path"`
	Encoding          string   `toml:"encoding"`
	Parallelism       int      `toml:"parallelism"`
	MinPartitionBytes int64    `toml:"min_partition_bytes"`
	MaxPartitionBytes int64    `toml:"max_partition_bytes"`
	Strategy          Strategy `toml:"strategy"`
}

// Defaults returns the engine's default configuration (spec §4.1, §6).
func Defaults() Config {
	return Config{
		Recursive:         false,
		Encoding:          "utf-8",
		Parallelism:       8,
		MinPartitionBytes: 32 * 1024 * 1024,
		MaxPartitionBytes: 1024 * 1024 * 1024,
		Strategy:          StrategyFullPass,
	}
}

// Merge overlays non-zero fields of override onto c, used to layer
// CLI-flag values over a loaded file over the defaults.
func (c Config) Merge(override Config) Config {
	out := c
	if override.Filepath != "" {
		out.Filepath = override.Filepath
	}
	if override.Recursive {
		out.Recursive = true
	}
	if override.PathGlobFilter != "" {
		out.PathGlobFilter = override.PathGlobFilter
	}
	if override.HDFSPath != "" {
		out.HDFSPath = override.HDFSPath
	}
	if override.Encoding != "" {
		out.Encoding = override.Encoding
	}
	if override.Parallelism != 0 {
		out.Parallelism = override.Parallelism
	}
	if override.MinPartitionBytes != 0 {
		out.MinPartitionBytes = override.MinPartitionBytes
	}
	if override.MaxPartitionBytes != 0 {
		out.MaxPartitionBytes = override.MaxPartitionBytes
	}
	if override.Strategy != "" {
		out.Strategy = override.Strategy
	}
	return out
}
