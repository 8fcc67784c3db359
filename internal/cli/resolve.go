package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/crategraph/pkg/cache"
	"github.com/matzehuels/crategraph/pkg/cargo"
	"github.com/matzehuels/crategraph/pkg/crates"
	"github.com/matzehuels/crategraph/pkg/depgraph"
	"github.com/matzehuels/crategraph/pkg/errors"
)

type resolveOptions struct {
	maxDepth   int
	exclude    string
	output     string
	configPath string
	refresh    bool
	noCache    bool
	cacheDir   string
	cacheTTL   time.Duration
	redisAddr  string
}

func newResolveCmd() *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve [crate[@version]]",
		Short: "Build a crate's transitive dependency graph from crates.io",
		Long: `Resolve walks the transitive dependency graph of a crate, starting from the
given version (or the latest published version when omitted), and writes the
result as a JSON snapshot.

Dependencies are read from each crate's Cargo.toml, merging regular,
dev, and target-specific sections and skipping optional ones. Packages
whose manifest cannot be fetched or parsed are kept as leaves.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum traversal depth (0 = unbounded)")
	cmd.Flags().StringVar(&opts.exclude, "exclude", "", "skip crates whose name contains this substring")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "snapshot output path (default: stdout)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "JSON run configuration file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry responses")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry response cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory (default: ~/.cache/crategraph)")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 24*time.Hour, "registry response cache lifetime")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "use a Redis cache at this address instead of the file cache")

	return cmd
}

func runResolve(ctx context.Context, opts *resolveOptions, args []string) error {
	logger := loggerFromContext(ctx)

	var root depgraph.PackageID
	output := opts.output

	if opts.configPath != "" {
		cfg, err := loadConfig(opts.configPath)
		if err != nil {
			return err
		}
		root = depgraph.PackageID{Name: cfg.PackageName, Version: cfg.Version}
		if cfg.MaxDepth > 0 && opts.maxDepth == 0 {
			opts.maxDepth = cfg.MaxDepth
		}
		if cfg.Exclude != "" && opts.exclude == "" {
			opts.exclude = cfg.Exclude
		}
		if output == "" {
			output = cfg.snapshotPath()
		}
		if cfg.TestMode {
			return resolveFromFixture(cfg, output, logger)
		}
	} else {
		if len(args) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "a crate name or --config is required")
		}
		id, err := parseCrateSpec(args[0])
		if err != nil {
			return err
		}
		root = id
	}

	backend, err := newCacheBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer backend.Close()

	client := crates.NewClient(backend, opts.cacheTTL)
	source := client.Source(opts.refresh)

	builder := &depgraph.Builder{
		Source:   source,
		Versions: source,
		Parse:    cargo.DependencyNames,
	}
	policy := depgraph.Policy{
		MaxDepth: opts.maxDepth,
		Exclude:  opts.exclude,
		Logger:   logger.Warnf,
	}

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Resolving %s", root.Name))
	spin.start()

	g, err := builder.Build(ctx, root, policy)
	spin.stop()
	if err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Resolved %d packages from %s", g.Len(), g.Root()))

	return writeSnapshotOutput(g, output)
}

// resolveFromFixture loads a prebuilt snapshot instead of touching the
// network. Used for offline runs and test setups driven by a config file.
func resolveFromFixture(cfg *Config, output string, logger *log.Logger) error {
	path := cfg.snapshotPath()
	g, err := depgraph.ReadSnapshotFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "load fixture %s", path)
	}
	logger.Infof("Loaded %d packages from fixture %s", g.Len(), path)
	if output == path {
		return nil
	}
	return writeSnapshotOutput(g, output)
}

// newCacheBackend picks the registry cache implementation from the flags.
func newCacheBackend(ctx context.Context, opts *resolveOptions) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	dir := opts.cacheDir
	if dir == "" {
		d, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// writeSnapshotOutput writes g to path, or to stdout when path is empty.
func writeSnapshotOutput(g *depgraph.Graph, path string) error {
	if path == "" {
		return depgraph.WriteSnapshot(g, os.Stdout)
	}
	if err := depgraph.WriteSnapshotFile(g, path); err != nil {
		return err
	}
	printSuccess("Snapshot written to %s", path)
	return nil
}
