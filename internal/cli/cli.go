package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Samk13/i18n-invenio-formatter/internal/diffout"
	"github.com/Samk13/i18n-invenio-formatter/internal/pyast"
	"github.com/Samk13/i18n-invenio-formatter/internal/rewrite"
	"github.com/Samk13/i18n-invenio-formatter/internal/walker"
	"github.com/Samk13/i18n-invenio-formatter/internal/worker"
	"github.com/Samk13/i18n-invenio-formatter/pkg/config"
)

// Execute runs the CLI application.
func Execute(version string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var (
		configFile string
		workers    int
		showDiff   bool
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:     "i18nfmt [path]",
		Short:   "Rewrite InvenioRDM translation strings to percent-style placeholders",
		Long:    "Scans Python sources for gettext/lazy_gettext calls imported from invenio_i18n\nand rewrites {name} placeholder formatting to the %(name)s style in place,\nleaving every byte outside matched call expressions untouched.",
		Args:    cobra.MaximumNArgs(1),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return run(cmd.Context(), root, configFile, workers, showDiff)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to JSON configuration file")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Number of files processed concurrently (default: CPU count)")
	rootCmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified diff instead of rewriting files")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	ctx, cancel := setupContext()
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type fileResult struct {
	changed bool
	diff    []byte
	diags   []rewrite.Diagnostic
}

func run(ctx context.Context, root, configFile string, workersFlag int, showDiff bool) error {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if workersFlag > 0 {
		cfg.Workers = workersFlag
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("Path %s does not exist", root)
		}
		return fmt.Errorf("stat path: %w", err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = walker.New(cfg.Exclude).Walk(root)
		if err != nil {
			return err
		}
	} else {
		paths = []string{root}
	}

	pool := worker.NewPool(cfg.Workers, func(ctx context.Context, path string) (fileResult, error) {
		return processFile(path, showDiff)
	})
	results := pool.Execute(ctx, paths)

	// Diagnostics are collected from the workers first, so ordering stays
	// deterministic (input order, then line order) however the pool
	// scheduled the files.
	changed := 0
	diagnostics := 0
	for i, task := range results {
		path := paths[i]
		if task.Err != nil {
			if errors.Is(task.Err, pyast.ErrSyntax) {
				log.Warn().Str("file", path).Msg("Skipping file that failed to parse")
			} else {
				log.Error().Err(task.Err).Str("file", path).Msg("Skipping file")
			}
			continue
		}
		if task.Result.changed {
			changed++
		}
		if len(task.Result.diff) > 0 {
			os.Stdout.Write(task.Result.diff)
		}
		for _, d := range task.Result.diags {
			diagnostics++
			fmt.Printf("Error in %s at line %d: %s\n", path, d.Line, d.Message)
		}
	}

	log.Info().
		Int("files", len(paths)).
		Int("changed", changed).
		Int("diagnostics", diagnostics).
		Msg("Run complete")
	return nil
}

// processFile runs the rewriting engine over one file and writes the result
// back in place, or renders a diff in dry-run mode. Each invocation builds
// its own engine: the underlying parser must not be shared across workers.
func processFile(path string, showDiff bool) (fileResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("read file: %w", err)
	}

	engine, err := rewrite.NewEngine()
	if err != nil {
		return fileResult{}, err
	}
	defer engine.Close()

	result, err := engine.Rewrite(src)
	if err != nil {
		return fileResult{}, err
	}

	for _, site := range result.Sites {
		log.Debug().
			Str("file", path).
			Int("line", site.Line).
			Str("pattern", site.Kind.String()).
			Msg("Identified call site")
	}

	res := fileResult{
		changed: result.Changed,
		diags:   result.Diagnostics,
	}
	if !result.Changed {
		return res, nil
	}

	if showDiff {
		rendered, err := diffout.Render(path, src, result.Edits)
		if err != nil {
			return fileResult{}, fmt.Errorf("render diff: %w", err)
		}
		res.diff = rendered
		return res, nil
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, result.Output, mode); err != nil {
		return fileResult{}, fmt.Errorf("write file: %w", err)
	}
	log.Debug().Str("file", path).Msg("Rewrote file")
	return res, nil
}

// setupContext cancels the run on SIGINT/SIGTERM; in-flight files finish,
// queued ones are skipped.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal")
		cancel()
	}()

	return ctx, cancel
}
