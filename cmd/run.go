package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"testctl/internal/check"
	"testctl/internal/config"
	"testctl/internal/orchestrator"
	"testctl/internal/reporting"
	"testctl/pkg/logging"
)

type runOptions struct {
	noCache    bool
	sequential bool
	verbose    bool
	timeout    time.Duration
	parallel   int
	ttl        time.Duration
	output     string
	reportDir  string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [category...]",
		Short: "Run checks, skipping the ones that recently passed",
		Long: `Run the checks of the given categories, or every check when no category is given.

Independent checks run concurrently first. The remaining checks run once all of
them have finished, even when some failed. A check whose last result is a pass
recorded within the cache TTL is reported as CACHED instead of running again.
Failures are never cached.

The command exits non-zero when any check fails or an unknown category is named.

Example usage:
  testctl run                         # Run all checks
  testctl run infrastructure api      # Run two categories
  testctl run --no-cache              # Ignore and clear cached results
  testctl run --sequential -v         # One at a time, show every diagnostic
  testctl run -o json --report out/   # JSON on stdout and a saved report`,
		ValidArgsFunction: completeCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "Run every selected check and clear the cache first")
	cmd.Flags().BoolVar(&opts.sequential, "sequential", false, "Run checks one at a time in registry order")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show diagnostics of passing and cached checks")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Per-check timeout (default from config, 60s)")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "Concurrent independent checks (default 2 x GOMAXPROCS)")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 0, "How long a passing result is reused (default from config, 5m)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", reporting.FormatTable, "Output format (table, json)")
	cmd.Flags().StringVar(&opts.reportDir, "report", "", "Directory to save a JSON report of the run")

	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{reporting.FormatTable, reporting.FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// apply overrides config settings with the flags that were set.
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.TestctlConfig) {
	if cmd.Flags().Changed("timeout") {
		cfg.Execution.Timeout = o.timeout
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Execution.Parallel = o.parallel
	}
	if cmd.Flags().Changed("ttl") {
		cfg.Cache.TTL = o.ttl
	}
}

func runRun(cmd *cobra.Command, categories []string, opts *runOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts.apply(cmd, &cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	reporter, err := reporting.New(opts.output, cmd.OutOrStdout(), opts.verbose)
	if err != nil {
		return err
	}

	o, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	// Create context with signal handling
	ctx, cancel := context.WithCancel(contextOf(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logging.Warn("CLI", "Received interrupt signal, cancelling running checks")
			cancel()
		case <-ctx.Done():
		}
	}()

	results, err := o.Run(ctx, categories, orchestrator.Options{
		ForceAll:   opts.noCache,
		ClearCache: opts.noCache,
		Sequential: opts.sequential,
	})
	if check.IsNoSuchCategory(err) {
		return fmt.Errorf("%w\nRun 'testctl list' to see the registered checks", err)
	}
	if err != nil {
		return err
	}

	summary := reporting.Summarize(results)
	if err := reporter.Report(summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.reportDir != "" {
		path, err := reporting.SaveReport(opts.reportDir, summary)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", path)
	}

	if summary.ExitCode() != 0 {
		return fmt.Errorf("%d check(s) failed", summary.Failed)
	}
	return nil
}
