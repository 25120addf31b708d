package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"testctl/internal/cache"
	"testctl/internal/config"
	"testctl/internal/orchestrator"
	"testctl/internal/probe"
	"testctl/pkg/logging"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	cachePath  string
	logLevel   string
	debug      bool
}

var globals globalOptions

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testctl",
		Short: "Run project checks and skip the ones that recently passed",
		Long: `testctl runs the checks that make up a project's test suite: infrastructure
reachability, health endpoints, API contracts and integration suites.

Checks are grouped into categories. Independent checks run concurrently, then the
remaining checks run once they have all finished. A passing result is cached for a
short time, so repeated invocations only re-run what failed or expired.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown categories, failed checks)
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(globals.logLevel)
			if err != nil {
				return err
			}
			if globals.debug {
				level = logging.LevelDebug
			}
			logging.InitForCLI(level, cmd.ErrOrStderr())
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "Path to a configuration file layered on top of user and project config")
	cmd.PersistentFlags().StringVar(&globals.cachePath, "cache-path", "", "Directory for cached results (overrides config and "+config.CachePathEnv+")")
	cmd.PersistentFlags().StringVar(&globals.logLevel, "log-level", "warn", "Log level on stderr (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "Enable debug logging on stderr (same as --log-level debug)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCacheCmd())
	cmd.AddCommand(newMCPServerCmd())
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "testctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// loadConfig loads the layered configuration and applies the --cache-path flag.
func loadConfig() (config.TestctlConfig, error) {
	if dir, err := config.GetUserConfigDir(); err == nil {
		logging.Debug("CLI", "Loading configuration (user directory %s)", dir)
	}
	cfg, err := config.LoadConfig(globals.configPath)
	if err != nil {
		return config.TestctlConfig{}, err
	}
	if globals.cachePath != "" {
		cfg.Cache.Path = globals.cachePath
	}
	return cfg, nil
}

// newStore opens the cache backend selected in settings.
func newStore(settings config.CacheSettings) cache.Store {
	if settings.Backend == config.BackendMemory {
		return cache.NewMemoryStore(settings.TTL)
	}
	return cache.NewFileStore(settings.Path, settings.TTL)
}

// newOrchestrator builds the registry and cache from cfg and wires them into an
// orchestrator.
func newOrchestrator(cfg config.TestctlConfig) (*orchestrator.Orchestrator, error) {
	registry, err := probe.BuildRegistry(cfg.Checks)
	if err != nil {
		return nil, fmt.Errorf("failed to build check registry: %w", err)
	}
	logging.Debug("CLI", "Registered %d checks in categories %v", registry.Len(), registry.Categories())

	return orchestrator.New(orchestrator.Config{
		Registry: registry,
		Store:    newStore(cfg.Cache),
		TTL:      cfg.Cache.TTL,
		Timeout:  cfg.Execution.Timeout,
		Workers:  cfg.Execution.Parallel,
	})
}

// completeCategories provides shell completion for category arguments
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	seen := make(map[string]bool, len(args))
	for _, a := range args {
		seen[a] = true
	}

	var categories []string
	for _, def := range cfg.Checks {
		if seen[def.Category] {
			continue
		}
		seen[def.Category] = true
		categories = append(categories, def.Category)
	}
	return categories, cobra.ShellCompDirectiveNoFileComp
}
