package cmd

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"testctl/internal/cache"
	"testctl/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear cached check results",
		Long: `Inspect or clear the cache of check results.

Available commands:
  show   - List cached results with their age and freshness
  clear  - Drop every cached result
  path   - Print the cache directory`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List cached results",
		Args:  cobra.NoArgs,
		RunE:  runCacheShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached result",
		Args:  cobra.NoArgs,
		RunE:  runCacheClear,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE:  runCachePath,
	})

	return cmd
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := persistentStore(cfg.Cache)
	if err != nil {
		return err
	}
	entries, err := store.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached results")
		return nil
	}

	now := time.Now()
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"CHECK", "OUTCOME", "RECORDED", "AGE", "FRESH"})
	for _, e := range entries {
		fresh := "no"
		if cache.IsFresh(e, now, cfg.Cache.TTL) {
			fresh = "yes"
		}
		t.AppendRow(table.Row{
			e.Key.String(),
			string(e.Outcome),
			e.RecordedAt.Local().Format(time.RFC3339),
			e.Age(now).Round(time.Second).String(),
			fresh,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := persistentStore(cfg.Cache)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}

func runCachePath(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := persistentStore(cfg.Cache)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), store.Dir())
	return nil
}

// persistentStore opens the file cache. The memory backend lives only inside
// a running process, so the cache subcommands cannot reach it.
func persistentStore(settings config.CacheSettings) (*cache.FileStore, error) {
	if settings.Backend == config.BackendMemory {
		return nil, fmt.Errorf("cache backend %q is private to each process; nothing to inspect or clear", config.BackendMemory)
	}
	return cache.NewFileStore(settings.Path, settings.TTL), nil
}
