package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"reelmatch/internal/cache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the response cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePurgeCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			info, err := store.GetInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache info: %w", err)
			}
			categories, err := store.CountByCategory(cmd.Context())
			if err != nil {
				return fmt.Errorf("count cache categories: %w", err)
			}

			if jsonFlag {
				return writeJSON(cmd, struct {
					cache.Info
					Categories map[string]int64 `json:"categories"`
				}{Info: info, Categories: categories})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:      %s\n", info.Path)
			fmt.Fprintf(out, "Entries:   %d\n", info.CacheItems)
			fmt.Fprintf(out, "Hit ratio: %.1f%% over %d requests\n", info.HitRatio, info.TotalRequests)
			if info.Degraded {
				fmt.Fprintln(out, "Mode:      degraded (serving cache fallbacks)")
			}
			printCategoryCounts(cmd, categories)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printCategoryCounts(cmd *cobra.Command, categories map[string]int64) {
	if len(categories) == 0 {
		return
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, fmt.Sprintf("%d", categories[name])})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Category", "Entries"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	))
}

func newCachePurgeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Remove expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.PurgeExpired(cmd.Context())
			if err != nil {
				return fmt.Errorf("purge cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired entries\n", removed)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("cache clear removes all entries; rerun with --yes to confirm")
			}
			store, _, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion")
	return cmd
}
