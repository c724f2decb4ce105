package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vetch/internal/diag"
	"vetch/internal/diagfmt"
	"vetch/internal/driver"
	"vetch/internal/fixture"
	"vetch/internal/project"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Validate the built-in demo workspace",
	Long:  `Run the body validation pass over a small built-in workspace and print every finding it produces`,
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().Bool("disk-cache", false, "enable the persistent diagnostics cache")
	demoCmd.Flags().Bool("no-context", false, "omit source lines from the output")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if maxFlag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		cfg.Lint.MaxDiagnostics = maxFlag
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	var cache *driver.DiskCache
	if useCache, _ := cmd.Flags().GetBool("disk-cache"); useCache {
		cache, err = driver.OpenDiskCache(cfg.CacheDir())
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}

	ws := fixture.NewWorkspace()
	owners := fixture.BuildDemo(ws)

	results, err := driver.CollectAll(cmd.Context(), ws, owners, driver.Options{
		Jobs:   jobs,
		Config: cfg,
		Cache:  cache,
	})
	if err != nil {
		return err
	}

	bag := diag.NewBag(cfg.MaxDiagnostics())
	for _, res := range results {
		bag.Merge(res.Bag)
	}
	bag.Sort()

	useColor, err := colorEnabled(cmd, os.Stdout)
	if err != nil {
		return err
	}
	noContext, _ := cmd.Flags().GetBool("no-context")
	diagfmt.Pretty(cmd.OutOrStdout(), bag, ws.Files, diagfmt.PrettyOpts{
		Color:   useColor,
		Context: !noContext,
	})

	if bag.Len() > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d findings", bag.Len())
	}
	return nil
}

// loadConfig walks up from the working directory looking for vetch.toml.
func loadConfig() (*project.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return project.Default(), nil
	}
	path, found, err := project.Find(wd)
	if err != nil || !found {
		return project.Default(), nil
	}
	cfg, err := project.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return cfg, nil
}
