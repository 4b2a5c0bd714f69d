package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/progress"
	"github.com/commanderxa/alphalabs/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Validates the catalogue, renders every page and writes the export
(HTML pages, stylesheet, script and simulation images) to the output
directory. The export is staged beside the output directory and swapped
in only when the whole build succeeds.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override the output directory")
	buildCmd.Flags().String("base-path", "", "override the URL prefix the site is served under")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if cmd.Flags().Changed("base-path") {
		cfg.BasePath, _ = cmd.Flags().GetString("base-path")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := setupLogger(cfg)

	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	gen, err := site.NewGenerator(site.Options{
		OutputDir:   cfg.OutputDir,
		Base:        siteBase(cfg),
		Assets:      os.DirFS(cfg.AssetDir),
		AssetRoot:   cfg.AssetDir,
		ContentRoot: cfg.ContentDir,
		Exclude:     cfg.Exclude,
		Logger:      logger,
		Reporter:    progress.NewReporter(),
	})
	if err != nil {
		return err
	}

	res, err := gen.Build(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Static site generated: %s (%d pages, %d assets, %s)\n",
		cfg.OutputDir, len(res.Pages), len(res.Assets), res.Duration.Round(time.Millisecond))
	return nil
}
