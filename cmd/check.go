package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/progress"
	"github.com/commanderxa/alphalabs/internal/site"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalogue without writing the export",
	Long: `Loads and validates the catalogue, renders every page in memory and
checks that nav routes resolve and outbound links open safely. Nothing is
written to the output directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
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
			Reporter:    progress.Nop{},
		})
		if err != nil {
			return err
		}
		files, err := gen.Check(store)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("ok  %s\n", f)
		}
		fmt.Printf("%d pages checked\n", len(files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
