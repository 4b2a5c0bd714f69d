package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/compose"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Print the composed node tree of a page as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogger(cfg)

		store, err := loadStore(cfg)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("page")
		page, ok := compose.ComposePage(store, siteBase(cfg), path)
		if !ok {
			return fmt.Errorf("no page at %q (known: %v)", path, compose.Routes)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	},
}

func init() {
	composeCmd.Flags().String("page", compose.HomePath, "route of the page to compose")
	rootCmd.AddCommand(composeCmd)
}
