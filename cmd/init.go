package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize alphalabs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site build and writes a .alphalabs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Println("Run `alphalabs build` to generate the site.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
