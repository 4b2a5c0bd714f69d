package cmd

import (
	"github.com/spf13/cobra"

	"github.com/commanderxa/alphalabs/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "alphalabs",
	Short: "Static site for the AlphaLabs physics simulation catalogue",
	Long: `AlphaLabs builds the static website that catalogues the AlphaLabs
physics simulations: a landing page, the simulation collection grouped
by topic, and an about page with publications and a FAQ.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
