package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "candlescan",
	Short: "Monthly candlestick stock-signal dashboard",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
