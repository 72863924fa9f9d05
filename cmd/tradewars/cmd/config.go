package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jinish2170/Tradewars/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to a file, format chosen by extension
(.yaml/.yml or .json).

Example:
  tradewars config --out tradewars.yaml`,
	RunE: runConfig,
}

var configOutPath string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configOutPath, "out", "o", "tradewars.yaml", "output path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configOutPath); err != nil {
		return err
	}
	fmt.Printf("Default configuration written to %s\n", configOutPath)
	return nil
}
