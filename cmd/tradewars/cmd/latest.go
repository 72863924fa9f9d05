package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jinish2170/Tradewars/cache"
	"github.com/Jinish2170/Tradewars/config"
)

var latestCmd = &cobra.Command{
	Use:   "latest symbol...",
	Short: "Read published prices back from Redis",
	Long: `Read the latest published market state for one or more symbols from the
Redis cache that a running simulation publishes into.

Example:
  tradewars latest --config tradewars.yaml NOVA FIN`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLatest,
}

var latestConfigPath string

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().StringVarP(&latestConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	latestCmd.MarkFlagRequired("config")
}

func runLatest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(latestConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is not configured")
	}

	pub := cache.NewPublisher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer pub.Close()

	ctx := cmd.Context()
	for _, sym := range args {
		entry, err := pub.Latest(ctx, sym)
		if err != nil {
			fmt.Printf("%-6s no published state: %v\n", sym, err)
			continue
		}
		fmt.Printf("%-6s $%.2f  change %+.2f%%  available %v  volume %v\n",
			sym, entry["price"], entry["change_percent"], entry["available"], entry["volume"])
	}
	return nil
}
