package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tradewars",
	Short: "A multi-team market-trading simulation",
	Long: `TradeWars is an educational market-trading simulation.

Fictitious instruments evolve under synthetic supply/demand, trend and
news-event forces while competing teams submit buy and sell orders during
timed trading sessions.

It provides:
  - Timed trading sessions with pause/resume and a per-second tick loop
  - Bounded random-walk pricing with trend, sector and volatility dynamics
  - Slippage and impact aware order execution with a circuit breaker
  - News events that converge prices exactly onto announced targets
  - An append-only SQLite/CSV journal of orders, events and snapshots`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
