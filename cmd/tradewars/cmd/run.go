package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jinish2170/Tradewars/cache"
	"github.com/Jinish2170/Tradewars/config"
	"github.com/Jinish2170/Tradewars/engine"
	"github.com/Jinish2170/Tradewars/journal"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run trading sessions from a config file",
	Long: `Run the market simulation using settings from a configuration file.

The engine is driven by a wall-clock ticker at one tick per second. Each
session runs for the configured duration and ends automatically; the final
portfolio standings are printed when the run finishes.

Example:
  tradewars run --config tradewars.yaml --sessions 2`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSessions   int
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().IntVarP(&runSessions, "sessions", "n", 1, "number of sessions to run")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	j, err := buildJournal(cfg, log)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	eng, err := engine.New(engine.Options{
		Teams:            cfg.Market.Teams,
		StartingBudget:   cfg.Market.StartingBudget,
		Instruments:      cfg.Market.Instruments,
		SessionDuration:  cfg.Session.DurationSeconds,
		MaxSessions:      cfg.Session.MaxSessions,
		ConvergenceSteps: cfg.Session.ConvergenceSteps,
		SnapshotInterval: cfg.Session.SnapshotInterval,
		Pricing:          cfg.Pricing,
		Journal:          j,
		Authorizer:       engine.KeyAuthorizer(cfg.Admin.Key),
		Logger:           log,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pub *cache.Publisher
	if cfg.Redis.Addr != "" {
		pub = cache.NewPublisher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer pub.Close()
		if err := pub.Ping(ctx); err != nil {
			log.Warn("redis unreachable, snapshots will not be published", "error", err)
			pub = nil
		}
	}

	for n := 0; n < runSessions; n++ {
		if !eng.StartSession() {
			break
		}
		if err := driveSession(ctx, eng, pub); err != nil {
			return err
		}
	}

	printStandings(eng)
	return nil
}

// driveSession is the authoritative clock: one engine tick per wall-clock
// second until the session ends or the run is interrupted.
func driveSession(ctx context.Context, eng *engine.Engine, pub *cache.Publisher) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.EndSession()
			return nil
		case <-ticker.C:
			eng.Tick()

			status := eng.SessionStatus()
			if pub != nil && status.TickCount%5 == 0 {
				if err := pub.PublishSnapshot(ctx, eng.MarketSnapshot()); err != nil {
					slog.Warn("publish snapshot", "error", err)
				}
			}
			if status.State == engine.Ended {
				return nil
			}
		}
	}
}

func printStandings(eng *engine.Engine) {
	fmt.Println("\nFinal standings:")
	for team := 0; team < eng.Teams(); team++ {
		p, err := eng.Portfolio(team)
		if err != nil {
			continue
		}
		fmt.Printf("  Team %2d  cash $%12.2f  holdings $%12.2f  total $%12.2f\n",
			team, p.Cash, p.HoldingsValue, p.TotalValue)
	}
}

func buildJournal(cfg *config.Config, log *slog.Logger) (journal.Journal, error) {
	var inner journal.Journal
	var err error

	switch cfg.Journal.Type {
	case "sqlite":
		inner, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		inner, err = journal.NewCSV(cfg.Journal.OrdersFile, cfg.Journal.EventsFile)
	default:
		inner = journal.Nop{}
	}
	if err != nil {
		return nil, err
	}
	return journal.NewAsync(inner, cfg.Journal.Buffer, log), nil
}
