package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"marketbrain/internal/brain"
	"marketbrain/internal/config"
	"marketbrain/internal/coordinator"
	"marketbrain/internal/httpapi"
	"marketbrain/internal/logger"
	"marketbrain/internal/registry"
)

const dateLayout = "2006-01-02"

// app is everything a command needs, built from the loaded configuration.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	brain *brain.Orchestrator
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: true})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	reg := registry.New(cfg, factories(), log)
	if reg.Len() == 0 {
		log.Warn("no providers registered; set at least one <PROVIDER>_API_KEY")
	}

	return &app{
		cfg:   cfg,
		log:   log,
		brain: brain.NewFromConfig(cfg, reg, log),
	}, nil
}

func (a *app) Close() {
	a.brain.Close()
	_ = a.log.Sync()
}

// withApp builds the app around one command action and tears it down after.
func withApp(action func(ctx context.Context, cmd *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return action(ctx, cmd, a)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func quoteAction(ctx context.Context, cmd *cli.Command, a *app) error {
	symbol := cmd.Args().First()
	if symbol == "" {
		return cli.Exit("usage: marketbrain quote SYMBOL", 2)
	}

	res := a.brain.GetQuote(ctx, symbol)
	if err := printJSON(os.Stdout, res); err != nil {
		return err
	}
	if !res.Success {
		return cli.Exit("", 1)
	}
	return nil
}

func quotesAction(ctx context.Context, cmd *cli.Command, a *app) error {
	symbols := cmd.Args().Slice()
	if len(symbols) == 0 {
		return cli.Exit("usage: marketbrain quotes SYMBOL [SYMBOL...]", 2)
	}

	fmt.Println("Fetching quotes...")
	fmt.Println("================================================")
	failed, err := coordinator.New(a.brain, os.Stdout).Run(ctx, symbols)
	if err != nil {
		return err
	}
	fmt.Println("================================================")

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d quotes failed", failed, len(symbols)), 1)
	}
	return nil
}

func historyAction(ctx context.Context, cmd *cli.Command, a *app) error {
	symbol := cmd.Args().First()
	if symbol == "" {
		return cli.Exit("usage: marketbrain history SYMBOL [--start YYYY-MM-DD] [--end YYYY-MM-DD]", 2)
	}

	end := cmd.Timestamp("end")
	if end.IsZero() {
		end = time.Now().UTC()
	}
	start := cmd.Timestamp("start")
	if start.IsZero() {
		start = end.AddDate(0, -1, 0)
	}

	res := a.brain.GetHistorical(ctx, symbol, start, end, cmd.String("interval"))
	if err := printJSON(os.Stdout, res); err != nil {
		return err
	}
	if !res.Success {
		return cli.Exit("", 1)
	}
	return nil
}

func providersAction(_ context.Context, _ *cli.Command, a *app) error {
	for _, info := range a.brain.ProviderDetails() {
		state := "available"
		if info.LimitedSince != nil {
			state = "rate-limited since " + info.LimitedSince.Format(time.RFC3339)
		}
		fmt.Printf("%-16s priority=%d  %-40s %s\n", info.ID, info.Priority, strings.Join(info.Capabilities, ","), state)
	}
	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command, a *app) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = a.cfg.HTTPAddr
	}
	return httpapi.New(addr, a.brain, a.log).Run(ctx)
}

func newCommand() *cli.Command {
	dateConfig := cli.TimestampConfig{Layouts: []string{dateLayout}}

	return &cli.Command{
		Name:  "marketbrain",
		Usage: "Market data from multiple providers with automatic fallback",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (default: ./config.yaml or $HOME/.marketbrain/config.yaml)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "quote",
				Usage:     "Print the latest quote for a symbol",
				ArgsUsage: "SYMBOL",
				Action:    withApp(quoteAction),
			},
			{
				Name:      "quotes",
				Usage:     "Fetch quotes for several symbols concurrently",
				ArgsUsage: "SYMBOL [SYMBOL...]",
				Action:    withApp(quotesAction),
			},
			{
				Name:      "history",
				Usage:     "Print historical bars for a symbol",
				ArgsUsage: "SYMBOL",
				Flags: []cli.Flag{
					&cli.TimestampFlag{
						Name:    "start",
						Aliases: []string{"s"},
						Usage:   "Start date in `YYYY-MM-DD` format. Defaults to one month before end.",
						Config:  dateConfig,
					},
					&cli.TimestampFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
						Config:  dateConfig,
					},
					&cli.StringFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Bar interval, e.g. 1d, 1h, 5m",
						Value:   "1d",
					},
				},
				Action: withApp(historyAction),
			},
			{
				Name:   "providers",
				Usage:  "List enabled providers in priority order with their rate-limit state",
				Action: withApp(providersAction),
			},
			{
				Name:  "serve",
				Usage: "Serve the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (default from config, :8080)",
					},
				},
				Action: withApp(serveAction),
			},
		},
	}
}

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
