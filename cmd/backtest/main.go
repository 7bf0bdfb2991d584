package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-modular/internal/backtest"
	"github.com/rxtech-lab/argo-modular/internal/config"
	"github.com/rxtech-lab/argo-modular/internal/logger"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/internal/version"
	"github.com/rxtech-lab/argo-modular/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	log, err := logger.NewLoggerWithLevel(logger.ParseLevel(cmd.String("log-level")))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return log, nil
}

// runAction replays one configuration over one data file.
func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	dataPath := cmd.String("data")

	data, err := marketdata.Load(dataPath)
	if err != nil {
		return err
	}

	engine, err := backtest.NewEngine(cfg,
		backtest.WithLogger(log),
		backtest.WithProgress(cmd.Bool("progress")),
		backtest.WithTradesOutput(cmd.String("trades")),
		backtest.WithDataPath(dataPath),
	)
	if err != nil {
		return err
	}

	report, err := engine.Run(ctx, data)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderReport(report, engine.Ledger().Summary()))

	if output := cmd.String("output"); output != "" {
		if err := types.WriteRunReports(output, []types.RunReport{report}); err != nil {
			return err
		}
	}

	if ledgerPath := cmd.String("ledger"); ledgerPath != "" {
		if err := engine.Ledger().WriteYAML(ledgerPath); err != nil {
			return err
		}
	}

	return nil
}

// sweepAction replays several configurations over the same data concurrently.
func sweepAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	dataPath := cmd.String("data")

	data, err := marketdata.Load(dataPath)
	if err != nil {
		return err
	}

	tradesDir := cmd.String("trades-dir")
	configPaths := cmd.StringSlice("config")
	jobs := make([]backtest.Job, 0, len(configPaths))

	for _, path := range configPaths {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		job := backtest.Job{
			Name:       name,
			Config:     cfg,
			Data:       data,
			TradesPath: "",
			DataPath:   dataPath,
		}

		if tradesDir != "" {
			job.TradesPath = filepath.Join(tradesDir, name+".parquet")
		}

		jobs = append(jobs, job)
	}

	results, err := backtest.RunBatch(ctx, jobs, int(cmd.Int("parallel")), log)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSweep(results))

	if output := cmd.String("output"); output != "" {
		reports := make([]types.RunReport, len(results))
		for i, result := range results {
			reports[i] = result.Report
		}

		if err := types.WriteRunReports(output, reports); err != nil {
			return err
		}
	}

	return nil
}

func dataFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "Path to the market data file (.csv or .parquet)",
		Required: true,
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Replay modular strategies over historical market data",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "warn",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run one configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the run configuration YAML",
						Required: true,
					},
					dataFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the run report to this YAML file",
					},
					&cli.StringFlag{
						Name:  "trades",
						Usage: "Write closed trades to this parquet file",
					},
					&cli.StringFlag{
						Name:  "ledger",
						Usage: "Write metrics, trades and daily returns to this YAML file",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Show a progress bar",
						Value: false,
					},
				},
				Action: runAction,
			},
			{
				Name:  "sweep",
				Usage: "Run several configurations over the same data",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to a run configuration YAML, repeatable",
						Required: true,
					},
					dataFlag(),
					&cli.IntFlag{
						Name:    "parallel",
						Aliases: []string{"p"},
						Usage:   "Maximum concurrent runs, 0 for unlimited",
						Value:   4,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write all run reports to this YAML file",
					},
					&cli.StringFlag{
						Name:  "trades-dir",
						Usage: "Write each run's closed trades to <dir>/<config>.parquet",
					},
				},
				Action: sweepAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
