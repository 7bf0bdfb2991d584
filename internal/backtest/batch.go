package backtest

import (
	"context"

	"github.com/rxtech-lab/argo-modular/internal/config"
	"github.com/rxtech-lab/argo-modular/internal/logger"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job is one independent replay of a batch.
type Job struct {
	Name   string
	Config config.RunConfig
	Data   []types.MarketData
	// TradesPath, when set, receives the parquet export of the job's trades
	TradesPath string
	DataPath   string
}

// Result pairs a job with its report and ledger summary.
type Result struct {
	Name    string
	Report  types.RunReport
	Summary string
}

// RunBatch runs jobs concurrently, at most limit at a time (unlimited when
// limit <= 0). Every job builds its own strategy, broker and ledger. The first
// failing job cancels the rest. Results keep the order of jobs.
func RunBatch(ctx context.Context, jobs []Job, limit int, log *logger.Logger) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrCodeBacktestNoJobs, "no jobs to run")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			engine, err := NewEngine(job.Config,
				WithLogger(log.With(zap.String("job", job.Name))),
				WithTradesOutput(job.TradesPath),
				WithDataPath(job.DataPath),
			)
			if err != nil {
				return errors.Wrapf(errors.GetCode(err), err, "job %s", job.Name)
			}

			report, err := engine.Run(ctx, job.Data)
			if err != nil {
				return errors.Wrapf(errors.GetCode(err), err, "job %s", job.Name)
			}

			results[i] = Result{
				Name:    job.Name,
				Report:  report,
				Summary: engine.Ledger().Summary(),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
