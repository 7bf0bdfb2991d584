package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/argo-modular/internal/backtest"
	"github.com/rxtech-lab/argo-modular/internal/config"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/mocks"
	"github.com/rxtech-lab/argo-modular/pkg/marketdata"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type BacktestCmdTestSuite struct {
	suite.Suite
	tempDir  string
	dataPath string
}

func TestBacktestCmdSuite(t *testing.T) {
	suite.Run(t, new(BacktestCmdTestSuite))
}

func (suite *BacktestCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
	suite.dataPath = filepath.Join(suite.tempDir, "bars.csv")

	data := mocks.NewDataGenerator(11).Generate(mocks.DefaultConfig())

	var buf bytes.Buffer
	suite.Require().NoError(marketdata.WriteCSV(&buf, data))
	suite.Require().NoError(os.WriteFile(suite.dataPath, buf.Bytes(), 0644))
}

func (suite *BacktestCmdTestSuite) writeConfig(name string, mutate func(*config.RunConfig)) string {
	cfg := config.Default()
	cfg.Strategy.Name = name

	if mutate != nil {
		mutate(&cfg)
	}

	data, err := cfg.Marshal()
	suite.Require().NoError(err)

	path := filepath.Join(suite.tempDir, name+".yaml")
	suite.Require().NoError(os.WriteFile(path, data, 0644))

	return path
}

func (suite *BacktestCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out

	err := app.Run(context.Background(), append([]string{"backtest", "--log-level", "error"}, args...))

	return out.String(), err
}

func (suite *BacktestCmdTestSuite) TestRun() {
	configPath := suite.writeConfig("trend", nil)
	reportPath := filepath.Join(suite.tempDir, "report.yaml")
	ledgerPath := filepath.Join(suite.tempDir, "ledger.yaml")
	tradesPath := filepath.Join(suite.tempDir, "trades.parquet")

	out, err := suite.run("run",
		"--config", configPath,
		"--data", suite.dataPath,
		"--output", reportPath,
		"--ledger", ledgerPath,
		"--trades", tradesPath,
	)
	suite.Require().NoError(err)
	suite.Contains(out, "trend")
	suite.Contains(out, "RESULTS SUMMARY")

	content, err := os.ReadFile(reportPath)
	suite.Require().NoError(err)

	var reports []types.RunReport
	suite.Require().NoError(yaml.Unmarshal(content, &reports))
	suite.Require().Len(reports, 1)
	suite.Equal("trend", reports[0].Strategy.Name)
	suite.Equal(390, reports[0].Ticks)
	suite.Equal(suite.dataPath, reports[0].DataPath)

	suite.FileExists(ledgerPath)
	suite.FileExists(tradesPath)
}

func (suite *BacktestCmdTestSuite) TestRunRejectsBadConfig() {
	path := filepath.Join(suite.tempDir, "bad.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte("backtest:\n  initial_capital: -1\n"), 0644))

	_, err := suite.run("run", "--config", path, "--data", suite.dataPath)
	suite.Error(err)
}

func (suite *BacktestCmdTestSuite) TestSweep() {
	first := suite.writeConfig("fast", nil)
	second := suite.writeConfig("slow", func(cfg *config.RunConfig) {
		cfg.Backtest.InitialCapital = 50000
	})
	reportPath := filepath.Join(suite.tempDir, "sweep.yaml")

	out, err := suite.run("sweep",
		"--config", first,
		"--config", second,
		"--data", suite.dataPath,
		"--parallel", "2",
		"--output", reportPath,
		"--trades-dir", filepath.Join(suite.tempDir, "trades"),
	)
	suite.Require().NoError(err)
	suite.Contains(out, "Sweep results")
	suite.Contains(out, "fast")
	suite.Contains(out, "slow")

	content, err := os.ReadFile(reportPath)
	suite.Require().NoError(err)

	var reports []types.RunReport
	suite.Require().NoError(yaml.Unmarshal(content, &reports))
	suite.Require().Len(reports, 2)
	suite.Equal("fast", reports[0].Strategy.Name)
	suite.Equal("slow", reports[1].Strategy.Name)

	suite.FileExists(filepath.Join(suite.tempDir, "trades", "fast.parquet"))
}

func (suite *BacktestCmdTestSuite) TestRenderSweep() {
	out := renderSweep([]backtest.Result{
		{
			Name: "ema_stop",
			Report: types.RunReport{
				Metrics:     types.MetricsSnapshot{TotalTrades: 12, WinRate: 0.5, TotalReturn: 0.031},
				FinalEquity: 103100,
			},
			Summary: "",
		},
	})

	suite.Contains(out, "ema_stop")
	suite.Contains(out, "50.0%")
	suite.Contains(out, "3.10%")
	suite.Contains(out, "103100.00")
}
