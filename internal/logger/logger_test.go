package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
	suite.True(logger.Core().Enabled(zapcore.InfoLevel))
	suite.False(logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestNewLoggerWithLevel() {
	logger, err := NewLoggerWithLevel(zapcore.DebugLevel)
	suite.NoError(err)
	suite.True(logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	// Should not panic
	logger.Info("tick", zap.String("symbol", "SPY"), zap.Float64("close", 101.5))
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestParseLevel() {
	suite.Equal(zapcore.DebugLevel, ParseLevel("debug"))
	suite.Equal(zapcore.WarnLevel, ParseLevel("warn"))
	suite.Equal(zapcore.InfoLevel, ParseLevel("not-a-level"))
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestWithKeepsWrapper() {
	child := NewNopLogger().With(zap.String("job", "sweep-1"))
	suite.NotNil(child.Logger)

	child.Debug("tick")
	suite.NoError(child.Sync())
}
