package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidOrder         ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeInvalidObservation   ErrorCode = 104
	ErrCodeInvalidVersion       ErrorCode = 105
	ErrCodeInvalidPrice         ErrorCode = 106

	// Strategy errors (400-499)
	ErrCodeMissingModule       ErrorCode = 400
	ErrCodeUnknownModule       ErrorCode = 401
	ErrCodeModuleFault         ErrorCode = 402
	ErrCodeStrategyConfigError ErrorCode = 403
	ErrCodeVersionMismatch     ErrorCode = 404
	ErrCodeExitBlocked         ErrorCode = 405

	// Trading errors (500-599)
	ErrCodeInvalidTrade      ErrorCode = 500
	ErrCodeOrderFailed       ErrorCode = 501
	ErrCodeInsufficientFunds ErrorCode = 502

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError ErrorCode = 600
	ErrCodeBacktestNoData      ErrorCode = 601
	ErrCodeBacktestNoJobs      ErrorCode = 602
	ErrCodeReportWriteFailed   ErrorCode = 603

	// Market data errors (700-799)
	ErrCodeMarketDataReadFailed  ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeTradesWriteFailed     ErrorCode = 702
	ErrCodeMarketDataWriteFailed ErrorCode = 703
)
