// Package writer persists trade records to parquet through an in-memory DuckDB table.
package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

const tradesTable = "trades"

var tradeColumns = []string{
	"symbol", "entry_time", "exit_time", "entry_price", "exit_price",
	"quantity", "pnl", "pnl_percent", "is_win", "tag", "strategy_name",
}

// TradesWriter collects trade records and exports them to a parquet file.
type TradesWriter struct {
	db           *sql.DB
	sq           squirrel.StatementBuilderType
	outputPath   string
	strategyName string
	mu           sync.Mutex
}

// NewTradesWriter creates a writer for outputPath. Records are tagged with strategyName.
func NewTradesWriter(outputPath string, strategyName string) *TradesWriter {
	return &TradesWriter{
		db:           nil,
		sq:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath:   outputPath,
		strategyName: strategyName,
		mu:           sync.Mutex{},
	}
}

// Initialize opens the DuckDB connection and creates the trades table.
func (w *TradesWriter) Initialize() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(w.outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeTradesWriteFailed, err, "failed to create directory %s", dir)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to open DuckDB connection", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			symbol TEXT,
			entry_time TIMESTAMP,
			exit_time TIMESTAMP,
			entry_price DOUBLE,
			exit_price DOUBLE,
			quantity DOUBLE,
			pnl DOUBLE,
			pnl_percent DOUBLE,
			is_win BOOLEAN,
			tag TEXT,
			strategy_name TEXT
		)
	`)
	if err != nil {
		db.Close()

		return errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to create trades table", err)
	}

	w.db = db

	return nil
}

// Write stores one trade record. Call Flush to export.
func (w *TradesWriter) Write(record types.TradeRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeTradesWriteFailed, "writer not initialized")
	}

	_, err := w.sq.
		Insert(tradesTable).
		Columns(tradeColumns...).
		Values(
			record.Symbol, record.EntryTime, record.ExitTime, record.EntryPrice, record.ExitPrice,
			record.Quantity, record.PnL, record.PnLPercent, record.IsWin, record.Tag, w.strategyName,
		).
		RunWith(w.db).
		Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to insert trade", err)
	}

	return nil
}

// Flush exports the stored records to the parquet file, ordered by exit time.
func (w *TradesWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return errors.New(errors.ErrCodeTradesWriteFailed, "writer not initialized")
	}

	path := strings.ReplaceAll(w.outputPath, "'", "''")

	_, err := w.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM trades ORDER BY exit_time ASC)
		TO '%s' (FORMAT PARQUET)
	`, path))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeTradesWriteFailed, err, "failed to export trades to %s", w.outputPath)
	}

	return nil
}

// Records returns the stored records ordered by exit time.
func (w *TradesWriter) Records() ([]types.TradeRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return nil, errors.New(errors.ErrCodeTradesWriteFailed, "writer not initialized")
	}

	rows, err := w.sq.
		Select(tradeColumns[:len(tradeColumns)-1]...).
		From(tradesTable).
		OrderBy("exit_time ASC").
		RunWith(w.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var records []types.TradeRecord

	for rows.Next() {
		var record types.TradeRecord

		err := rows.Scan(
			&record.Symbol,
			&record.EntryTime,
			&record.ExitTime,
			&record.EntryPrice,
			&record.ExitPrice,
			&record.Quantity,
			&record.PnL,
			&record.PnLPercent,
			&record.IsWin,
			&record.Tag,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to scan trade", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to read trades", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (w *TradesWriter) Count() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return 0, errors.New(errors.ErrCodeTradesWriteFailed, "writer not initialized")
	}

	var count int

	query, args, err := w.sq.Select("COUNT(*)").From(tradesTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to build count query", err)
	}

	if err := w.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to count trades", err)
	}

	return count, nil
}

// TotalPnL returns the sum of stored pnl.
func (w *TradesWriter) TotalPnL() (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db == nil {
		return 0, errors.New(errors.ErrCodeTradesWriteFailed, "writer not initialized")
	}

	var total sql.NullFloat64

	query, args, err := w.sq.Select("SUM(pnl)").From(tradesTable).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to build pnl query", err)
	}

	if err := w.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to sum pnl", err)
	}

	if !total.Valid {
		return 0, nil
	}

	return total.Float64, nil
}

func (w *TradesWriter) OutputPath() string {
	return w.outputPath
}

// Close releases the database.
func (w *TradesWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.db != nil {
		if err := w.db.Close(); err != nil {
			return errors.Wrap(errors.ErrCodeTradesWriteFailed, "failed to close database", err)
		}

		w.db = nil
	}

	return nil
}
