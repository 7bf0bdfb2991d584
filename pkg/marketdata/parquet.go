package marketdata

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

const marketDataView = "market_data"

var marketDataColumns = []string{"time", "symbol", "open", "high", "low", "close", "volume"}

// LoadParquet reads observations from a parquet file through an in-memory
// DuckDB view, ordered by time then symbol.
func LoadParquet(path string) ([]types.MarketData, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataReadFailed, err, "failed to open %s", path)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataReadFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	// squirrel has no CREATE VIEW
	_, err = db.Exec(fmt.Sprintf(`CREATE VIEW %s AS SELECT * FROM read_parquet('%s')`, marketDataView, quote(path)))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataReadFailed, err, "failed to read parquet %s", path)
	}

	rows, err := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(marketDataColumns...).
		From(marketDataView).
		OrderBy("time ASC", "symbol ASC").
		RunWith(db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataReadFailed, "failed to query market data", err)
	}
	defer rows.Close()

	var data []types.MarketData

	for rows.Next() {
		var marketData types.MarketData
		if err := rows.Scan(&marketData.Time, &marketData.Symbol, &marketData.Open, &marketData.High,
			&marketData.Low, &marketData.Close, &marketData.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to scan market data", err)
		}

		data = append(data, marketData)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataReadFailed, "failed to iterate market data", err)
	}

	return data, nil
}

// WriteParquet stores observations in a parquet file readable by LoadParquet.
func WriteParquet(path string, data []types.MarketData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create directory for %s", path)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create market data table", err)
	}

	sq := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

	for _, marketData := range data {
		_, err := sq.Insert(marketDataView).
			Columns(marketDataColumns...).
			Values(marketData.Time, marketData.Symbol, marketData.Open, marketData.High,
				marketData.Low, marketData.Close, marketData.Volume).
			RunWith(db).
			Exec()
		if err != nil {
			return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert market data", err)
		}
	}

	_, err = db.Exec(fmt.Sprintf(`COPY (SELECT * FROM %s ORDER BY time ASC) TO '%s' (FORMAT PARQUET)`,
		marketDataView, quote(path)))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to export parquet %s", path)
	}

	return nil
}

func quote(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
