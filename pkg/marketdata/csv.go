// Package marketdata loads OHLCV observations from CSV and parquet files.
package marketdata

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-modular/internal/types"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// timeLayouts are tried in order when parsing the time column.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// csvRow mirrors one CSV line: time,symbol,open,high,low,close,volume.
type csvRow struct {
	Time   string  `csv:"time"`
	Symbol string  `csv:"symbol"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// Load reads observations from path, choosing the reader by extension.
func Load(path string) ([]types.MarketData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, errors.Newf(errors.ErrCodeMarketDataReadFailed, "unsupported market data file %s", path)
	}
}

// LoadCSV reads observations from a CSV file with a header row.
func LoadCSV(path string) ([]types.MarketData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataReadFailed, err, "failed to open %s", path)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV observations and returns them ordered by time. Rows with
// equal times keep their file order.
func ReadCSV(r io.Reader) ([]types.MarketData, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to parse market data csv", err)
	}

	data := make([]types.MarketData, 0, len(rows))

	for i, row := range rows {
		t, err := parseTime(row.Time)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "row %d", i+1)
		}

		data = append(data, types.MarketData{
			Symbol: strings.TrimSpace(row.Symbol),
			Time:   t,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	sortByTime(data)

	return data, nil
}

// WriteCSV writes observations in the format ReadCSV accepts.
func WriteCSV(w io.Writer, data []types.MarketData) error {
	rows := make([]csvRow, len(data))
	for i, marketData := range data {
		rows[i] = csvRow{
			Time:   marketData.Time.UTC().Format(time.RFC3339),
			Symbol: marketData.Symbol,
			Open:   marketData.Open,
			High:   marketData.High,
			Low:    marketData.Low,
			Close:  marketData.Close,
			Volume: marketData.Volume,
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write market data csv", err)
	}

	return nil
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	var lastErr error

	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}

func sortByTime(data []types.MarketData) {
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].Time.Before(data[j].Time)
	})
}
