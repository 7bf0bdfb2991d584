package mocks

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-modular/internal/types"
)

// DataGenerator generates synthetic bar series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	Symbol    string
	StartTime time.Time
	// Interval is the duration between each bar
	Interval     time.Duration
	Count        int
	InitialPrice float64
	// Volatility is the per bar standard deviation of returns (0.01 = 1%)
	Volatility float64
	// Drift is the per bar expected return
	Drift      float64
	VolumeBase float64
}

// DefaultConfig returns one trading day of minute bars.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "TEST",
		StartTime:    time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Interval:     time.Minute,
		Count:        390,
		InitialPrice: 100.0,
		Volatility:   0.002,
		Drift:        0,
		VolumeBase:   10000,
	}
}

// Generate creates a random walk of bars following a geometric Brownian motion.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	data := make([]types.MarketData, config.Count)
	price := config.InitialPrice
	barTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := price

		closePrice := open * (1 + config.Drift + config.Volatility*g.rng.NormFloat64())
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) * (1 + math.Abs(g.rng.NormFloat64())*config.Volatility*0.5)
		low := math.Min(open, closePrice) * (1 - math.Abs(g.rng.NormFloat64())*config.Volatility*0.5)

		data[i] = types.MarketData{
			Symbol: config.Symbol,
			Time:   barTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(math.Max(low, 0.0001), 4),
			Close:  roundToDecimals(closePrice, 4),
			Volume: roundToDecimals(config.VolumeBase*(0.5+g.rng.Float64()), 2),
		}

		price = closePrice
		barTime = barTime.Add(config.Interval)
	}

	return data
}

// GenerateMultiSymbol generates one series per symbol and interleaves them by time.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.MarketData {
	var allData []types.MarketData

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)

		allData = append(allData, g.Generate(config)...)
	}

	sort.SliceStable(allData, func(i, j int) bool {
		return allData[i].Time.Before(allData[j].Time)
	})

	return allData
}

// FromCloses builds flat bars (open = high = low = close) from a close series.
func FromCloses(symbol string, start time.Time, interval time.Duration, closes ...float64) []types.MarketData {
	data := make([]types.MarketData, len(closes))
	for i, c := range closes {
		data[i] = Bar(symbol, start.Add(time.Duration(i)*interval), c)
	}

	return data
}

// Bar builds one flat bar.
func Bar(symbol string, at time.Time, closePrice float64) types.MarketData {
	return types.MarketData{
		Symbol: symbol,
		Time:   at,
		Open:   closePrice,
		High:   closePrice,
		Low:    closePrice,
		Close:  closePrice,
		Volume: 1000,
	}
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
