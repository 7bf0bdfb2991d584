// Package config loads and validates run configuration files.
package config

import (
	"encoding/json"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-modular/internal/commission"
	"github.com/rxtech-lab/argo-modular/internal/modules"
	"github.com/rxtech-lab/argo-modular/internal/utils"
	"github.com/rxtech-lab/argo-modular/internal/version"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BacktestConfig configures the replay driver.
type BacktestConfig struct {
	InitialCapital   float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting capital for the backtest,minimum=0,default=100000" validate:"gt=0"`
	Broker           commission.Broker          `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations" validate:"omitempty,oneof=interactive_broker percentage zero_commission"`
	DecimalPrecision int                        `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"title=Decimal Precision,description=Decimal places of fill quantities,default=0" validate:"gte=0,lte=8"`
	StartTime        optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime          optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	// BarMinutes consolidates the input into N-minute bars; zero replays the input as is
	BarMinutes int `yaml:"bar_minutes" json:"bar_minutes" jsonschema:"title=Bar Minutes,description=Consolidate observations into bars of this many minutes,minimum=0,maximum=1440,default=0" validate:"gte=0,lte=1440"`
	// Symbols restricts the replay to these symbols; empty replays every symbol
	Symbols []string `yaml:"symbols,omitempty" json:"symbols,omitempty" jsonschema:"title=Symbols,description=Symbols to replay"`
}

type rawBacktestConfig struct {
	InitialCapital   float64           `yaml:"initial_capital"`
	Broker           commission.Broker `yaml:"broker"`
	DecimalPrecision int               `yaml:"decimal_precision"`
	StartTime        *time.Time        `yaml:"start_time,omitempty"`
	EndTime          *time.Time        `yaml:"end_time,omitempty"`
	BarMinutes       int               `yaml:"bar_minutes"`
	Symbols          []string          `yaml:"symbols,omitempty"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestConfig. Keys
// missing from the document keep their current values.
func (c *BacktestConfig) UnmarshalYAML(value *yaml.Node) error {
	raw := rawBacktestConfig{
		InitialCapital:   c.InitialCapital,
		Broker:           c.Broker,
		DecimalPrecision: c.DecimalPrecision,
		StartTime:        nil,
		EndTime:          nil,
		BarMinutes:       c.BarMinutes,
		Symbols:          c.Symbols,
	}

	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.InitialCapital = raw.InitialCapital
	c.Broker = raw.Broker
	c.DecimalPrecision = raw.DecimalPrecision
	c.BarMinutes = raw.BarMinutes
	c.Symbols = raw.Symbols

	if raw.StartTime != nil {
		c.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		c.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// MarshalYAML writes optional times as plain timestamps.
func (c BacktestConfig) MarshalYAML() (any, error) {
	raw := rawBacktestConfig{
		InitialCapital:   c.InitialCapital,
		Broker:           c.Broker,
		DecimalPrecision: c.DecimalPrecision,
		StartTime:        nil,
		EndTime:          nil,
		BarMinutes:       c.BarMinutes,
		Symbols:          c.Symbols,
	}

	if c.StartTime.IsSome() {
		start := c.StartTime.Unwrap()
		raw.StartTime = &start
	}

	if c.EndTime.IsSome() {
		end := c.EndTime.Unwrap()
		raw.EndTime = &end
	}

	return raw, nil
}

// RunConfig is the full description of a replay run.
type RunConfig struct {
	// Version is the library version the file was written for
	Version  string                 `yaml:"version" json:"version" jsonschema:"title=Version,description=Library version the configuration targets"`
	Backtest BacktestConfig         `yaml:"backtest" json:"backtest" jsonschema:"title=Backtest"`
	Strategy modules.StrategyConfig `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy"`
}

// Default returns a runnable configuration for the current library version.
func Default() RunConfig {
	return RunConfig{
		Version: version.Version,
		Backtest: BacktestConfig{
			InitialCapital:   100000,
			Broker:           commission.BrokerZero,
			DecimalPrecision: 0,
			StartTime:        optional.None[time.Time](),
			EndTime:          optional.None[time.Time](),
			BarMinutes:       0,
			Symbols:          nil,
		},
		Strategy: modules.DefaultStrategyConfig(),
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, errors.Wrapf(errors.ErrCodeBacktestConfigError, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse decodes a YAML document on top of Default and validates it.
func Parse(data []byte) (RunConfig, error) {
	config := Default()
	config.Version = ""

	if err := yaml.Unmarshal(data, &config); err != nil {
		return RunConfig{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return RunConfig{}, err
	}

	return config, nil
}

// Validate checks field constraints, the version and that the strategy can be built.
func (c RunConfig) Validate() error {
	if err := version.CheckConfigCompatibility(version.Version, c.Version); err != nil {
		return err
	}

	if err := utils.ValidateConfig("backtest", c.Backtest); err != nil {
		return err
	}

	if c.Backtest.StartTime.IsSome() && c.Backtest.EndTime.IsSome() &&
		c.Backtest.EndTime.Unwrap().Before(c.Backtest.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeBacktestConfigError, "end_time must not be before start_time")
	}

	if err := utils.ValidateConfig("strategy", c.Strategy); err != nil {
		return err
	}

	if _, err := modules.NewStrategy(c.Strategy); err != nil {
		return err
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c RunConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to marshal config", err)
	}

	return data, nil
}

// GenerateSchema generates a JSON schema for RunConfig.
func GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.HasSuffix(t.String(), "commission.Broker") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission.AllBrokers,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(&RunConfig{})
	schema.Title = "run-config"
	schema.Description = "Configuration schema for a strategy replay run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates the JSON schema as an indented string.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to marshal schema", err)
	}

	return string(schemaBytes), nil
}
