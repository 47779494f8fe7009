package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/crimson-sun/loganalyze/internal/logging"
	"github.com/crimson-sun/loganalyze/internal/operation"
)

// EnvPrefix is prepended to every environment variable, e.g. LOGANALYZE_OUTPUT.
const EnvPrefix = "LOGANALYZE"

// Keys read by Load.
const (
	KeyLogs       = "logs"
	KeyOutput     = "output"
	KeyFormat     = "format"
	KeySeparator  = "separator"
	KeyKeepEmpty  = "keep_empty"
	KeyPretty     = "pretty"
	KeyStdout     = "stdout"
	KeyKeep       = "keep"
	KeyLogLevel   = "log_level"
	KeyMostFreq   = "ops.mostfreqip"
	KeyLessFreq   = "ops.lessfreqip"
	KeyEvents     = "ops.events"
	KeyTotalBytes = "ops.totalbytes"
)

// Config holds all loganalyze configuration.
type Config struct {
	Input      InputConfig
	Output     OutputConfig
	Operations OperationsConfig
	LogLevel   string
}

// InputConfig holds log sources and the line layout overrides.
type InputConfig struct {
	Logs       []string
	FormatPath string // TOML layout file, "" for the default layout
	Separator  string // overrides the layout separator when set
	KeepEmpty  bool   // disables empty-field skipping
}

// OutputConfig holds report destination settings.
type OutputConfig struct {
	Path   string // "-" writes to stdout only
	Pretty bool
	Stdout bool // also print the report to stdout
	Keep   int  // previous reports kept next to Path
}

// OperationsConfig selects the active operations.
type OperationsConfig struct {
	MostFrequent  bool
	LeastFrequent bool
	Events        bool
	TotalBytes    bool
}

// Kinds returns the selected operations in activation order.
func (o OperationsConfig) Kinds() []operation.Kind {
	var kinds []operation.Kind
	for _, k := range operation.Kinds {
		if o.enabled(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (o OperationsConfig) enabled(k operation.Kind) bool {
	switch k {
	case operation.KindMostFrequent:
		return o.MostFrequent
	case operation.KindLeastFrequent:
		return o.LeastFrequent
	case operation.KindEvents:
		return o.Events
	case operation.KindTotalBytes:
		return o.TotalBytes
	default:
		return false
	}
}

// NewViper returns a viper instance with loganalyze defaults and
// environment binding.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, "report.json")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyKeep, 0)
}

// Load reads configuration from v (flags, environment, config file).
func Load(v *viper.Viper) Config {
	return Config{
		Input: InputConfig{
			Logs:       splitLogs(v.GetStringSlice(KeyLogs)),
			FormatPath: v.GetString(KeyFormat),
			Separator:  v.GetString(KeySeparator),
			KeepEmpty:  v.GetBool(KeyKeepEmpty),
		},
		Output: OutputConfig{
			Path:   v.GetString(KeyOutput),
			Pretty: v.GetBool(KeyPretty),
			Stdout: v.GetBool(KeyStdout),
			Keep:   v.GetInt(KeyKeep),
		},
		Operations: OperationsConfig{
			MostFrequent:  v.GetBool(KeyMostFreq),
			LeastFrequent: v.GetBool(KeyLessFreq),
			Events:        v.GetBool(KeyEvents),
			TotalBytes:    v.GetBool(KeyTotalBytes),
		},
		LogLevel: v.GetString(KeyLogLevel),
	}
}

var (
	ErrNoLogs       = errors.New("no log files given")
	ErrNoOperations = errors.New("no operation selected")
	ErrNoOutput     = errors.New("no output path given")
)

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	var errs []error
	if len(c.Input.Logs) == 0 {
		errs = append(errs, ErrNoLogs)
	}
	if len(c.Operations.Kinds()) == 0 {
		errs = append(errs, ErrNoOperations)
	}
	if c.Output.Path == "" {
		errs = append(errs, ErrNoOutput)
	}
	if c.Output.Keep < 0 {
		errs = append(errs, fmt.Errorf("keep must be >= 0, got %d", c.Output.Keep))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// splitLogs expands comma separated entries and trims whitespace.
func splitLogs(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, p := range strings.Split(entry, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
