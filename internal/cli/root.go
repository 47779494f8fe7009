package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/crimson-sun/loganalyze/internal/config"
	"github.com/crimson-sun/loganalyze/internal/logging"
	"github.com/crimson-sun/loganalyze/internal/operation"
	"github.com/crimson-sun/loganalyze/internal/output"
	"github.com/crimson-sun/loganalyze/internal/output/file"
	"github.com/crimson-sun/loganalyze/internal/output/multi"
	"github.com/crimson-sun/loganalyze/internal/output/stdout"
	"github.com/crimson-sun/loganalyze/internal/pipeline"
	"github.com/crimson-sun/loganalyze/internal/schema"
	"github.com/crimson-sun/loganalyze/internal/source"
	"github.com/crimson-sun/loganalyze/internal/tokenizer"
)

// NewRootCmd builds the loganalyze command. Flags, LOGANALYZE_* environment
// variables and an optional config file all feed the same viper instance.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "loganalyze [flags] [logs...]",
		Short: "Log analyzing tool",
		Long: `loganalyze reads delimited access logs, decodes every line against a
field layout and writes one JSON report with the selected statistics.

Examples:
  loganalyze -m -b -l access.log -o report.json
  loganalyze --events --totalbytes access.log access.log.1.gz -o -
  loganalyze -m -f squid.toml -l "a.log, b.log"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			cfg := config.Load(v)
			cfg.Input.Logs = append(cfg.Input.Logs, args...)

			if err := cfg.Validate(); err != nil {
				if errors.Is(err, config.ErrNoLogs) {
					cmd.Usage()
				}
				return err
			}
			return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	flags.BoolP("mostfreqip", "m", false, "Most frequent IP")
	flags.BoolP("lessfreqip", "n", false, "Less frequent IP")
	flags.BoolP("events", "e", false, "Events per second")
	flags.BoolP("totalbytes", "b", false, "Total amount of bytes exchanged")
	flags.StringP("output", "o", "report.json", `Output file in JSON format ("-" for stdout)`)
	flags.StringSliceP("logs", "l", nil, "Logs to analyze, comma separated")
	flags.StringP("format", "f", "", "TOML file describing the log line layout")
	flags.String("separator", "", "field separator (default: single space)")
	flags.Bool("keep-empty", false, "assign empty fields instead of skipping them")
	flags.Bool("pretty", false, "indent the JSON report")
	flags.Bool("stdout", false, "also print the report to stdout")
	flags.Int("keep", 0, "number of previous reports to keep as <output>.N")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	mustBind(v, flags, map[string]string{
		config.KeyMostFreq:   "mostfreqip",
		config.KeyLessFreq:   "lessfreqip",
		config.KeyEvents:     "events",
		config.KeyTotalBytes: "totalbytes",
		config.KeyOutput:     "output",
		config.KeyLogs:       "logs",
		config.KeyFormat:     "format",
		config.KeySeparator:  "separator",
		config.KeyKeepEmpty:  "keep-empty",
		config.KeyPretty:     "pretty",
		config.KeyStdout:     "stdout",
		config.KeyKeep:       "keep",
		config.KeyLogLevel:   "log-level",
	})
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "loganalyze: %v\n", err)
		os.Exit(1)
	}
}

func mustBind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func run(cfg config.Config, stdoutW, stderrW io.Writer) error {
	reportToStdout := cfg.Output.Path == source.Stdin || cfg.Output.Stdout
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.Init(stderrW, reportToStdout, level)

	layout, err := buildLayout(cfg.Input)
	if err != nil {
		return err
	}

	kinds := cfg.Operations.Kinds()
	ops := make([]operation.Operation, len(kinds))
	for i, k := range kinds {
		if ops[i], err = operation.New(k); err != nil {
			return err
		}
	}
	logger.Debug("starting analysis", "logs", cfg.Input.Logs, "operations", kinds)

	p := pipeline.New(tokenizer.New(layout), ops, pipeline.WithLogger(logger))
	report, err := p.RunPaths(cfg.Input.Logs...)
	if err != nil {
		return err
	}

	out := buildOutput(cfg.Output, stdoutW)
	if err := out.Write(report); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if cfg.Output.Path != source.Stdin {
		logger.Info("report written", "path", cfg.Output.Path)
	}
	return nil
}

func buildLayout(in config.InputConfig) (schema.Layout, error) {
	layout := schema.DefaultLayout()
	if in.FormatPath != "" {
		l, err := schema.LoadLayout(in.FormatPath)
		if err != nil {
			return schema.Layout{}, err
		}
		layout = l
	}
	if in.Separator != "" {
		layout.Separator = in.Separator
	}
	if in.KeepEmpty {
		layout.SkipEmpty = false
	}
	return layout, nil
}

func buildOutput(cfg config.OutputConfig, stdoutW io.Writer) output.Output {
	if cfg.Path == source.Stdin {
		return stdout.New(stdoutW, cfg.Pretty)
	}
	f := file.New(cfg.Path, file.WithPretty(cfg.Pretty), file.WithKeep(cfg.Keep))
	if cfg.Stdout {
		return multi.New(f, stdout.New(stdoutW, cfg.Pretty))
	}
	return f
}
