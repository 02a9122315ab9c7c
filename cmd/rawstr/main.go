package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gregwebs/go-recovery"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/invakid404/rawstring/internal/apierror"
	"github.com/invakid404/rawstring/internal/bytesize"
	"github.com/invakid404/rawstring/internal/report"
)

const (
	envPrefix       = "RAWSTR"
	defaultMaxBytes = 64 * bytesize.MiB
)

// settings is the resolved configuration shared by every command.
type settings struct {
	Pretty   bool
	LogLevel zerolog.Level
	Format   report.Format
	MaxBytes int64
}

var (
	cfg        settings
	logger     = zerolog.Nop()
	configured bool
)

var rootCmd = &cobra.Command{
	Use:           "rawstr",
	Short:         "Inspect byte strings that are not necessarily valid UTF-8",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := newConfig(cmd.Root().PersistentFlags())
		if err != nil {
			return err
		}

		cfg, err = loadConfig(v)
		if err != nil {
			return err
		}

		logger = newLogger(cmd.ErrOrStderr(), cfg.Pretty, cfg.LogLevel)
		configured = true

		// Set global panic recovery handler to use structured logging
		recovery.ErrorHandler = func(err error) {
			logger.Error().Err(err).Msg("Unhandled panic recovered")
		}

		logger.Debug().
			Str("format", string(cfg.Format)).
			Str("max_bytes", bytesize.Format(cfg.MaxBytes)).
			Msg("Configuration loaded")
		return nil
	},
}

// registerFlags adds the persistent flags to fs. Their values are read back
// through viper so the environment and a config file can override them.
func registerFlags(fs *pflag.FlagSet) {
	maxBytes := bytesize.Size(defaultMaxBytes)

	fs.String("config", "", "Config file (yaml, json or toml)")
	fs.Bool("pretty", false, "Use pretty console logging instead of structured JSON")
	fs.String("log-level", "info", "Log level (debug, info, warn, error)")
	fs.String("format", string(report.FormatText), "Output format (text, json, yaml)")
	fs.Var(&maxBytes, "max-bytes", "Largest input to read into memory (e.g. 4MiB, off, auto)")
}

// newConfig returns a viper instance layered over fs: flags first, then
// RAWSTR_* environment variables, then the config file if one was given.
func newConfig(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return v, nil
}

func loadConfig(v *viper.Viper) (settings, error) {
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return settings{}, fmt.Errorf("invalid log level: %w", err)
	}

	format, err := report.ParseFormat(v.GetString("format"))
	if err != nil {
		return settings{}, err
	}

	var maxBytes bytesize.Size
	if err := maxBytes.Set(v.GetString("max-bytes")); err != nil {
		return settings{}, fmt.Errorf("invalid max-bytes: %w", err)
	}

	return settings{
		Pretty:   v.GetBool("pretty"),
		LogLevel: level,
		Format:   format,
		MaxBytes: maxBytes.Resolve(defaultMaxBytes),
	}, nil
}

func newLogger(w io.Writer, pretty bool, level zerolog.Level) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// failureLogger returns the configured logger, or a plain JSON logger on w
// when configuration never completed.
func failureLogger(w io.Writer) zerolog.Logger {
	if configured {
		return logger
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func init() {
	registerFlags(rootCmd.PersistentFlags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if cfg.Format != "" && cfg.Format != report.FormatText {
			_ = apierror.Write(os.Stdout, cfg.Format, err)
		}
		fl := failureLogger(os.Stderr)
		fl.Fatal().Err(err).Msg("Command failed")
	}
}
