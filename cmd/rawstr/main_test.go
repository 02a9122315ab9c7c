package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/invakid404/rawstring/internal/bytesize"
	"github.com/invakid404/rawstring/internal/report"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("rawstr", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestLoadConfigDefaults(t *testing.T) {
	v, err := newConfig(newFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(v)
	if err != nil {
		t.Fatal(err)
	}

	want := settings{
		Pretty:   false,
		LogLevel: zerolog.InfoLevel,
		Format:   report.FormatText,
		MaxBytes: defaultMaxBytes,
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	v, err := newConfig(newFlags(t, "--pretty", "--format", "json", "--max-bytes", "4KiB", "--log-level", "debug"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(v)
	if err != nil {
		t.Fatal(err)
	}

	if !got.Pretty || got.Format != report.FormatJSON || got.MaxBytes != 4*bytesize.KiB || got.LogLevel != zerolog.DebugLevel {
		t.Errorf("unexpected settings %+v", got)
	}
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("RAWSTR_FORMAT", "yaml")
	t.Setenv("RAWSTR_MAX_BYTES", "off")
	t.Setenv("RAWSTR_LOG_LEVEL", "warn")

	v, err := newConfig(newFlags(t))
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(v)
	if err != nil {
		t.Fatal(err)
	}

	if got.Format != report.FormatYAML || got.MaxBytes != 0 || got.LogLevel != zerolog.WarnLevel {
		t.Errorf("unexpected settings %+v", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rawstr.yaml")
	if err := os.WriteFile(path, []byte("format: json\nmax-bytes: 1MiB\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	v, err := newConfig(newFlags(t, "--config", path))
	if err != nil {
		t.Fatal(err)
	}
	got, err := loadConfig(v)
	if err != nil {
		t.Fatal(err)
	}

	if got.Format != report.FormatJSON || got.MaxBytes != bytesize.MiB {
		t.Errorf("unexpected settings %+v", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"--format", "xml"}},
		{"bad level", []string{"--log-level", "loud"}},
		{"missing config", []string{"--config", "/nonexistent/rawstr.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newConfig(newFlags(t, tt.args...))
			if err == nil {
				_, err = loadConfig(v)
			}
			if err == nil {
				t.Error("expected error")
			}
		})
	}

	fs := pflag.NewFlagSet("rawstr", pflag.ContinueOnError)
	registerFlags(fs)
	if err := fs.Parse([]string{"--max-bytes", "lots"}); err == nil {
		t.Error("expected invalid --max-bytes to be rejected by the flag")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, false, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("unexpected log output %q", out)
	}

	buf.Reset()
	pl := newLogger(&buf, true, zerolog.InfoLevel)
	pl.Info().Msg("pretty")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "pretty") {
		t.Errorf("expected console output, got %q", buf.String())
	}
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"show", []string{"show"}, "a\xFFb", "a\uFFFDb"},
		{"debug", []string{"debug"}, "a\xFFb\n", `"a\xffb\n"` + "\n"},
		{"check", []string{"check"}, "ok", "-: valid UTF-8 (2 bytes)\n"},
		{"slice", []string{"slice", "1..=2"}, "a\xFFbc", `"\xffb"` + "\n"},
		{"slice byte", []string{"slice", "1"}, "a\xFF", "0xff\n"},
		{"ascii", []string{"ascii", "upper"}, "ab\xFFc", "AB\xFFC"},
		{"args", []string{"args", "--", "x", "y\xFE"}, "", "\"x\"\n\"y\\xfe\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetArgs(tt.args)
			rootCmd.SetIn(strings.NewReader(tt.stdin))
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&bytes.Buffer{})

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestExecuteCheckFails(t *testing.T) {
	rootCmd.SetArgs([]string{"check"})
	rootCmd.SetIn(strings.NewReader("ab\xFFcd"))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid utf-8 sequence of 1 bytes from index 2") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestFailureLogger(t *testing.T) {
	configured = false
	var fallback bytes.Buffer
	fl := failureLogger(&fallback)
	fl.Error().Msg("unconfigured")
	if !strings.HasPrefix(fallback.String(), "{") || !strings.Contains(fallback.String(), `"message":"unconfigured"`) {
		t.Errorf("expected JSON fallback output, got %q", fallback.String())
	}

	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("pretty", "false")
	})

	var stderr bytes.Buffer
	rootCmd.SetArgs([]string{"--pretty", "check"})
	rootCmd.SetIn(strings.NewReader("\xFF"))
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&stderr)
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected check to fail")
	}

	fallback.Reset()
	stderr.Reset()
	fl = failureLogger(&fallback)
	fl.Error().Msg("configured")
	if fallback.Len() != 0 {
		t.Errorf("expected the configured logger to be used, got fallback %q", fallback.String())
	}
	if strings.HasPrefix(stderr.String(), "{") || !strings.Contains(stderr.String(), "configured") {
		t.Errorf("expected pretty console output, got %q", stderr.String())
	}
}
