// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"code.hybscloud.com/bbuf"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Run       bbuf.Config
	LogLevel  string
	LogFormat string
	Trace     bool
	Metrics   bool
}

var positionalNames = [...]string{"buffer_size", "num_producers", "num_consumers", "upper_limit"}

// parseArgs reads flags (with environment fallback) and the four positional
// integers. Flags may appear before, between or after the integers.
// Any error is a usage error.
func parseArgs(args []string, stderr io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	lock := fs.String("lock",
		getEnv("BBUF_LOCK", "spin"),
		"Lock strategy: spin, mutex (env: BBUF_LOCK)")

	fs.IntVar(&cfg.Run.Delay, "delay",
		getEnvInt("BBUF_DELAY", 0),
		"Busy iterations inside each critical section (env: BBUF_DELAY)")

	fs.BoolVar(&cfg.Trace, "trace",
		getEnvBool("BBUF_TRACE", false),
		"Log every consumed item with its consumer ID (env: BBUF_TRACE)")

	fs.BoolVar(&cfg.Metrics, "metrics",
		getEnvBool("BBUF_METRICS", false),
		"Print Prometheus metrics to stderr after the run (env: BBUF_METRICS)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("BBUF_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: BBUF_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("BBUF_LOG_FORMAT", "text"),
		"Log format: json, text (env: BBUF_LOG_FORMAT)")

	fs.Usage = func() {
		printDetailedHelp(fs)
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}

	if len(positional) != len(positionalNames) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(positionalNames), len(positional))
	}
	var vals [len(positionalNames)]int
	for i, name := range positionalNames {
		v, err := strconv.Atoi(positional[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", name, positional[i])
		}
		vals[i] = v
	}
	cfg.Run.BufferSize = vals[0]
	cfg.Run.Producers = vals[1]
	cfg.Run.Consumers = vals[2]
	cfg.Run.Limit = vals[3]

	strategy, err := bbuf.ParseLockStrategy(*lock)
	if err != nil {
		return nil, err
	}
	cfg.Run.Strategy = strategy

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	// Tracing is logged at info
	if cfg.Trace && (cfg.LogLevel == "warn" || cfg.LogLevel == "error") {
		cfg.LogLevel = "info"
	}

	if err := cfg.Run.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseInterspersed parses flags anywhere among the positional arguments.
// An argument that parses as an integer is positional even with a leading
// minus sign, so "-1" is a value and not a flag.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for len(args) > 0 {
		if _, err := strconv.Atoi(args[0]); err == nil {
			positional = append(positional, args[0])
			args = args[1:]
			continue
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) > 0 {
			positional = append(positional, args[0])
			args = args[1:]
		}
	}
	return positional, nil
}

func printDetailedHelp(fs *flag.FlagSet) {
	w := fs.Output()
	_, _ = fmt.Fprintf(w, `%s - bounded-buffer producer/consumer benchmark

Usage: %s [options] <buffer_size> <num_producers> <num_consumers> <upper_limit>

Options:
`, appName, appName)
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(w, `
Examples:
  # 4 slots, 2 producers, 3 consumers, items 0..9
  %s 4 2 3 10

  # Compare lock strategies with a longer critical section
  %s -lock=mutex -delay=1000 64 8 8 1000000
  %s -lock=spin  -delay=1000 64 8 8 1000000
`, appName, appName, appName)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
