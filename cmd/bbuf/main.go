// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command bbuf runs a bounded-buffer producer/consumer session and reports
// the elapsed wall-clock time.
//
// Usage:
//
//	bbuf [flags] <buffer_size> <num_producers> <num_consumers> <upper_limit>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"code.hybscloud.com/bbuf"
	"github.com/prometheus/client_golang/prometheus"
)

const appName = "bbuf"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, returning the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		printUsage(stderr, err)
		return 1
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	b := bbuf.FromConfig(cfg.Run).Logger(logger)
	if cfg.Trace {
		b.OnItem(func(consumer, item int) {
			logger.Info("consumed", "item", item, "consumer", consumer)
		})
	}
	var reg *prometheus.Registry
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		b.Registerer(reg)
	}

	rep, err := b.Run()
	if bbuf.IsUsage(err) {
		printUsage(stderr, err)
		return 1
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, rep)

	if reg != nil {
		if err := writeMetrics(stderr, reg); err != nil {
			logger.Error("metrics dump failed", "error", err)
		}
	}
	return 0
}

func printUsage(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Usage: %s <buffer_size> <num_producers> <num_consumers> <upper_limit>\n", appName)
	if err != nil {
		_, _ = fmt.Fprintf(w, "error: %v\n", err)
	}
}
