// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"code.hybscloud.com/bbuf"
	"github.com/prometheus/client_golang/prometheus"
)

var elapsedLine = regexp.MustCompile(`^Elapsed Time: \d+\.\d{2} seconds\n$`)

// lockArgs pins the lock strategy to one the race detector can follow.
func lockArgs() []string {
	if bbuf.RaceEnabled {
		return []string{"-lock=mutex"}
	}
	return nil
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// =============================================================================
// Successful Runs
// =============================================================================

// TestRunExampleScenario verifies exit code 0 and the elapsed-time line.
func TestRunExampleScenario(t *testing.T) {
	code, stdout, stderr := runCLI(t, append(lockArgs(), "4", "2", "3", "10")...)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0 (stderr: %s)", code, stderr)
	}
	if !elapsedLine.MatchString(stdout) {
		t.Fatalf("stdout: got %q, want Elapsed Time line", stdout)
	}
}

// TestRunBothStrategies verifies the -lock flag.
func TestRunBothStrategies(t *testing.T) {
	for _, lock := range []string{"mutex", "spin"} {
		t.Run(lock, func(t *testing.T) {
			if lock == "spin" && bbuf.RaceEnabled {
				t.Skip("skip: SpinGuard uses atomix orderings invisible to the race detector")
			}
			code, stdout, stderr := runCLI(t, "-lock="+lock, "-delay=10", "2", "3", "2", "500")
			if code != 0 {
				t.Fatalf("exit code: got %d (stderr: %s)", code, stderr)
			}
			if !elapsedLine.MatchString(stdout) {
				t.Fatalf("stdout: got %q", stdout)
			}
		})
	}
}

// TestRunLimitZero verifies the empty run completes.
func TestRunLimitZero(t *testing.T) {
	code, stdout, _ := runCLI(t, append(lockArgs(), "1", "3", "5", "0")...)
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !elapsedLine.MatchString(stdout) {
		t.Fatalf("stdout: got %q", stdout)
	}
}

// TestRunMetricsDump verifies -metrics prints counters to stderr.
func TestRunMetricsDump(t *testing.T) {
	code, _, stderr := runCLI(t, "-lock=mutex", "-metrics", "4", "2", "3", "10")
	if code != 0 {
		t.Fatalf("exit code: got %d (stderr: %s)", code, stderr)
	}
	for _, want := range []string{
		"# TYPE bbuf_items_produced_total counter",
		"# TYPE bbuf_occupancy gauge",
		`bbuf_items_produced_total{lock="mutex"} 10`,
		`bbuf_items_consumed_total{lock="mutex"} 10`,
		`bbuf_terminations_total{lock="mutex"} 3`,
		`bbuf_occupancy{lock="mutex"} 0`,
	} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

// TestRunTrace verifies -trace logs each consumed item.
func TestRunTrace(t *testing.T) {
	code, _, stderr := runCLI(t, "-lock=mutex", "-trace", "2", "1", "1", "3")
	if code != 0 {
		t.Fatalf("exit code: got %d (stderr: %s)", code, stderr)
	}
	for _, want := range []string{"item=0 consumer=1", "item=1 consumer=1", "item=2 consumer=1"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

// TestRunTrailingFlags verifies flags are accepted after the positional
// arguments and between them.
func TestRunTrailingFlags(t *testing.T) {
	for _, args := range [][]string{
		{"4", "2", "3", "10", "-lock=mutex", "-metrics"},
		{"4", "2", "-lock", "mutex", "3", "10", "-metrics"},
	} {
		code, stdout, stderr := runCLI(t, args...)
		if code != 0 {
			t.Fatalf("%v: exit code: got %d (stderr: %s)", args, code, stderr)
		}
		if !elapsedLine.MatchString(stdout) {
			t.Fatalf("%v: stdout: got %q", args, stdout)
		}
		if !strings.Contains(stderr, `bbuf_items_consumed_total{lock="mutex"} 10`) {
			t.Fatalf("%v: trailing flags not applied:\n%s", args, stderr)
		}
	}
}

// TestRunEnvFallback verifies environment variables feed flag defaults.
func TestRunEnvFallback(t *testing.T) {
	t.Setenv("BBUF_LOCK", "mutex")
	t.Setenv("BBUF_METRICS", "true")
	code, _, stderr := runCLI(t, "2", "1", "1", "4")
	if code != 0 {
		t.Fatalf("exit code: got %d (stderr: %s)", code, stderr)
	}
	if !strings.Contains(stderr, `lock="mutex"`) {
		t.Fatalf("stderr: env lock strategy not applied:\n%s", stderr)
	}
}

// TestWriteMetricsTextFormat verifies the dump uses Prometheus label
// escaping and keeps non-counter families.
func TestWriteMetricsTextFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "bbuf_test_total",
		Help:        "Test counter.",
		ConstLabels: prometheus.Labels{"path": "a\tb\"c\n"},
	})
	c.Add(2)
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "bbuf_test_seconds",
		Help:    "Test histogram.",
		Buckets: []float64{1},
	})
	h.Observe(0.5)
	reg.MustRegister(c, h)

	var out bytes.Buffer
	if err := writeMetrics(&out, reg); err != nil {
		t.Fatalf("writeMetrics: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"# HELP bbuf_test_total Test counter.",
		"bbuf_test_total{path=\"a\tb\\\"c\\n\"} 2",
		"# TYPE bbuf_test_seconds histogram",
		`bbuf_test_seconds_bucket{le="1"} 1`,
		"bbuf_test_seconds_count 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

// =============================================================================
// Usage Errors
// =============================================================================

// TestRunUsageErrors verifies every usage failure exits nonzero with the
// usage line on stderr and nothing on stdout.
func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no-args", nil, "expected 4 arguments, got 0"},
		{"too-few", []string{"4", "2", "3"}, "expected 4 arguments, got 3"},
		{"too-many", []string{"4", "2", "3", "10", "5"}, "expected 4 arguments, got 5"},
		{"not-int", []string{"four", "2", "3", "10"}, `buffer_size: "four" is not an integer`},
		{"zero-size", []string{"0", "2", "3", "10"}, "buffer_size=0"},
		{"zero-producers", []string{"4", "0", "3", "10"}, "num_producers=0"},
		{"zero-consumers", []string{"4", "2", "0", "10"}, "num_consumers=0"},
		{"negative-limit", []string{"4", "2", "3", "-1"}, "upper_limit=-1"},
		{"bad-lock", []string{"-lock=futex", "4", "2", "3", "10"}, "unknown lock strategy"},
		{"bad-level", []string{"-log-level=loud", "4", "2", "3", "10"}, "invalid log level"},
		{"bad-flag", []string{"-nope", "4", "2", "3", "10"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code == 0 {
				t.Fatal("exit code: got 0, want nonzero")
			}
			if stdout != "" {
				t.Fatalf("stdout: got %q, want empty", stdout)
			}
			if !strings.Contains(stderr, "Usage: bbuf <buffer_size> <num_producers> <num_consumers> <upper_limit>") {
				t.Fatalf("stderr missing usage line:\n%s", stderr)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr missing %q:\n%s", tt.want, stderr)
			}
		})
	}
}

// TestRunHelp verifies -h exits 0 and prints the detailed help.
func TestRunHelp(t *testing.T) {
	code, _, stderr := runCLI(t, "-h")
	if code != 0 {
		t.Fatalf("exit code: got %d, want 0", code)
	}
	if !strings.Contains(stderr, "-lock") || !strings.Contains(stderr, "Examples:") {
		t.Fatalf("help output incomplete:\n%s", stderr)
	}
}
