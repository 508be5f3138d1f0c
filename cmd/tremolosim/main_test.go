package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig() config {
	return config{
		wave:       "triangle",
		samples:    48000,
		cycle:      4800,
		minGain:    64,
		maxGain:    256,
		shift:      8,
		print:      20,
		sampleRate: 48000,
		effects:    1,
	}
}

func TestRunPrintsSquareOutputs(t *testing.T) {
	cfg := testConfig()
	cfg.wave = "square"
	cfg.cycle = 10
	cfg.samples = 20

	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := []string{
		"-13", "-13", "-12", "-12", "-46", "-45", "-44", "-43", "-42", "-11",
		"-10", "-10", "-10", "-10", "-36", "-35", "-34", "-33", "-32", "-8",
	}
	got := strings.Fields(out.String())
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("run() printed %v, want %v", got, want)
	}
}

func TestRunPrintLimit(t *testing.T) {
	cfg := testConfig()
	cfg.samples = 5
	cfg.print = 100

	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if n := len(strings.Fields(out.String())); n != 5 {
		t.Fatalf("printed %d samples, want 5", n)
	}
}

func TestRunCostAndAnalysis(t *testing.T) {
	cfg := testConfig()
	cfg.print = 0
	cfg.cost = true
	cfg.analyze = true
	cfg.effects = 2

	var out bytes.Buffer
	if err := run(cfg, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"Cycle estimate (triangle, 48000 samples, 2 effect(s) in series",
		"sawtooth/triangle gain step",
		"FPGA speedup: 30-46x",
		"LFO rate",
		"Digest",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunWritesPlot(t *testing.T) {
	cfg := testConfig()
	cfg.print = 0
	cfg.samples = 2000
	cfg.cycle = 400
	cfg.plotPath = filepath.Join(t.TempDir(), "trace.png")

	if err := run(cfg, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	info, err := os.Stat(cfg.plotPath)
	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("plot file is empty")
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
	}{
		{name: "unknown wave", mutate: func(c *config) { c.wave = "sine" }},
		{name: "zero samples", mutate: func(c *config) { c.samples = 0 }},
		{name: "short cycle", mutate: func(c *config) { c.cycle = 2 }},
		{name: "inverted gains", mutate: func(c *config) { c.minGain, c.maxGain = 256, 64 }},
		{name: "gain above unity", mutate: func(c *config) { c.maxGain = 1024 }},
		{name: "zero effects", mutate: func(c *config) { c.cost = true; c.effects = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.print = 0
			tt.mutate(&cfg)
			if err := run(cfg, &bytes.Buffer{}); err == nil {
				t.Fatal("run() expected error")
			}
		})
	}
}
