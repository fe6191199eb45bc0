package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

const testCatalog = `[
	{"OBJECT_NAME": "A", "SEMIMAJOR_AXIS": "6871", "ECCENTRICITY": "0", "INCLINATION": "50", "RA_OF_ASC_NODE": "0"},
	{"OBJECT_NAME": "B", "SEMIMAJOR_AXIS": "6871", "ECCENTRICITY": "0", "INCLINATION": "50", "RA_OF_ASC_NODE": "0"},
	{"OBJECT_NAME": "C", "SEMIMAJOR_AXIS": "6971", "ECCENTRICITY": "0", "INCLINATION": "50", "RA_OF_ASC_NODE": "0"}
]`

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("MANEUVERS_CONFIG", t.TempDir())
	t.Setenv("MANEUVERS_LOG_LEVEL", "none")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %s", args, err)
	}
	return out.String()
}

func writeCatalog(t *testing.T) string {
	return writeFile(t, testCatalog)
}

func writeFile(t *testing.T, data string) string {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTransferCommand(t *testing.T) {
	out := execute(t, "transfer", "--catalog", writeCatalog(t), "0", "2")
	if !strings.HasPrefix(out, "A -> C\n") || !strings.Contains(out, "wait in source") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTransferCommandLongWait(t *testing.T) {
	catalog := writeFile(t, `[
	{"OBJECT_NAME": "A", "SEMIMAJOR_AXIS": "6871.0", "ECCENTRICITY": "0.001", "INCLINATION": "50", "RA_OF_ASC_NODE": "0"},
	{"OBJECT_NAME": "B", "SEMIMAJOR_AXIS": "6871.2", "ECCENTRICITY": "0.001", "INCLINATION": "50", "RA_OF_ASC_NODE": "120"}
]`)
	out := execute(t, "transfer", "--catalog", catalog, "0", "1")
	var wait string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "wait in source") {
			wait = line
		}
	}
	if !strings.HasSuffix(wait, " days") || strings.Contains(wait, "-") {
		t.Fatalf("unexpected wait %q in:\n%s", wait, out)
	}
}

func TestSeconds(t *testing.T) {
	for _, tc := range []struct {
		s   float64
		exp string
	}{
		{0, "0s"},
		{90, "1m30s"},
		{86400, "24h0m0s"},
		{1e10, "115740.7 days"},
		{-1e10, "-115740.7 days"},
		{math.Inf(1), "never"},
		{math.NaN(), "never"},
	} {
		if got := seconds(tc.s); got != tc.exp {
			t.Fatalf("seconds(%g) = %q expected %q", tc.s, got, tc.exp)
		}
	}
}

func TestFlagDefaults(t *testing.T) {
	def := maneuvers.DefaultConfig()
	for _, tc := range []struct {
		cmd  *cobra.Command
		flag string
		exp  float64
	}{
		{transferCmd, "bonus", def.Mission.Bonus},
		{transferCmd, "phasing", def.Planner.Phasing},
		{sequenceCmd, "total-fuel", def.Mission.TotalFuel},
		{sequenceCmd, "hop-time", def.Mission.HopTime},
		{sequenceCmd, "hop-fuel", def.Mission.HopFuel},
		{sequenceCmd, "bonus", def.Mission.Bonus},
		{sequenceCmd, "workers", float64(def.Mission.Workers)},
		{deorbitCmd, "margin", def.Deorbit.Margin},
	} {
		got, err := strconv.ParseFloat(tc.cmd.Flags().Lookup(tc.flag).DefValue, 64)
		if err != nil || got != tc.exp {
			t.Fatalf("%s --%s defaults to %q expected %g", tc.cmd.Name(), tc.flag, tc.cmd.Flags().Lookup(tc.flag).DefValue, tc.exp)
		}
	}
	if got := transferCmd.Flags().Lookup("host-inclination").DefValue; got != def.Planner.HostInclination {
		t.Fatalf("--host-inclination defaults to %q", got)
	}
}

func TestSequenceCommand(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "maneuvers.prom")
	out := execute(t, "sequence", "--catalog", writeCatalog(t), "--metrics", metrics)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected capture plan:\n%s", out)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "maneuvers_catches_total 2") {
		t.Fatalf("unexpected metrics:\n%s", data)
	}
}

func TestPrecessionCommand(t *testing.T) {
	out := execute(t, "precession", "--alt-step", "600", "--inc-step", "90")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || lines[0] != "inclination/altitude,400,1000,1600" {
		t.Fatalf("unexpected map:\n%s", out)
	}
	if !strings.HasPrefix(lines[2], "90,0,0,0") {
		t.Fatalf("polar orbits precess:\n%s", out)
	}
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config")
	if !strings.Contains(out, "[mission]") || !strings.Contains(out, "Earth") {
		t.Fatalf("unexpected configuration:\n%s", out)
	}
}
