package maneuvers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	rows, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestExportCapturePlan(t *testing.T) {
	plan := runMission(t, missionCatalog(), missionConfig())
	var buf bytes.Buffer
	if err := ExportCapturePlan(&buf, plan, 0); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, &buf)
	if len(rows) != len(plan.Captures)+1 {
		t.Fatalf("%d rows for %d captures", len(rows), len(plan.Captures))
	}
	if rows[0][0] != "hop" || rows[0][len(rows[0])-1] != "cumulative_elapsed" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "0" || rows[1][3] != "0" {
		t.Fatalf("unexpected start row %v", rows[1])
	}
	for i, idx := range []string{"1", "2", "3", "5"} {
		if rows[i+2][1] != idx || rows[i+2][2] != idx {
			t.Fatalf("row %d: %v", i+2, rows[i+2])
		}
	}
	if last := rows[len(rows)-1]; last[13] != ftoa(plan.Δv) || last[14] != ftoa(plan.Elapsed) {
		t.Fatalf("cumulative values %v", last)
	}
	if rows[3][7] != HostSource.String() {
		t.Fatalf("wait host %s", rows[3][7])
	}
}

func TestExportPrecessionMap(t *testing.T) {
	altitudes := []float64{400e3, 800e3}
	inclinations := []float64{0, 90, 180}
	ω, err := PrecessionMap(Earth, altitudes, inclinations)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := ExportPrecessionMap(&buf, altitudes, inclinations, ω); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, &buf)
	if len(rows) != 4 || len(rows[0]) != 3 {
		t.Fatalf("unexpected shape %v", rows)
	}
	if rows[0][1] != "400000" || rows[3][0] != "180" {
		t.Fatalf("unexpected axes %v", rows)
	}
	if rows[2][1] != "0" || !strings.HasPrefix(rows[1][1], "-") {
		t.Fatalf("unexpected rates %v", rows)
	}
	if err := ExportPrecessionMap(&buf, altitudes, inclinations[:2], ω); err == nil {
		t.Fatal("mismatched axes accepted")
	}
	if err := ExportPrecessionMap(&buf, altitudes, inclinations, mat.NewDense(3, 3, nil)); err == nil {
		t.Fatal("mismatched axes accepted")
	}
}

func TestExportHistogram(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportHistogram(&buf, []int{3, 0, 1}, 60); err != nil {
		t.Fatal(err)
	}
	if exp := "inclination,count\n0,3\n60,0\n120,1\n"; buf.String() != exp {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
