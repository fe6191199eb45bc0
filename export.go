package maneuvers

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

func ftoa(v float64) string {
	if v == 0 {
		return "0" // negative zero included
	}
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// ExportCapturePlan writes one CSV line per capture, the start object first.
func ExportCapturePlan(w io.Writer, plan CapturePlan, start int) error {
	cw := csv.NewWriter(w)
	header := []string{"hop", "index", "name", "delta_v", "elapsed", "wait", "phasing", "wait_host", "inclination_host",
		"departure_dv", "arrival_dv", "inclination_dv", "bonus_dv", "cumulative_dv", "cumulative_elapsed"}
	if err := cw.Write(header); err != nil {
		return err
	}
	if len(plan.Captures) > 0 {
		if err := cw.Write([]string{"0", strconv.Itoa(start), plan.Captures[0].Name(), "0", "0", "0", "0", "", "", "0", "0", "0", "0", "0", "0"}); err != nil {
			return err
		}
	}
	var v, t float64
	for i, hop := range plan.Hops {
		v += hop.Δv
		t += hop.Elapsed
		tr := hop.Transfer
		name := ""
		if i+1 < len(plan.Captures) {
			name = plan.Captures[i+1].Name()
		}
		record := []string{strconv.Itoa(i + 1), strconv.Itoa(hop.Index), name, ftoa(hop.Δv), ftoa(hop.Elapsed),
			ftoa(tr.Wait), ftoa(tr.Phasing), tr.WaitHost.String(), tr.InclinationHost.String(),
			ftoa(tr.DepartureΔv), ftoa(tr.ArrivalΔv), ftoa(tr.InclinationΔv), ftoa(tr.BonusΔv), ftoa(v), ftoa(t)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportPrecessionMap writes the precession map as CSV: the first line holds the altitudes and
// each following line starts with its inclination.
func ExportPrecessionMap(w io.Writer, altitudes, inclinations []float64, ω mat.Matrix) error {
	r, c := ω.Dims()
	if r != len(inclinations) || c != len(altitudes) {
		return errors.New("precession map dimensions do not match its axes")
	}
	cw := csv.NewWriter(w)
	header := make([]string, c+1)
	header[0] = "inclination/altitude"
	for j, alt := range altitudes {
		header[j+1] = ftoa(alt)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, c+1)
	for i, inc := range inclinations {
		row[0] = ftoa(inc)
		for j := 0; j < c; j++ {
			row[j+1] = ftoa(ω.At(i, j))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportHistogram writes an inclination histogram as CSV with the lower bound of each bin.
func ExportHistogram(w io.Writer, bins []int, binWidth float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"inclination", "count"}); err != nil {
		return err
	}
	for i, n := range bins {
		if err := cw.Write([]string{ftoa(float64(i) * binWidth), strconv.Itoa(n)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
