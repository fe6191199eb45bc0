package main

import (
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

var precessionCmd = &cobra.Command{
	Use:   "precession",
	Short: "Export the nodal precession rate over altitudes and inclinations as CSV",
	Long: `Computes the J2 nodal precession rate of circular orbits over a grid of altitudes and
inclinations, in degrees per day, for contour plotting.`,
	Args: cobra.NoArgs,
	RunE: runPrecession,
}

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Export the inclination histogram of the catalog as CSV",
	Args:  cobra.NoArgs,
	RunE:  runHistogram,
}

func init() {
	f := precessionCmd.Flags()
	f.Float64("alt-min", 400, "lowest altitude (km)")
	f.Float64("alt-max", 1600, "highest altitude (km)")
	f.Float64("alt-step", 50, "altitude step (km)")
	f.Float64("inc-min", 0, "lowest inclination (deg)")
	f.Float64("inc-max", 180, "highest inclination (deg)")
	f.Float64("inc-step", 1, "inclination step (deg)")
	f.StringP("out", "o", "", "CSV output file (default stdout)")

	histogramCmd.Flags().Float64("bin-width", 1, "bin width (deg)")
	histogramCmd.Flags().StringP("out", "o", "", "CSV output file (default stdout)")

	rootCmd.AddCommand(precessionCmd, histogramCmd)
}

func runPrecession(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	altMin, _ := f.GetFloat64("alt-min")
	altMax, _ := f.GetFloat64("alt-max")
	altStep, _ := f.GetFloat64("alt-step")
	incMin, _ := f.GetFloat64("inc-min")
	incMax, _ := f.GetFloat64("inc-max")
	incStep, _ := f.GetFloat64("inc-step")
	if altStep <= 0 || incStep <= 0 {
		return cmd.Usage()
	}

	altitudesKm := maneuvers.Range(altMin, altMax+altStep/2, altStep)
	inclinations := maneuvers.Range(incMin, incMax+incStep/2, incStep)
	altitudes := make([]float64, len(altitudesKm))
	for i, alt := range altitudesKm {
		altitudes[i] = alt * 1e3
	}
	ω, err := maneuvers.PrecessionMap(e.body, altitudes, inclinations)
	if err != nil {
		return err
	}
	ω.Scale(86400*180/math.Pi, ω)

	return withOutput(cmd, func(w io.Writer) error {
		return maneuvers.ExportPrecessionMap(w, altitudesKm, inclinations, ω)
	})
}

func runHistogram(cmd *cobra.Command, _ []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	catalog, err := e.catalog(cmd)
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetFloat64("bin-width")
	bins, err := maneuvers.InclinationHistogram(catalog, width)
	if err != nil {
		return err
	}
	return withOutput(cmd, func(w io.Writer) error {
		return maneuvers.ExportHistogram(w, bins, width)
	})
}

// withOutput calls write on the --out file, or on the command output when none is given.
func withOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
