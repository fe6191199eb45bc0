package main

import (
	"fmt"

	"github.com/spf13/cobra"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

var deorbitCmd = &cobra.Command{
	Use:   "deorbit [index...]",
	Short: "Estimate the delta-v to deorbit catalog objects",
	Long: `Estimates the delta-v needed to lower the periapsis of each object down to the ground radius,
the mean radius of the body plus a margin. All objects are estimated when no index is given.`,
	RunE: runDeorbit,
}

func init() {
	deorbitCmd.Flags().Float64("margin", defaults.Deorbit.Margin, "altitude (m) above the mean radius considered as ground")

	rootCmd.AddCommand(deorbitCmd)
}

func runDeorbit(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{"margin": "deorbit.margin"}); err != nil {
		return err
	}
	e, err := setup()
	if err != nil {
		return err
	}
	catalog, err := e.catalog(cmd)
	if err != nil {
		return err
	}
	indices := make([]int, 0, len(catalog))
	if len(args) == 0 {
		for i := range catalog {
			indices = append(indices, i)
		}
	}
	for _, arg := range args {
		idx, err := catalogIndex(arg, catalog)
		if err != nil {
			return err
		}
		indices = append(indices, idx)
	}

	ground := maneuvers.GroundRadius(e.body, e.conf.Deorbit.Margin)
	out := cmd.OutOrStdout()
	total := 0.
	for _, idx := range indices {
		o, err := maneuvers.NewOrbitFromRecord(catalog[idx], e.body)
		if err != nil {
			return fmt.Errorf("object %d: %w", idx, err)
		}
		Δv, err := maneuvers.DeorbitΔv(o, ground)
		if err != nil {
			return fmt.Errorf("object %d: %w", idx, err)
		}
		total += Δv
		fmt.Fprintf(out, "%d\t%s\t%.3f m/s\n", idx, catalog[idx].Name(), Δv)
	}
	fmt.Fprintf(out, "total\t%.3f m/s\n", total)
	return nil
}
