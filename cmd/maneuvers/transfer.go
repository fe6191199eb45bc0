package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <source> <target>",
	Short: "Estimate the transfer between two catalog objects",
	Long: `Estimates the delta-v and time needed to move from the source to the target object,
both given by their index in the catalog, and explains which orbit hosted the wait and the plane change.`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

func init() {
	transferCmd.Flags().Float64("offset", 0, "time (s) since both catalog epochs at which the transfer starts")
	transferCmd.Flags().Float64("bonus", defaults.Mission.Bonus, "extra delta-v budget (m/s) for a bonus waiting orbit")
	transferCmd.Flags().Float64("phasing", defaults.Planner.Phasing, "worst case phasing separation (deg)")
	transferCmd.Flags().String("host-inclination", defaults.Planner.HostInclination, "inclination of the waiting orbits: target or source")

	rootCmd.AddCommand(transferCmd)
}

func runTransfer(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd, map[string]string{
		"bonus":            "mission.bonus",
		"phasing":          "planner.phasing",
		"host-inclination": "planner.host_inclination",
	}); err != nil {
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
	src, err := catalogIndex(args[0], catalog)
	if err != nil {
		return err
	}
	tgt, err := catalogIndex(args[1], catalog)
	if err != nil {
		return err
	}
	offset, _ := cmd.Flags().GetFloat64("offset")

	tr, err := e.planner.PlanTransfer(catalog[src], catalog[tgt], offset, e.conf.Mission.Bonus)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s -> %s\n", catalog[src].Name(), catalog[tgt].Name())
	fmt.Fprintf(out, "%s\n", tr)
	if !tr.Feasible() {
		fmt.Fprintln(out, "the ascending nodes never align: no finite transfer")
		return nil
	}
	fmt.Fprintf(out, "  departure   %10.3f m/s\n", tr.DepartureΔv)
	fmt.Fprintf(out, "  arrival     %10.3f m/s\n", tr.ArrivalΔv)
	fmt.Fprintf(out, "  inclination %10.3f m/s\n", tr.InclinationΔv)
	fmt.Fprintf(out, "  bonus       %10.3f m/s\n", tr.BonusΔv)
	fmt.Fprintf(out, "  wait        %s\n", seconds(tr.Wait))
	fmt.Fprintf(out, "  phasing     %s (%.3f orbits)\n", seconds(tr.Phasing), tr.PhasingOrbits)
	fmt.Fprintf(out, "  via         %s\n", tr.Intermediate)
	for _, c := range tr.Waits {
		fmt.Fprintf(out, "  wait in %-12s %v\n", c.Host, seconds(c.Value))
	}
	for _, c := range tr.Inclinations {
		fmt.Fprintf(out, "  plane change in %-12s %.3f m/s\n", c.Host, c.Value)
	}
	return nil
}

// maxDuration is the longest wait (s) a time.Duration holds.
const maxDuration = float64(math.MaxInt64 / int64(time.Second))

func seconds(s float64) string {
	switch {
	case math.IsInf(s, 0) || math.IsNaN(s):
		return "never"
	case math.Abs(s) >= maxDuration:
		return fmt.Sprintf("%.1f days", s/86400)
	}
	return (time.Duration(math.Round(s)) * time.Second).String()
}
