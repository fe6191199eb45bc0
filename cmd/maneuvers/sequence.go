package main

import (
	"io"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Plan a greedy debris collection mission over the catalog",
	Long: `Starting from one catalog object, repeatedly catches the next uncaught object in catalog order
whose transfer fits the per hop limits, until the fuel runs out or nothing is reachable.
The capture plan is written as CSV.`,
	Args: cobra.NoArgs,
	RunE: runSequence,
}

func init() {
	f := sequenceCmd.Flags()
	f.Int("start", defaults.Mission.Start, "catalog index of the first object")
	f.Float64("total-fuel", defaults.Mission.TotalFuel, "total delta-v budget (m/s)")
	f.Float64("hop-time", defaults.Mission.HopTime, "time limit of a single catch (s)")
	f.Float64("hop-fuel", defaults.Mission.HopFuel, "delta-v limit of a single catch (m/s), zero for none")
	f.Float64("bonus", defaults.Mission.Bonus, "extra delta-v budget (m/s) for a bonus waiting orbit")
	f.Int("workers", defaults.Mission.Workers, "number of candidates evaluated concurrently")
	f.Bool("sort", false, "order the catalog by inclination then RAAN before planning")
	f.StringP("out", "o", "", "CSV output file (default stdout)")

	rootCmd.AddCommand(sequenceCmd)
}

func runSequence(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd, map[string]string{
		"start":      "mission.start",
		"total-fuel": "mission.total_fuel",
		"hop-time":   "mission.hop_time",
		"hop-fuel":   "mission.hop_fuel",
		"bonus":      "mission.bonus",
		"workers":    "mission.workers",
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
	if sorted, _ := cmd.Flags().GetBool("sort"); sorted {
		if catalog, err = maneuvers.SortCatalog(catalog); err != nil {
			return err
		}
	}

	m, err := maneuvers.NewMission(catalog, e.planner, e.conf.Mission,
		maneuvers.WithLogger(e.logger),
		maneuvers.WithMetrics(maneuvers.NewMetrics(e.registry)))
	if err != nil {
		return err
	}
	plan := m.Run()
	level.Info(e.logger).Log("subsys", "sequence", "captures", len(plan.Captures), "Δv", plan.Δv, "elapsed", plan.Elapsed, "stop", plan.Stop)

	if err := withOutput(cmd, func(w io.Writer) error {
		return maneuvers.ExportCapturePlan(w, plan, e.conf.Mission.Start)
	}); err != nil {
		return err
	}
	return e.writeMetrics(cmd)
}
