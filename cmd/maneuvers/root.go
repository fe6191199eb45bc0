package main

import (
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	maneuvers "github.com/RCoder01/orbital-maneuvers"
)

var rootCmd = &cobra.Command{
	Use:   "maneuvers",
	Short: "Delta-v and time estimates for collecting orbital debris",
	Long: `maneuvers estimates the cost of moving between objects in orbit around a central body:
tangential transfers, plane changes and the wait for the ascending nodes to line up under J2.
It plans greedy debris collection missions over a catalog and estimates deorbit costs.`,
	SilenceUsage: true,
}

// defaults are shown by the flags, matching the values viper falls back to.
var defaults = maneuvers.DefaultConfig()

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default $MANEUVERS_CONFIG/conf.toml)")
	pf.String("catalog", "", "catalog JSON file (array of Space-Track style records)")
	pf.String("tle", "", "three line element file, used instead of --catalog")
	pf.String("metrics", "", "write prometheus metrics to this textfile")
	pf.String("log-level", defaults.Log.Level, "debug, info, warn, error or none")
	pf.Float64("mean-motion-min", 0, "keep catalog objects with at least this mean motion (rev/day)")
	pf.Float64("mean-motion-max", 0, "keep catalog objects with at most this mean motion (rev/day), zero for no filter")

	_ = viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// env holds what every command needs once the configuration is read.
type env struct {
	conf     maneuvers.Config
	body     maneuvers.CelestialObject
	planner  maneuvers.Planner
	logger   kitlog.Logger
	registry *prometheus.Registry
}

func setup() (env, error) {
	conf, err := maneuvers.LoadConfig(viper.GetViper())
	if err != nil {
		return env{}, err
	}
	planner, err := conf.NewPlanner()
	if err != nil {
		return env{}, err
	}
	logger := conf.NewLogger()
	if used := viper.ConfigFileUsed(); used != "" {
		level.Debug(logger).Log("config", used)
	}
	return env{
		conf:     conf,
		body:     planner.Body,
		planner:  planner,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}, nil
}

// catalog loads the objects from --tle or --catalog and applies the mean motion filter.
func (e env) catalog(cmd *cobra.Command) ([]maneuvers.Record, error) {
	tlePath, _ := cmd.Flags().GetString("tle")
	catPath, _ := cmd.Flags().GetString("catalog")
	var (
		cat []maneuvers.Record
		err error
	)
	switch {
	case tlePath != "":
		cat, err = maneuvers.ParseTLEFile(tlePath, e.body, e.logger)
	case catPath != "":
		cat, err = maneuvers.LoadCatalogFile(catPath)
	default:
		return nil, fmt.Errorf("a catalog is required: use --catalog or --tle")
	}
	if err != nil {
		return nil, err
	}
	lo, _ := cmd.Flags().GetFloat64("mean-motion-min")
	hi, _ := cmd.Flags().GetFloat64("mean-motion-max")
	if hi > 0 {
		if cat, err = maneuvers.FilterMeanMotion(cat, lo, hi, e.body); err != nil {
			return nil, err
		}
	}
	if len(cat) == 0 {
		return nil, fmt.Errorf("empty catalog")
	}
	level.Info(e.logger).Log("subsys", "catalog", "objects", len(cat))
	return cat, nil
}

// writeMetrics writes the registry to the --metrics textfile, if any.
func (e env) writeMetrics(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("metrics")
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
