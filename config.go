package maneuvers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml.
const ConfigEnv = "MANEUVERS_CONFIG"

// Config is the full configuration of the planner, the mission and the ambient tooling.
type Config struct {
	Body    BodyConfig    `mapstructure:"body" toml:"body"`
	Planner PlannerConfig `mapstructure:"planner" toml:"planner"`
	Mission MissionConfig `mapstructure:"mission" toml:"mission"`
	Deorbit DeorbitConfig `mapstructure:"deorbit" toml:"deorbit"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// BodyConfig defines the central body. GM takes precedence over G times the mass.
type BodyConfig struct {
	Name                  string  `mapstructure:"name" toml:"name"`
	GravitationalConstant float64 `mapstructure:"gravitational_constant" toml:"gravitational_constant"`
	Mass                  float64 `mapstructure:"mass" toml:"mass"`
	GM                    float64 `mapstructure:"gm" toml:"gm,omitempty"`
	Radius                float64 `mapstructure:"equatorial_radius" toml:"equatorial_radius"`
	MeanRadius            float64 `mapstructure:"mean_radius" toml:"mean_radius"`
	J2                    float64 `mapstructure:"j2" toml:"j2"`
}

// PlannerConfig holds the modeling options of the transfer planner.
type PlannerConfig struct {
	Phasing         float64 `mapstructure:"phasing" toml:"phasing"`
	HostInclination string  `mapstructure:"host_inclination" toml:"host_inclination"`
}

// DeorbitConfig holds the disposal options.
type DeorbitConfig struct {
	Margin float64 `mapstructure:"margin" toml:"margin"`
}

// LogConfig holds the logging options.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// DefaultConfig returns the configuration used when nothing is set: Earth, and a mission budget
// sized for low Earth orbit debris.
func DefaultConfig() Config {
	return Config{
		Body: BodyConfig{
			Name:                  Earth.Name,
			GravitationalConstant: GravitationalConstant,
			Mass:                  5.9722e24,
			Radius:                Earth.Radius,
			MeanRadius:            Earth.MeanRadius,
			J2:                    Earth.J2,
		},
		Planner: PlannerConfig{Phasing: DefaultPhasing, HostInclination: TargetInclination.String()},
		Mission: MissionConfig{
			TotalFuel: 1000,
			HopTime:   30 * secondsPerDay,
			HopFuel:   250,
			Bonus:     50,
			Workers:   1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// SetDefaults registers the default configuration on v.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("body.name", def.Body.Name)
	v.SetDefault("body.gravitational_constant", def.Body.GravitationalConstant)
	v.SetDefault("body.mass", def.Body.Mass)
	v.SetDefault("body.gm", def.Body.GM)
	v.SetDefault("body.equatorial_radius", def.Body.Radius)
	v.SetDefault("body.mean_radius", def.Body.MeanRadius)
	v.SetDefault("body.j2", def.Body.J2)
	v.SetDefault("planner.phasing", def.Planner.Phasing)
	v.SetDefault("planner.host_inclination", def.Planner.HostInclination)
	v.SetDefault("mission.start", def.Mission.Start)
	v.SetDefault("mission.total_fuel", def.Mission.TotalFuel)
	v.SetDefault("mission.hop_time", def.Mission.HopTime)
	v.SetDefault("mission.hop_fuel", def.Mission.HopFuel)
	v.SetDefault("mission.bonus", def.Mission.Bonus)
	v.SetDefault("mission.workers", def.Mission.Workers)
	v.SetDefault("deorbit.margin", def.Deorbit.Margin)
	v.SetDefault("log.level", def.Log.Level)
}

// LoadConfig reads the configuration into v and returns it.
// The file is the one already set on v, else conf.toml in the directory named by MANEUVERS_CONFIG.
// A missing file is fine: the defaults and MANEUVERS_* environment variables apply.
func LoadConfig(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("MANEUVERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("conf")
		v.SetConfigType("toml")
		if confPath := os.Getenv(ConfigEnv); confPath != "" {
			v.AddConfigPath(confPath)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading configuration: %w", err)
		}
	}
	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return conf, nil
}

// CelestialObject returns the configured central body.
func (b BodyConfig) CelestialObject() (CelestialObject, error) {
	if b.GM > 0 {
		return NewCelestialObject(b.Name, b.GM, b.Radius, b.MeanRadius, b.J2)
	}
	return NewCelestialObjectFromMass(b.Name, b.GravitationalConstant, b.Mass, b.Radius, b.MeanRadius, b.J2)
}

// NewPlanner returns the configured planner.
func (c Config) NewPlanner() (Planner, error) {
	body, err := c.Body.CelestialObject()
	if err != nil {
		return Planner{}, err
	}
	hostInc, err := ParseHostInclination(c.Planner.HostInclination)
	if err != nil {
		return Planner{}, err
	}
	return Planner{Body: body, Phasing: c.Planner.Phasing, HostInclination: hostInc}, nil
}

// NewLogger returns a logfmt logger writing to stderr, filtered at the configured level.
func (c Config) NewLogger() kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
	var opt level.Option
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		opt = level.AllowDebug()
	case "warn", "warning":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	case "none":
		opt = level.AllowNone()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}

// TOML returns the configuration in TOML, as it would be read back from conf.toml.
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
