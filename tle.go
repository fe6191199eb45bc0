package maneuvers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/soniakeys/meeus/v3/julian"
)

// ErrInvalidTLE is returned for two-line element sets which cannot be used.
var ErrInvalidTLE = errors.New("invalid TLE")

const (
	tleLineLength = 69
	epochFormat   = "2006-01-02T15:04:05.000000"
	secondsPerDay = 86400.
	// tleRadiusTolerance bounds how far (relative) the SGP4 state at epoch may be from the
	// mean element apsides: short periodic J2 terms account for a fraction of a percent.
	tleRadiusTolerance = 0.01
)

// RecordFromTLE builds a catalog record from a two-line element set.
// The mean elements are read from the lines; the set is also initialized and propagated to its
// epoch with SGP4 to make sure it describes a sane orbit around the body.
func RecordFromTLE(name, line1, line2 string, body CelestialObject) (Record, error) {
	line1 = strings.TrimSpace(line1)
	line2 = strings.TrimSpace(line2)
	if err := validateTLELines(line1, line2); err != nil {
		return nil, err
	}
	noradID, err := strconv.Atoi(strings.TrimSpace(line1[2:7]))
	if err != nil {
		return nil, fmt.Errorf("%w: NORAD ID %q", ErrInvalidTLE, line1[2:7])
	}
	epoch, err := parseTLEEpoch(line1[18:32])
	if err != nil {
		return nil, err
	}
	fields := map[string]float64{}
	for _, f := range []struct {
		name       string
		start, end int
		prefix     string
	}{
		{FieldInclination, 8, 16, ""},
		{FieldRAAN, 17, 25, ""},
		{FieldEccentricity, 26, 33, "0."},
		{FieldMeanMotion, 52, 63, ""},
	} {
		raw := f.prefix + strings.TrimSpace(line2[f.start:f.end])
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidTLE, f.name, raw)
		}
		fields[f.name] = val
	}
	o, err := NewOrbitFromMeanMotion(fields[FieldMeanMotion]/secondsPerDay, fields[FieldEccentricity], body.μ)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTLE, err)
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS84)
	if sat.Error != 0 {
		return nil, fmt.Errorf("%w: sgp4 init failed for NORAD %d: code=%d %s", ErrInvalidTLE, noradID, sat.Error, sat.ErrorStr)
	}
	pos, _ := satellite.Propagate(sat, epoch.Year(), int(epoch.Month()), epoch.Day(), epoch.Hour(), epoch.Minute(), epoch.Second())
	r := math.Sqrt(pos.X*pos.X+pos.Y*pos.Y+pos.Z*pos.Z) * 1e3
	if math.IsNaN(r) || r < o.Periapsis()*(1-tleRadiusTolerance) || r > o.Apoapsis()*(1+tleRadiusTolerance) {
		return nil, fmt.Errorf("%w: NORAD %d at %.1f km from the center at epoch, expected between %.1f and %.1f km",
			ErrInvalidTLE, noradID, r/1e3, o.Periapsis()/1e3, o.Apoapsis()/1e3)
	}

	rec := Record{
		FieldObjectName:    strings.TrimSpace(name),
		FieldNoradID:       strconv.Itoa(noradID),
		FieldEpoch:         epoch.Format(epochFormat),
		FieldSemimajorAxis: strconv.FormatFloat(o.SMA()/1e3, 'f', 3, 64),
		FieldPeriapsis:     strconv.FormatFloat(o.PeriapsisAltitude(body)/1e3, 'f', 3, 64),
		FieldApoapsis:      strconv.FormatFloat(o.ApoapsisAltitude(body)/1e3, 'f', 3, 64),
		FieldTLELine1:      line1,
		FieldTLELine2:      line2,
	}
	for field, val := range fields {
		rec[field] = strconv.FormatFloat(val, 'f', -1, 64)
	}
	return rec, nil
}

// ParseTLE reads 3-line NORAD TLE format from r and returns the corresponding records.
// Malformed entries are skipped with a warning log.
func ParseTLE(r io.Reader, body CelestialObject, logger kitlog.Logger) ([]Record, error) {
	logger = kitlog.With(logger, "subsys", "tle")
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	var records []Record
	for i := 0; i+2 < len(lines); {
		name, line1, line2 := lines[i], lines[i+1], lines[i+2]
		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			// Try to find next valid triplet.
			level.Warn(logger).Log("msg", "skipping malformed TLE entry", "line", i, "name", name)
			i++
			continue
		}
		rec, err := RecordFromTLE(name, line1, line2, body)
		if err != nil {
			level.Warn(logger).Log("msg", "skipping TLE entry", "name", name, "err", err)
		} else {
			records = append(records, rec)
		}
		i += 3
	}
	return records, nil
}

// ParseTLEFile reads a 3-line TLE file, see ParseTLE.
func ParseTLEFile(path string, body CelestialObject, logger kitlog.Logger) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTLE(f, body, logger)
}

// validateTLELines performs basic format validation on TLE lines.
// go-satellite calls log.Fatal on malformed input, so lines are checked first.
func validateTLELines(line1, line2 string) error {
	if len(line1) != tleLineLength {
		return fmt.Errorf("%w: line1 length %d, expected %d", ErrInvalidTLE, len(line1), tleLineLength)
	}
	if len(line2) != tleLineLength {
		return fmt.Errorf("%w: line2 length %d, expected %d", ErrInvalidTLE, len(line2), tleLineLength)
	}
	if line1[0] != '1' {
		return fmt.Errorf("%w: line1 must start with '1', got '%c'", ErrInvalidTLE, line1[0])
	}
	if line2[0] != '2' {
		return fmt.Errorf("%w: line2 must start with '2', got '%c'", ErrInvalidTLE, line2[0])
	}
	if line1[2:7] != line2[2:7] {
		return fmt.Errorf("%w: NORAD IDs differ between lines (%s and %s)", ErrInvalidTLE, line1[2:7], line2[2:7])
	}
	return nil
}

// parseTLEEpoch converts a TLE epoch string in YYDDD.DDDDDDDD format to time.Time.
// Year 00-56 → 2000s, 57-99 → 1900s.
func parseTLEEpoch(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("%w: epoch string too short: %q", ErrInvalidTLE, s)
	}
	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch year %q", ErrInvalidTLE, s[:2])
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}
	day, err := strconv.ParseFloat(s[2:], 64)
	if err != nil || day < 1 || day >= 367 {
		return time.Time{}, fmt.Errorf("%w: epoch day %q", ErrInvalidTLE, s[2:])
	}
	// Day 1.0 is January 1st at midnight, i.e. January 0 + 1 day.
	jd := julian.CalendarGregorianToJD(year, 1, 0) + day
	return julian.JDToTime(jd).UTC().Round(time.Millisecond), nil
}
