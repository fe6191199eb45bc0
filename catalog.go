package maneuvers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Catalog field names, as published by Space-Track in the GP class.
const (
	FieldSemimajorAxis = "SEMIMAJOR_AXIS" // km
	FieldEccentricity  = "ECCENTRICITY"
	FieldInclination   = "INCLINATION"    // deg
	FieldRAAN          = "RA_OF_ASC_NODE" // deg
	FieldPeriapsis     = "PERIAPSIS"      // km (altitude)
	FieldApoapsis      = "APOAPSIS"       // km (altitude)
	FieldMeanMotion    = "MEAN_MOTION"    // rev/day
	FieldObjectName    = "OBJECT_NAME"
	FieldNoradID       = "NORAD_CAT_ID"
	FieldEpoch         = "EPOCH"
	FieldTLELine1      = "TLE_LINE1"
	FieldTLELine2      = "TLE_LINE2"
)

var (
	// ErrMissingField is returned when a required orbital element is absent from a record.
	ErrMissingField = errors.New("missing catalog field")
	// ErrMalformedField is returned when an orbital element cannot be parsed or is out of range.
	ErrMalformedField = errors.New("malformed catalog field")
)

// Record is one catalog entry: string typed orbital elements keyed by field name.
// Records are never mutated by this package.
type Record map[string]string

// Name returns a human readable identifier of the record.
func (r Record) Name() string {
	if name := strings.TrimSpace(r[FieldObjectName]); name != "" {
		if id := strings.TrimSpace(r[FieldNoradID]); id != "" {
			return name + " (" + id + ")"
		}
		return name
	}
	if id := strings.TrimSpace(r[FieldNoradID]); id != "" {
		return id
	}
	return "unnamed"
}

// Float parses the given field.
func (r Record) Float(field string) (float64, error) {
	raw, ok := r[field]
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s in %s", ErrMissingField, field, r.Name())
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, fmt.Errorf("%w: %s=%q in %s", ErrMalformedField, field, raw, r.Name())
	}
	return val, nil
}

// Inclination returns the inclination in degrees.
func (r Record) Inclination() (float64, error) {
	return r.Float(FieldInclination)
}

// RAAN returns the right ascension of the ascending node in degrees.
func (r Record) RAAN() (float64, error) {
	return r.Float(FieldRAAN)
}

// Validate checks that all the elements needed by the cost model are present and physical.
func (r Record) Validate() error {
	a, err := r.Float(FieldSemimajorAxis)
	if err != nil {
		return err
	}
	if a <= 0 {
		return fmt.Errorf("%w: %s=%g in %s", ErrMalformedField, FieldSemimajorAxis, a, r.Name())
	}
	e, err := r.Float(FieldEccentricity)
	if err != nil {
		return err
	}
	if e < 0 || e >= 1 {
		return fmt.Errorf("%w: %s=%g in %s", ErrMalformedField, FieldEccentricity, e, r.Name())
	}
	i, err := r.Inclination()
	if err != nil {
		return err
	}
	if i < 0 || i > 180 {
		return fmt.Errorf("%w: %s=%g in %s", ErrMalformedField, FieldInclination, i, r.Name())
	}
	if _, err := r.RAAN(); err != nil {
		return err
	}
	return nil
}

// ValidateCatalog validates every record, reporting the index of the first invalid one.
func ValidateCatalog(catalog []Record) error {
	for i, rec := range catalog {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("catalog[%d]: %w", i, err)
		}
	}
	return nil
}

// LoadCatalog reads a JSON array of catalog records.
// Values may be strings or numbers; null values are dropped.
func LoadCatalog(r io.Reader) ([]Record, error) {
	var raw []map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	catalog := make([]Record, 0, len(raw))
	for i, entry := range raw {
		rec := make(Record, len(entry))
		for key, val := range entry {
			switch v := val.(type) {
			case nil:
			case string:
				rec[key] = v
			case float64:
				rec[key] = strconv.FormatFloat(v, 'g', -1, 64)
			case bool:
				rec[key] = strconv.FormatBool(v)
			default:
				return nil, fmt.Errorf("catalog[%d]: unsupported value for %s: %v", i, key, val)
			}
		}
		catalog = append(catalog, rec)
	}
	return catalog, nil
}

// LoadCatalogFile reads a catalog from a JSON file.
func LoadCatalogFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// SortCatalog returns a copy of the catalog ordered by inclination, then RAAN.
func SortCatalog(catalog []Record) ([]Record, error) {
	type keyed struct {
		rec       Record
		inc, raan float64
	}
	keys := make([]keyed, len(catalog))
	for i, rec := range catalog {
		inc, err := rec.Inclination()
		if err != nil {
			return nil, err
		}
		raan, err := rec.RAAN()
		if err != nil {
			return nil, err
		}
		keys[i] = keyed{rec, inc, raan}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].inc != keys[j].inc {
			return keys[i].inc < keys[j].inc
		}
		return keys[i].raan < keys[j].raan
	})
	sorted := make([]Record, len(keys))
	for i, k := range keys {
		sorted[i] = k.rec
	}
	return sorted, nil
}

// FilterMeanMotion keeps the records whose mean motion (rev/day) is within [lo, hi].
// The mean motion is derived from the semi major axis when the record does not carry it.
func FilterMeanMotion(catalog []Record, lo, hi float64, body CelestialObject) ([]Record, error) {
	var kept []Record
	for _, rec := range catalog {
		n, err := rec.Float(FieldMeanMotion)
		if errors.Is(err, ErrMissingField) {
			o, oerr := NewOrbitFromRecord(rec, body)
			if oerr != nil {
				return nil, oerr
			}
			n, err = o.MeanMotion()*86400, nil
		}
		if err != nil {
			return nil, err
		}
		if n >= lo && n <= hi {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// InclinationHistogram counts the records per inclination bin of the given width (degrees),
// bins spanning [0, 180].
func InclinationHistogram(catalog []Record, binWidth float64) ([]int, error) {
	if binWidth <= 0 {
		return nil, errors.New("bin width must be strictly positive")
	}
	bins := make([]int, int(math.Ceil(180/binWidth)))
	for _, rec := range catalog {
		inc, err := rec.Inclination()
		if err != nil {
			return nil, err
		}
		if inc < 0 || inc > 180 {
			return nil, fmt.Errorf("%w: %s=%g in %s", ErrMalformedField, FieldInclination, inc, rec.Name())
		}
		idx := int(inc / binWidth)
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx]++
	}
	return bins, nil
}
