// Public domain.

// Package config carries the site description and twilight calibration
// constants.  Defaults are coded in; a YAML file overlays them.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/soniakeys/unit"
	"gopkg.in/yaml.v3"

	"github.com/fiberspec/twiplan/internal/ephem"
	"github.com/fiberspec/twiplan/internal/twilight"
)

// SiteConfig describes the observatory.
type SiteConfig struct {
	Name       string  `yaml:"name"`
	Latitude   float64 `yaml:"latitude"`    // degrees, north positive
	Longitude  float64 `yaml:"longitude"`   // degrees, east positive
	Elevation  float64 `yaml:"elevation"`   // meters
	HorizonMin float64 `yaml:"horizon_min"` // event altitude, arcminutes
	Timezone   string  `yaml:"timezone"`
}

// TwilightConfig holds the sky model and sequencing constants.
type TwilightConfig struct {
	HalfLife     float64 `yaml:"half_life"`     // seconds
	InitialRate  float64 `yaml:"initial_rate"`  // signal/s at the anchor
	TargetSignal float64 `yaml:"target_signal"` // signal per exposure
	Overhead     float64 `yaml:"overhead"`      // seconds
	Wait         float64 `yaml:"wait"`          // seconds
	MaxExposure  float64 `yaml:"max_exposure"`  // seconds
	LeadingZeros int     `yaml:"leading_zeros"`
	Program      string  `yaml:"program"` // script program label
}

// Config is the whole file.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Twilight TwilightConfig `yaml:"twilight"`
}

// Default returns the survey configuration for the Kitt Peak site.
func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:       "Kitt Peak",
			Latitude:   31.9634,
			Longitude:  -111.6003,
			Elevation:  2120,
			HorizonMin: -34,
			Timezone:   "America/Phoenix",
		},
		Twilight: TwilightConfig{
			HalfLife:     156,
			InitialRate:  25000,
			TargetSignal: 5000,
			Overhead:     57,
			Wait:         450,
			MaxExposure:  600,
			LeadingZeros: 0,
			Program:      "twilight flats",
		},
	}
}

// Load returns Default overlaid with the YAML file at path.  An empty
// path means defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config: read")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "config: parse")
	}
	return cfg, nil
}

// EphemSite resolves the site into the ephemeris observer form.
func (c Config) EphemSite() (ephem.Site, error) {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return ephem.Site{}, errors.Wrapf(err, "config: timezone %q", c.Site.Timezone)
	}
	return ephem.Site{
		Name:      c.Site.Name,
		Lat:       c.Site.Latitude,
		Lon:       c.Site.Longitude,
		Elevation: c.Site.Elevation,
		Horizon:   unit.AngleFromMin(c.Site.HorizonMin),
		TZ:        loc,
	}, nil
}

// PlannerParams gathers the solver parameters.  Validation is the
// solver's own concern.
func (c Config) PlannerParams() twilight.Params {
	return twilight.Params{
		HalfLife:     c.Twilight.HalfLife,
		InitialRate:  c.Twilight.InitialRate,
		TargetSignal: c.Twilight.TargetSignal,
		Overhead:     c.Twilight.Overhead,
		Wait:         c.Twilight.Wait,
		MaxExposure:  c.Twilight.MaxExposure,
		LeadingZeros: c.Twilight.LeadingZeros,
	}
}
