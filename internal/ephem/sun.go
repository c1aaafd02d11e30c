// Public domain.

// Package ephem locates the sunset and sunrise instants that anchor
// twilight schedules.
//
// Times come from the Meeus rise/transit/set interpolation over three
// days of apparent solar positions.  The survey convention puts the
// event at solar altitude -0°34′ with no pressure correction, so the
// horizon is carried as a site parameter rather than hard coded.
package ephem

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// ΔT in seconds.  Rise and set times shift by well under a second per
// second of ΔT error, so the current value serves for years around it.
const deltaT = 69

// Site is the observer description.
type Site struct {
	Name      string
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive
	Elevation float64 // meters above sea level
	Horizon   unit.Angle
	TZ        *time.Location
}

// globeCoord converts to the Meeus convention of west-positive
// longitude.
func (s Site) globeCoord() globe.Coord {
	return globe.Coord{
		Lat: unit.AngleFromDeg(s.Lat),
		Lon: unit.AngleFromDeg(-s.Lon),
	}
}

func (s Site) location() *time.Location {
	if s.TZ == nil {
		return time.UTC
	}
	return s.TZ
}

// Event selects which solar crossing anchors a schedule.
type Event int

const (
	Sunset Event = iota
	Sunrise
)

func (e Event) String() string {
	if e == Sunrise {
		return "sunrise"
	}
	return "sunset"
}

// SunEvent returns the instant of ev whose calendar date in the site's
// local time is the given date.  For an evening event west of
// Greenwich that instant usually falls on the following UT day, so the
// neighborhood of UT days is scanned and the one matching the local
// date wins.  An error means the sun does not cross the site horizon
// around that date.
func SunEvent(s Site, year int, month time.Month, day int, ev Event) (time.Time, error) {
	for _, off := range []int{0, 1, -1} {
		ut := time.Date(year, month, day+off, 0, 0, 0, 0, time.UTC)
		te, err := sunEventOnUTDay(s, ut, ev)
		if err != nil {
			return time.Time{}, err
		}
		ly, lm, ld := te.In(s.location()).Date()
		if ly == year && lm == month && ld == day {
			return te, nil
		}
	}
	return time.Time{}, fmt.Errorf("ephem: no %s at %s with local date %04d-%02d-%02d",
		ev, s.Name, year, month, day)
}

// sunEventOnUTDay solves the event time on one UT day, day0 at 0h UT.
func sunEventOnUTDay(s Site, day0 time.Time, ev Event) (time.Time, error) {
	jd := julian.CalendarGregorianToJD(day0.Year(), int(day0.Month()), float64(day0.Day()))
	Th0 := sidereal.Apparent0UT(jd)
	var α3 [3]unit.RA
	var δ3 [3]unit.Angle
	for i := range α3 {
		α3[i], δ3[i] = solar.ApparentEquatorial(jd + float64(i-1))
	}
	tRise, _, tSet, err := rise.Times(s.globeCoord(), unit.Time(deltaT),
		s.Horizon, Th0, α3[:], δ3[:])
	if err != nil {
		return time.Time{}, fmt.Errorf("ephem: %s at %s: %v", ev, s.Name, err)
	}
	te := tSet
	if ev == Sunrise {
		te = tRise
	}
	return day0.Add(time.Duration(te.Sec() * float64(time.Second))), nil
}
