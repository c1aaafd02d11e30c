// Public domain.

// Package twilight computes twilight flat exposure sequences.
//
// The sky surface brightness after sunset is modeled as an exponential
// decay with a fixed half-life.  Each exposure is solved in closed form
// for the duration that integrates the decaying flux to a fixed target
// signal, then the clock is advanced by that duration plus the readout
// overhead and the next exposure is solved from the dimmer sky.  The
// sequence ends when the model can no longer deliver the target signal
// in finite time, or when the required duration passes the configured
// ceiling.
package twilight

import (
	"fmt"
	"math"
)

// Params holds the calibration constants of the sky model and the
// sequencing policy.  A Params value is immutable once handed to Plan.
type Params struct {
	// HalfLife of the sky brightness decay, seconds.
	HalfLife float64

	// InitialRate is the detector signal rate at the anchor instant,
	// signal units per second.
	InitialRate float64

	// TargetSignal is the accumulated signal each exposure aims for.
	TargetSignal float64

	// Overhead is the fixed dead time after each exposure, seconds.
	Overhead float64

	// Wait is the delay between the anchor event and the first
	// exposure attempt, seconds.
	Wait float64

	// MaxExposure caps a single exposure, seconds.  Sequencing stops
	// once the next solved duration would exceed it.
	MaxExposure float64

	// LeadingZeros counts zero-second frames taken ahead of the timed
	// exposures.  They contribute LeadingZeros*Overhead to the first
	// offset but produce no entries in the planned sequence.
	LeadingZeros int
}

// DecayRate returns the model decay constant, ln 2 over the half-life.
func (p Params) DecayRate() float64 {
	return math.Ln2 / p.HalfLife
}

// Validate reports the first unusable calibration constant.  The solver
// diverges silently on non-positive model constants, and a NaN or
// infinity in any field defeats both stopping rules in next, so Plan
// refuses them up front.
func (p Params) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"half-life", p.HalfLife},
		{"initial rate", p.InitialRate},
		{"target signal", p.TargetSignal},
		{"overhead", p.Overhead},
		{"wait", p.Wait},
		{"max exposure", p.MaxExposure},
	} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return fmt.Errorf("twilight: %s must be finite, have %g", c.name, c.v)
		}
	}
	switch {
	case !(p.HalfLife > 0):
		return fmt.Errorf("twilight: half-life must be positive, have %g", p.HalfLife)
	case !(p.InitialRate > 0):
		return fmt.Errorf("twilight: initial rate must be positive, have %g", p.InitialRate)
	case !(p.TargetSignal > 0):
		return fmt.Errorf("twilight: target signal must be positive, have %g", p.TargetSignal)
	case !(p.MaxExposure > 0):
		return fmt.Errorf("twilight: max exposure must be positive, have %g", p.MaxExposure)
	case p.Overhead < 0:
		return fmt.Errorf("twilight: overhead must not be negative, have %g", p.Overhead)
	case p.Wait < 0:
		return fmt.Errorf("twilight: wait must not be negative, have %g", p.Wait)
	case p.LeadingZeros < 0:
		return fmt.Errorf("twilight: leading zero count must not be negative, have %d", p.LeadingZeros)
	}
	return nil
}

// Step is one planned exposure.  Offset is the elapsed time from the
// anchor event to shutter open, Duration the open-shutter time, both in
// seconds.
type Step struct {
	Offset   float64
	Duration float64
}

// Sequence is an ordered exposure plan.  Offsets increase strictly,
// each by at least the preceding duration.
type Sequence []Step

// Plan solves the exposure sequence for p.  The result may be empty:
// if the very first exposure already fails the model or the ceiling,
// no usable twilight window exists.  Plan is a pure function of p.
func Plan(p Params) (Sequence, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k := p.DecayRate()
	t := p.Wait + float64(p.LeadingZeros)*p.Overhead
	var seq Sequence
	for d, ok := p.next(k, t); ok; d, ok = p.next(k, t) {
		seq = append(seq, Step{Offset: t, Duration: d})
		t += d + p.Overhead
	}
	return seq, nil
}

// next solves the duration of an exposure opening at t seconds after
// the anchor, or reports that the sequence ends there.  Both stopping
// rules live here: the accumulation ratio a reaching 1 means the
// decayed sky cannot deliver the target signal in finite time, and a
// duration past MaxExposure trips the ceiling.  a grows monotonically
// in t for any positive decay rate, so one of the two always
// terminates the plan.
func (p Params) next(k, t float64) (float64, bool) {
	a := k * p.TargetSignal * math.Exp(k*t) / p.InitialRate
	if a >= 1 {
		return 0, false
	}
	d := -math.Log(1-a) / k
	if d > p.MaxExposure {
		return 0, false
	}
	return d, true
}

// Mirror re-anchors a sequence for a brightening sky, as before
// sunrise.  Exposure windows are reflected about the anchor so the
// longest, darkest-sky exposure comes first and the sequence runs up
// to the anchor instant.  Offsets are negative but still strictly
// increasing.
func (s Sequence) Mirror() Sequence {
	m := make(Sequence, len(s))
	for i, st := range s {
		m[len(s)-1-i] = Step{
			Offset:   -(st.Offset + st.Duration),
			Duration: st.Duration,
		}
	}
	return m
}
