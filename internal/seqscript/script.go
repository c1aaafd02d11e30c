// Public domain.

// Package seqscript renders a planned twilight sequence as the JSON
// script consumed by the observation sequencer.  The field layout is
// owned by the sequencer, not by the planner.
package seqscript

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/fiberspec/twiplan/internal/twilight"
)

// Record is one scheduled observation.  Only the first record of a
// script carries the absolute start time; the sequencer runs the rest
// back to back.
type Record struct {
	Sequence  string  `json:"sequence"`
	Flavor    string  `json:"flavor"`
	Program   string  `json:"program"`
	Exptime   float64 `json:"exptime"`
	StartTime string  `json:"starttime,omitempty"`
}

const (
	sequenceName = "Spectrographs"
	flavorName   = "twilight"
)

// Build assembles the script records for a planned sequence anchored
// at the given instant.  leadingZeros zero-second frames are prepended
// ahead of the timed exposures; their readout overhead is already
// folded into the sequence offsets, so the script start backs up by
// leadingZeros*overhead from the first timed exposure.  An empty plan
// yields an empty script, zero frames included: there is nothing to
// calibrate against.
func Build(seq twilight.Sequence, leadingZeros int, overhead float64,
	anchor time.Time, program string) []Record {

	recs := make([]Record, 0, len(seq)+leadingZeros)
	if len(seq) == 0 {
		return recs
	}
	for i := 0; i < leadingZeros; i++ {
		recs = append(recs, Record{
			Sequence: sequenceName,
			Flavor:   flavorName,
			Program:  program,
		})
	}
	for _, st := range seq {
		recs = append(recs, Record{
			Sequence: sequenceName,
			Flavor:   flavorName,
			Program:  program,
			Exptime:  st.Duration,
		})
	}
	start := seq[0].Offset - float64(leadingZeros)*overhead
	at := anchor.Add(time.Duration(start * float64(time.Second)))
	recs[0].StartTime = at.UTC().Format(time.RFC3339)
	return recs
}

// Write emits records as JSON.
func Write(w io.Writer, recs []Record, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(recs), "seqscript: encode")
}

// WriteFile writes the script to path, replacing any previous one.
func WriteFile(path string, recs []Record, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "seqscript: create")
	}
	if err := Write(f, recs, pretty); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "seqscript: close")
}
