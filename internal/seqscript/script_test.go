// Public domain.

package seqscript_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiberspec/twiplan/internal/seqscript"
	"github.com/fiberspec/twiplan/internal/twilight"
)

var anchor = time.Date(2026, time.March, 21, 1, 37, 0, 0, time.UTC)

func planSeq(t *testing.T, p twilight.Params) twilight.Sequence {
	t.Helper()
	seq, err := twilight.Plan(p)
	require.NoError(t, err)
	require.NotEmpty(t, seq)
	return seq
}

func TestBuild(t *testing.T) {
	seq := twilight.Sequence{
		{Offset: 450, Duration: 1.5},
		{Offset: 508.5, Duration: 2},
	}
	recs := seqscript.Build(seq, 0, 57, anchor, "twilight flats")
	require.Len(t, recs, 2)

	assert.Equal(t, "twilight flats", recs[0].Program)
	assert.Equal(t, 1.5, recs[0].Exptime)
	assert.Equal(t, 2.0, recs[1].Exptime)

	// only the first record is timestamped, at anchor+450s
	assert.Equal(t, "2026-03-21T01:44:30Z", recs[0].StartTime)
	assert.Empty(t, recs[1].StartTime)
}

func TestBuildLeadingZeros(t *testing.T) {
	p := twilight.Params{
		HalfLife: 156, InitialRate: 25000, TargetSignal: 5000,
		Overhead: 57, Wait: 450, MaxExposure: 600, LeadingZeros: 2,
	}
	recs := seqscript.Build(planSeq(t, p), p.LeadingZeros, p.Overhead, anchor, "twilight flats")
	require.Greater(t, len(recs), 2)

	// zero frames first, then timed ones
	assert.Zero(t, recs[0].Exptime)
	assert.Zero(t, recs[1].Exptime)
	assert.Greater(t, recs[2].Exptime, 0.0)

	// script still starts at anchor+wait: the zero frames occupy the
	// overhead lead-in ahead of the first timed exposure
	assert.Equal(t, "2026-03-21T01:44:30Z", recs[0].StartTime)
	for _, r := range recs[1:] {
		assert.Empty(t, r.StartTime)
	}
}

func TestBuildMorning(t *testing.T) {
	p := twilight.Params{
		HalfLife: 156, InitialRate: 25000, TargetSignal: 5000,
		Overhead: 57, Wait: 450, MaxExposure: 600, LeadingZeros: 1,
	}
	seq := planSeq(t, p).Mirror()
	require.Less(t, seq[0].Offset, 0.0)

	recs := seqscript.Build(seq, p.LeadingZeros, p.Overhead, anchor, "twilight flats")
	require.Len(t, recs, len(seq)+1)

	// zero frame leads, then the longest darkest-sky exposure
	assert.Zero(t, recs[0].Exptime)
	assert.Equal(t, seq[0].Duration, recs[1].Exptime)
	assert.Greater(t, recs[1].Exptime, recs[len(recs)-1].Exptime)

	// the script starts before sunrise, backed up one more overhead
	// for the zero frame
	start, err := time.Parse(time.RFC3339, recs[0].StartTime)
	require.NoError(t, err)
	assert.True(t, start.Before(anchor))
	want := anchor.Add(time.Duration((seq[0].Offset - p.Overhead) * float64(time.Second)))
	assert.WithinDuration(t, want, start, time.Second)
}

func TestBuildEmptyPlan(t *testing.T) {
	recs := seqscript.Build(nil, 2, 57, anchor, "twilight flats")
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestWriteRoundTrip(t *testing.T) {
	seq := twilight.Sequence{{Offset: 450, Duration: 1.481886}}
	recs := seqscript.Build(seq, 0, 57, anchor, "twilight flats")

	var buf bytes.Buffer
	require.NoError(t, seqscript.Write(&buf, recs, true))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Spectrographs", got[0]["sequence"])
	assert.Equal(t, "twilight", got[0]["flavor"])
	assert.InDelta(t, 1.481886, got[0]["exptime"].(float64), 1e-9)
	assert.Contains(t, got[0], "starttime")
}

func TestWriteEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, seqscript.Write(&buf, seqscript.Build(nil, 0, 0, anchor, "x"), false))
	assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
}
