// Package extrapolate implements stage A's domain worker: constant-velocity
// propagation of a low-rate input track to a higher-rate output stream. Each
// incoming Track fans out into the several ExtrapTracks needed to fill the
// gap until the next expected update.
package extrapolate

import (
	"math"
	"time"

	"github.com/behrlich/trackrelay/internal/wire"
)

// defaultPaceInterval spaces successive emissions so a burst of N
// extrapolated points does not leave the stage in a single instant; it is a
// quality-of-service smoothing choice, not something downstream correctness
// depends on.
const defaultPaceInterval = 10 * time.Millisecond

// Clock returns the current wall-clock time; Process takes it as a
// parameter so tests can supply a deterministic fake.
type Clock func() time.Time

// Extrapolator propagates a Track to FOut per second by constant-velocity
// extrapolation over an input period of 1/FIn seconds.
type Extrapolator struct {
	// FIn is the input track update rate in Hz (e.g. 8).
	FIn float64
	// FOut is the target output rate in Hz (e.g. 100).
	FOut float64
	// PaceInterval spaces successive emissions within Process, capped so the
	// cumulative pacing never exceeds the input period T_in. Zero disables
	// pacing. Defaults to 10ms when left unset via NewExtrapolator.
	PaceInterval time.Duration
}

// NewExtrapolator returns an Extrapolator configured with the default 10ms
// pacing interval.
func NewExtrapolator(fIn, fOut float64) *Extrapolator {
	return &Extrapolator{FIn: fIn, FOut: fOut, PaceInterval: defaultPaceInterval}
}

// Process expands t into N ExtrapTracks spanning one input period at the
// output rate, pacing emissions by e.PaceInterval (capped at T_in) if
// non-zero. now is called once per emission to stamp firstHopSentTime.
func (e *Extrapolator) Process(t wire.Track, now Clock) []wire.ExtrapTrack {
	tIn := 1.0 / e.FIn
	tOut := 1.0 / e.FOut

	n := int(math.Floor(tIn / tOut))
	if n < 1 {
		n = 1
	}

	pace := e.PaceInterval
	if pace < 0 {
		pace = 0
	}
	maxPace := time.Duration(tIn * float64(time.Second))
	if pace > 0 && time.Duration(n-1)*pace > maxPace {
		pace = maxPace / time.Duration(n)
	}

	out := make([]wire.ExtrapTrack, 0, n)
	for k := 0; k < n; k++ {
		offset := float64(k) * tOut

		et := wire.ExtrapTrack{
			TrackID:            t.TrackID,
			VX:                 t.VX,
			VY:                 t.VY,
			VZ:                 t.VZ,
			PX:                 t.PX + t.VX*offset,
			PY:                 t.PY + t.VY*offset,
			PZ:                 t.PZ + t.VZ*offset,
			OriginalUpdateTime: t.OriginalUpdateTime,
			UpdateTime:         t.OriginalUpdateTime*1000 + int64(math.Round(offset*1e6)),
			FirstHopSentTime:   now().UnixMicro(),
		}
		out = append(out, et)

		if pace > 0 && k < n-1 {
			time.Sleep(pace)
		}
	}
	return out
}
