// Package finalize implements stage C's domain worker: second-hop delay and
// end-to-end total delay accounting, plus a moving-average and per-track
// statistics aggregate fed from the same records.
package finalize

import (
	"github.com/behrlich/trackrelay/internal/wire"
)

// Clock returns the current time in microseconds since the Unix epoch.
type Clock func() int64

// Finalizer is stage C's domain worker.
type Finalizer struct{}

// Process computes the B→C second-hop delay and the end-to-end total delay
// for d, stamping thirdHopSentTime from now. Emitting the result to the
// outbound sender and feeding the analytics aggregates are the caller's
// responsibility; unlike delaycalc.Calculator, Finalizer has no Sink list.
func (f *Finalizer) Process(d wire.DelayTrack, now Clock) wire.FinalTrack {
	n := now()

	secondHopDelayTime := n - d.SecondHopSentTime
	if secondHopDelayTime < 0 {
		secondHopDelayTime = 0
	}

	return wire.FinalTrack{
		TrackID:            d.TrackID,
		VX:                 d.VX,
		VY:                 d.VY,
		VZ:                 d.VZ,
		PX:                 d.PX,
		PY:                 d.PY,
		PZ:                 d.PZ,
		OriginalUpdateTime:  d.OriginalUpdateTime,
		UpdateTime:          d.UpdateTime,
		FirstHopSentTime:    d.FirstHopSentTime,
		FirstHopDelayTime:   d.FirstHopDelayTime,
		SecondHopSentTime:   d.SecondHopSentTime,
		SecondHopDelayTime:  secondHopDelayTime,
		TotalDelayTime:      d.FirstHopDelayTime + secondHopDelayTime,
		ThirdHopSentTime:    n,
	}
}
