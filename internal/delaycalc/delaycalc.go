// Package delaycalc implements stage B's domain worker: first-hop delay
// accounting plus fan-out to every registered outbound sink. A plain list
// of Sinks, rather than a single owned output, lets the same computed
// record reach the outbound sender and a local analytics consumer without
// either one needing to know the other exists.
package delaycalc

import (
	"github.com/behrlich/trackrelay/internal/errkind"
	"github.com/behrlich/trackrelay/internal/wire"
)

// Clock returns the current time in microseconds since the Unix epoch.
type Clock func() int64

// Sink receives a finished DelayTrack. The RADIO sender and an optional
// local analytics sink both implement Sink; delaycalc does not care which.
type Sink interface {
	Accept(record wire.DelayTrack)
}

// Calculator is stage B's domain worker.
type Calculator struct {
	Sinks []Sink
}

// Process validates e, computes the A→B first-hop delay from recvTime (the
// receiver-stamped arrival microsecond timestamp), stamps secondHopSentTime
// via now, and fans the resulting DelayTrack out to every registered Sink.
func (c *Calculator) Process(e wire.ExtrapTrack, recvTime int64, now Clock) (wire.DelayTrack, error) {
	if err := e.Validate(); err != nil {
		return wire.DelayTrack{}, errkind.Wrap("delaycalc.Process", errkind.CodeInvalidRecord, err)
	}

	var firstHopDelayTime int64
	if e.FirstHopSentTime > 0 && recvTime > e.FirstHopSentTime {
		firstHopDelayTime = recvTime - e.FirstHopSentTime
	}

	secondHopSentTime := now()

	d := wire.DelayTrack{
		TrackID:            e.TrackID,
		VX:                 e.VX,
		VY:                 e.VY,
		VZ:                 e.VZ,
		PX:                 e.PX,
		PY:                 e.PY,
		PZ:                 e.PZ,
		OriginalUpdateTime:  e.OriginalUpdateTime,
		UpdateTime:          e.UpdateTime,
		FirstHopSentTime:    e.FirstHopSentTime,
		FirstHopDelayTime:   firstHopDelayTime,
		SecondHopSentTime:   secondHopSentTime,
	}

	for _, sink := range c.Sinks {
		sink.Accept(d)
	}
	return d, nil
}
