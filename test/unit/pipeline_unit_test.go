//go:build !integration

// Package unit holds cross-package tests that exercise the full
// extrapolate -> delaycalc -> finalize record chain without any transport,
// so they run in any environment without multicast privileges.
package unit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behrlich/trackrelay/internal/delaycalc"
	"github.com/behrlich/trackrelay/internal/extrapolate"
	"github.com/behrlich/trackrelay/internal/finalize"
	"github.com/behrlich/trackrelay/internal/wire"
)

type captureSink struct {
	got []wire.DelayTrack
}

func (c *captureSink) Accept(record wire.DelayTrack) {
	c.got = append(c.got, record)
}

// TestFullChainProducesConsistentFinalTrack feeds one raw Track through the
// whole A->B->C record chain in-process and checks the invariants that must
// hold end to end: stable trackId, non-decreasing hop timestamps, and
// totalDelayTime equal to the sum of its two components.
func TestFullChainProducesConsistentFinalTrack(t *testing.T) {
	tr := wire.Track{
		TrackID: 7, VX: 5, VY: -5, VZ: 0,
		PX: 100, PY: 200, PZ: 0, OriginalUpdateTime: 1700000000000,
	}

	extrapolator := extrapolate.NewExtrapolator(8, 100)
	extrapolator.PaceInterval = 0
	emitted := extrapolator.Process(tr, time.Now)
	require.NotEmpty(t, emitted)

	sink := &captureSink{}
	calculator := &delaycalc.Calculator{Sinks: []delaycalc.Sink{sink}}
	for _, et := range emitted {
		_, err := calculator.Process(et, time.Now().UnixMicro(), func() int64 { return time.Now().UnixMicro() })
		require.NoError(t, err)
	}
	require.Len(t, sink.got, len(emitted))

	finalizer := &finalize.Finalizer{}
	for _, d := range sink.got {
		final := finalizer.Process(d, func() int64 { return time.Now().UnixMicro() })

		assert.Equal(t, tr.TrackID, final.TrackID)
		assert.LessOrEqual(t, final.FirstHopSentTime, final.SecondHopSentTime)
		assert.LessOrEqual(t, final.SecondHopSentTime, final.ThirdHopSentTime)
		assert.Equal(t, final.FirstHopDelayTime+final.SecondHopDelayTime, final.TotalDelayTime)
		require.NoError(t, final.Validate())
	}
}

// TestFullChainFeedsMovingAverageAndTrackStats checks the two analytics
// sinks stage C maintains alongside emission, across several input frames.
func TestFullChainFeedsMovingAverageAndTrackStats(t *testing.T) {
	extrapolator := extrapolate.NewExtrapolator(8, 100)
	extrapolator.PaceInterval = 0
	calculator := &delaycalc.Calculator{}
	finalizer := &finalize.Finalizer{}
	average := finalize.NewMovingAverage(10)
	stats := finalize.NewTrackStats()

	for frame := int32(1); frame <= 3; frame++ {
		tr := wire.Track{
			TrackID: frame, VX: 1, VY: 1, VZ: 1,
			PX: 0, PY: 0, PZ: 0, OriginalUpdateTime: 1700000000000,
		}
		for _, et := range extrapolator.Process(tr, time.Now) {
			d, err := calculator.Process(et, time.Now().UnixMicro(), func() int64 { return time.Now().UnixMicro() })
			require.NoError(t, err)
			final := finalizer.Process(d, func() int64 { return time.Now().UnixMicro() })
			average.Observe(final.FirstHopDelayTime)
			stats.Observe(final.TrackID, final.TotalDelayTime)
		}
	}

	assert.Greater(t, average.Len(), 0)
	count, min, max, ok := stats.Snapshot(1)
	require.True(t, ok)
	assert.Greater(t, count, int64(0))
	assert.GreaterOrEqual(t, max, min)
}
