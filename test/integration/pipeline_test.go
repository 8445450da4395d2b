//go:build integration

// Package integration holds end-to-end tests that exercise the real UDP
// multicast transport. These tests need multicast group membership, a
// privilege a default `go test ./...` run should not depend on, so they
// are gated behind the "integration" build tag and skip themselves if the
// sandbox cannot join a multicast group.
package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/behrlich/trackrelay/internal/delaycalc"
	"github.com/behrlich/trackrelay/internal/extrapolate"
	"github.com/behrlich/trackrelay/internal/finalize"
	"github.com/behrlich/trackrelay/internal/transport"
	"github.com/behrlich/trackrelay/internal/wire"
)

// requireMulticast skips the test if the sandbox has no multicast-capable
// loopback route, which is common in restricted CI containers.
func requireMulticast(t *testing.T, err error) {
	if err != nil {
		t.Skipf("multicast not available in this environment: %v", err)
	}
}

// TestPipelineLoopback feeds one raw Track through real stageA->stageB->
// stageC transport (loopback multicast) and asserts a FinalTrack with the
// expected identity and non-negative delays arrives at the end.
func TestPipelineLoopback(t *testing.T) {
	abEndpoint, err := transport.ParseEndpoint("udp://239.255.0.1:19001")
	require.NoError(t, err)
	bcEndpoint, err := transport.ParseEndpoint("udp://239.255.0.1:19002")
	require.NoError(t, err)
	cEndpoint, err := transport.ParseEndpoint("udp://239.255.0.1:19003")
	require.NoError(t, err)

	abSender := transport.NewSender[wire.ExtrapTrack](transport.SenderConfig{
		Name: "ab.sender", Group: "AB", Endpoint: abEndpoint, Capacity: 64,
	})
	require.NoError(t, abSender.Start())
	defer abSender.Stop()

	calculator := &delaycalc.Calculator{}
	bcSender := transport.NewSender[wire.DelayTrack](transport.SenderConfig{
		Name: "bc.sender", Group: "BC", Endpoint: bcEndpoint, Capacity: 64,
	})
	require.NoError(t, bcSender.Start())
	defer bcSender.Stop()
	calculator.Sinks = []delaycalc.Sink{bcSender}

	abReceiver := transport.NewReceiver[wire.ExtrapTrack](transport.ReceiverConfig[wire.ExtrapTrack]{
		Name: "ab.receiver", Group: "AB", Endpoint: abEndpoint, Decode: wire.DecodeExtrapTrack,
		Sink: func(et wire.ExtrapTrack, recvTimeUs int64) {
			_, _ = calculator.Process(et, recvTimeUs, func() int64 { return time.Now().UnixMicro() })
		},
	})
	requireMulticast(t, abReceiver.Start())
	defer abReceiver.Stop()

	finalizer := &finalize.Finalizer{}
	finals := make(chan wire.FinalTrack, 16)
	cSender := transport.NewSender[wire.FinalTrack](transport.SenderConfig{
		Name: "c.sender", Group: "C", Endpoint: cEndpoint, Capacity: 64,
	})
	require.NoError(t, cSender.Start())
	defer cSender.Stop()

	bcReceiver := transport.NewReceiver[wire.DelayTrack](transport.ReceiverConfig[wire.DelayTrack]{
		Name: "bc.receiver", Group: "BC", Endpoint: bcEndpoint, Decode: wire.DecodeDelayTrack,
		Sink: func(d wire.DelayTrack, recvTimeUs int64) {
			final := finalizer.Process(d, func() int64 { return time.Now().UnixMicro() })
			cSender.Send(final)
			finals <- final
		},
	})
	requireMulticast(t, bcReceiver.Start())
	defer bcReceiver.Stop()

	extrapolator := extrapolate.NewExtrapolator(8, 100)
	extrapolator.PaceInterval = 0
	tr := wire.Track{
		TrackID: 99, VX: 10, VY: 20, VZ: 0,
		PX: 1000, PY: 2000, PZ: 0, OriginalUpdateTime: 1700000000000,
	}
	for _, et := range extrapolator.Process(tr, time.Now) {
		abSender.Send(et)
	}

	select {
	case final := <-finals:
		require.Equal(t, tr.TrackID, final.TrackID)
		require.GreaterOrEqual(t, final.TotalDelayTime, int64(0))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for FinalTrack to traverse the loopback pipeline")
	}
}
