package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrack() Track {
	return Track{
		TrackID:            1234,
		VX:                 100.0,
		VY:                 200.0,
		VZ:                 50.0,
		PX:                 4000000.0,
		PY:                 3000000.0,
		PZ:                 5000000.0,
		OriginalUpdateTime: 1700000000000,
	}
}

// S1 — Codec.
func TestTrackEncodeDecodeRoundTrip(t *testing.T) {
	tr := sampleTrack()
	buf := tr.Encode()
	require.Len(t, buf, TrackWireSize)

	got, err := DecodeTrack(buf)
	require.NoError(t, err)
	assert.Equal(t, tr, got)
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	tr := sampleTrack()
	buf := tr.Encode()

	_, err := DecodeTrack(buf[:TrackWireSize-1])
	assert.Error(t, err)
}

func TestDecodeRejectsNonFinitePosition(t *testing.T) {
	tr := sampleTrack()
	tr.PX = math.NaN()
	buf := tr.Encode()

	_, err := DecodeTrack(buf)
	assert.Error(t, err)

	tr2 := sampleTrack()
	tr2.VZ = math.Inf(1)
	_, err = DecodeTrack(tr2.Encode())
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidTrackID(t *testing.T) {
	tr := sampleTrack()
	tr.TrackID = 0
	_, err := DecodeTrack(tr.Encode())
	assert.Error(t, err)
}

func TestExtrapTrackRoundTrip(t *testing.T) {
	e := ExtrapTrack{
		TrackID:            1234,
		VX:                 1, VY: 2, VZ: 3,
		PX: 10, PY: 20, PZ: 30,
		OriginalUpdateTime: 1000,
		UpdateTime:         1000_010,
		FirstHopSentTime:   500,
	}
	buf := e.Encode()
	require.Len(t, buf, ExtrapTrackWireSize)

	got, err := DecodeExtrapTrack(buf)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestExtrapTrackRejectsOriginalAfterUpdate(t *testing.T) {
	e := ExtrapTrack{TrackID: 1, OriginalUpdateTime: 100, UpdateTime: 50}
	_, err := DecodeExtrapTrack(e.Encode())
	assert.Error(t, err)
}

func TestDelayTrackRoundTripAndOrdering(t *testing.T) {
	d := DelayTrack{
		TrackID: 7, OriginalUpdateTime: 10, UpdateTime: 20,
		FirstHopSentTime: 100, FirstHopDelayTime: 5, SecondHopSentTime: 150,
	}
	buf := d.Encode()
	require.Len(t, buf, DelayTrackWireSize)

	got, err := DecodeDelayTrack(buf)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	bad := d
	bad.FirstHopSentTime = 200
	bad.SecondHopSentTime = 100
	_, err = DecodeDelayTrack(bad.Encode())
	assert.Error(t, err)
}

// S4-adjacent — total delay identity enforced at decode time too.
func TestFinalTrackRoundTripAndTotalDelayIdentity(t *testing.T) {
	f := FinalTrack{
		TrackID: 9, OriginalUpdateTime: 10, UpdateTime: 20,
		FirstHopSentTime: 100, FirstHopDelayTime: 150, SecondHopSentTime: 250,
		SecondHopDelayTime: 3000, TotalDelayTime: 3150, ThirdHopSentTime: 3250,
	}
	buf := f.Encode()
	require.Len(t, buf, FinalTrackWireSize)

	got, err := DecodeFinalTrack(buf)
	require.NoError(t, err)
	assert.Equal(t, f, got)

	bad := f
	bad.TotalDelayTime = f.TotalDelayTime + 1
	_, err = DecodeFinalTrack(bad.Encode())
	assert.Error(t, err)
}

func TestFinalTrackRejectsOutOfOrderHops(t *testing.T) {
	f := FinalTrack{
		TrackID: 1, FirstHopSentTime: 300, SecondHopSentTime: 200, ThirdHopSentTime: 400,
		TotalDelayTime: 0,
	}
	_, err := DecodeFinalTrack(f.Encode())
	assert.Error(t, err)
}
