package wire

import "github.com/behrlich/trackrelay/internal/errkind"

// DelayTrack is ExtrapTrack enriched by stage B with the first-hop delay
// (A→B transport latency) and a stamp for the B→C hop.
//
// Wire layout (92 bytes): ...ExtrapTrack fields..., firstHopDelayTime:i64, secondHopSentTime:i64
type DelayTrack struct {
	TrackID            int32
	VX, VY, VZ         float64
	PX, PY, PZ         float64
	OriginalUpdateTime int64
	UpdateTime         int64
	FirstHopSentTime   int64
	FirstHopDelayTime  int64
	SecondHopSentTime  int64
}

// DelayTrackWireSize is the exact encoded size of DelayTrack.
const DelayTrackWireSize = delayTrackWireSize

func (d DelayTrack) Encode() []byte {
	buf := make([]byte, delayTrackWireSize)
	putInt32(buf, 0, d.TrackID)
	putFloat64(buf, 4, d.VX)
	putFloat64(buf, 12, d.VY)
	putFloat64(buf, 20, d.VZ)
	putFloat64(buf, 28, d.PX)
	putFloat64(buf, 36, d.PY)
	putFloat64(buf, 44, d.PZ)
	putInt64(buf, 52, d.OriginalUpdateTime)
	putInt64(buf, 60, d.UpdateTime)
	putInt64(buf, 68, d.FirstHopSentTime)
	putInt64(buf, 76, d.FirstHopDelayTime)
	putInt64(buf, 84, d.SecondHopSentTime)
	return buf
}

// Validate checks ExtrapTrack's invariants plus firstHopSentTime <= secondHopSentTime.
func (d DelayTrack) Validate() error {
	if d.TrackID < 1 {
		return errkind.New(errkind.CodeInvalidRecord, "trackId must be >= 1")
	}
	if d.OriginalUpdateTime < 0 || d.UpdateTime < 0 || d.FirstHopSentTime < 0 ||
		d.FirstHopDelayTime < 0 || d.SecondHopSentTime < 0 {
		return errkind.New(errkind.CodeInvalidRecord, "times must be >= 0")
	}
	if d.OriginalUpdateTime > d.UpdateTime {
		return errkind.New(errkind.CodeInvalidRecord, "originalUpdateTime must be <= updateTime")
	}
	if d.FirstHopSentTime > d.SecondHopSentTime {
		return errkind.New(errkind.CodeInvalidRecord, "firstHopSentTime must be <= secondHopSentTime")
	}
	if !finite(d.VX, d.VY, d.VZ, d.PX, d.PY, d.PZ) {
		return errkind.New(errkind.CodeInvalidRecord, "non-finite position/velocity component")
	}
	return nil
}

// DecodeDelayTrack decodes b into a DelayTrack, rejecting inputs shorter
// than DelayTrackWireSize or that fail Validate.
func DecodeDelayTrack(b []byte) (DelayTrack, error) {
	if len(b) < delayTrackWireSize {
		return DelayTrack{}, errkind.New(errkind.CodeDecodeFailure, "short DelayTrack buffer")
	}
	d := DelayTrack{
		TrackID:            getInt32(b, 0),
		VX:                 getFloat64(b, 4),
		VY:                 getFloat64(b, 12),
		VZ:                 getFloat64(b, 20),
		PX:                 getFloat64(b, 28),
		PY:                 getFloat64(b, 36),
		PZ:                 getFloat64(b, 44),
		OriginalUpdateTime: getInt64(b, 52),
		UpdateTime:         getInt64(b, 60),
		FirstHopSentTime:   getInt64(b, 68),
		FirstHopDelayTime:  getInt64(b, 76),
		SecondHopSentTime:  getInt64(b, 84),
	}
	if err := d.Validate(); err != nil {
		return DelayTrack{}, err
	}
	return d, nil
}
