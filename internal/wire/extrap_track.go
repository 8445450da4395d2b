package wire

import "github.com/behrlich/trackrelay/internal/errkind"

// ExtrapTrack is Track extrapolated by stage A to the pipeline's output
// rate, with a stamp for when it left stage A toward stage B.
//
// Wire layout (76 bytes): ...Track fields..., updateTime:i64, firstHopSentTime:i64
type ExtrapTrack struct {
	TrackID            int32
	VX, VY, VZ         float64
	PX, PY, PZ         float64
	OriginalUpdateTime int64
	UpdateTime         int64
	FirstHopSentTime   int64
}

// ExtrapTrackWireSize is the exact encoded size of ExtrapTrack.
const ExtrapTrackWireSize = extrapTrackWireSize

func (e ExtrapTrack) Encode() []byte {
	buf := make([]byte, extrapTrackWireSize)
	putInt32(buf, 0, e.TrackID)
	putFloat64(buf, 4, e.VX)
	putFloat64(buf, 12, e.VY)
	putFloat64(buf, 20, e.VZ)
	putFloat64(buf, 28, e.PX)
	putFloat64(buf, 36, e.PY)
	putFloat64(buf, 44, e.PZ)
	putInt64(buf, 52, e.OriginalUpdateTime)
	putInt64(buf, 60, e.UpdateTime)
	putInt64(buf, 68, e.FirstHopSentTime)
	return buf
}

// Validate checks the invariants that apply once a record carries hop
// timestamps: non-negative times, and originalUpdateTime <= updateTime.
func (e ExtrapTrack) Validate() error {
	if e.TrackID < 1 {
		return errkind.New(errkind.CodeInvalidRecord, "trackId must be >= 1")
	}
	if e.OriginalUpdateTime < 0 || e.UpdateTime < 0 || e.FirstHopSentTime < 0 {
		return errkind.New(errkind.CodeInvalidRecord, "times must be >= 0")
	}
	if e.OriginalUpdateTime > e.UpdateTime {
		return errkind.New(errkind.CodeInvalidRecord, "originalUpdateTime must be <= updateTime")
	}
	if !finite(e.VX, e.VY, e.VZ, e.PX, e.PY, e.PZ) {
		return errkind.New(errkind.CodeInvalidRecord, "non-finite position/velocity component")
	}
	return nil
}

// DecodeExtrapTrack decodes b into an ExtrapTrack, rejecting inputs shorter
// than ExtrapTrackWireSize or that fail Validate.
func DecodeExtrapTrack(b []byte) (ExtrapTrack, error) {
	if len(b) < extrapTrackWireSize {
		return ExtrapTrack{}, errkind.New(errkind.CodeDecodeFailure, "short ExtrapTrack buffer")
	}
	e := ExtrapTrack{
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
	}
	if err := e.Validate(); err != nil {
		return ExtrapTrack{}, err
	}
	return e, nil
}
