package wire

import "github.com/behrlich/trackrelay/internal/errkind"

// Track is the raw kinematic record produced at the pipeline's origin,
// arriving at stage A at the low update rate (8 Hz).
//
// Wire layout (60 bytes, little-endian, no padding):
//
//	trackId:i32 vx:f64 vy:f64 vz:f64 px:f64 py:f64 pz:f64 originalUpdateTime:i64
type Track struct {
	TrackID            int32
	VX, VY, VZ         float64
	PX, PY, PZ         float64
	OriginalUpdateTime int64
}

// TrackWireSize is the exact encoded size of Track.
const TrackWireSize = trackWireSize

// Encode writes Track's fields in declared order into a freshly allocated
// 60-byte buffer.
func (t Track) Encode() []byte {
	buf := make([]byte, trackWireSize)
	putInt32(buf, 0, t.TrackID)
	putFloat64(buf, 4, t.VX)
	putFloat64(buf, 12, t.VY)
	putFloat64(buf, 20, t.VZ)
	putFloat64(buf, 28, t.PX)
	putFloat64(buf, 36, t.PY)
	putFloat64(buf, 44, t.PZ)
	putInt64(buf, 52, t.OriginalUpdateTime)
	return buf
}

// Validate reports whether t is well-formed: trackId >= 1, all times >= 0,
// and finite position/velocity components. Called by DecodeTrack, so a
// malformed Track is rejected before it reaches stage A's extrapolator.
func (t Track) Validate() error {
	if t.TrackID < 1 {
		return errkind.New(errkind.CodeInvalidRecord, "trackId must be >= 1")
	}
	if t.OriginalUpdateTime < 0 {
		return errkind.New(errkind.CodeInvalidRecord, "originalUpdateTime must be >= 0")
	}
	if !finite(t.VX, t.VY, t.VZ, t.PX, t.PY, t.PZ) {
		return errkind.New(errkind.CodeInvalidRecord, "non-finite position/velocity component")
	}
	return nil
}

// DecodeTrack decodes b into a Track, rejecting inputs shorter than
// TrackWireSize or that fail Validate. Trailing bytes beyond the wire size
// are ignored.
func DecodeTrack(b []byte) (Track, error) {
	if len(b) < trackWireSize {
		return Track{}, errkind.New(errkind.CodeDecodeFailure, "short Track buffer")
	}
	t := Track{
		TrackID:            getInt32(b, 0),
		VX:                 getFloat64(b, 4),
		VY:                 getFloat64(b, 12),
		VZ:                 getFloat64(b, 20),
		PX:                 getFloat64(b, 28),
		PY:                 getFloat64(b, 36),
		PZ:                 getFloat64(b, 44),
		OriginalUpdateTime: getInt64(b, 52),
	}
	if err := t.Validate(); err != nil {
		return Track{}, err
	}
	return t, nil
}
