package wire

import "github.com/behrlich/trackrelay/internal/errkind"

// FinalTrack is DelayTrack enriched by stage C with the second-hop delay
// (B→C transport latency), the end-to-end total delay, and the stamp at
// which stage C finished processing the record.
//
// Wire layout (116 bytes): ...DelayTrack fields..., secondHopDelayTime:i64, totalDelayTime:i64, thirdHopSentTime:i64
type FinalTrack struct {
	TrackID             int32
	VX, VY, VZ          float64
	PX, PY, PZ          float64
	OriginalUpdateTime  int64
	UpdateTime          int64
	FirstHopSentTime    int64
	FirstHopDelayTime   int64
	SecondHopSentTime   int64
	SecondHopDelayTime  int64
	TotalDelayTime      int64
	ThirdHopSentTime    int64
}

// FinalTrackWireSize is the exact encoded size of FinalTrack.
const FinalTrackWireSize = finalTrackWireSize

func (f FinalTrack) Encode() []byte {
	buf := make([]byte, finalTrackWireSize)
	putInt32(buf, 0, f.TrackID)
	putFloat64(buf, 4, f.VX)
	putFloat64(buf, 12, f.VY)
	putFloat64(buf, 20, f.VZ)
	putFloat64(buf, 28, f.PX)
	putFloat64(buf, 36, f.PY)
	putFloat64(buf, 44, f.PZ)
	putInt64(buf, 52, f.OriginalUpdateTime)
	putInt64(buf, 60, f.UpdateTime)
	putInt64(buf, 68, f.FirstHopSentTime)
	putInt64(buf, 76, f.FirstHopDelayTime)
	putInt64(buf, 84, f.SecondHopSentTime)
	putInt64(buf, 92, f.SecondHopDelayTime)
	putInt64(buf, 100, f.TotalDelayTime)
	putInt64(buf, 108, f.ThirdHopSentTime)
	return buf
}

// Validate checks DelayTrack's invariants plus the hop-ordering chain
// firstHopSentTime <= secondHopSentTime <= thirdHopSentTime and the
// totalDelayTime identity.
func (f FinalTrack) Validate() error {
	if f.TrackID < 1 {
		return errkind.New(errkind.CodeInvalidRecord, "trackId must be >= 1")
	}
	if f.OriginalUpdateTime < 0 || f.UpdateTime < 0 || f.FirstHopSentTime < 0 ||
		f.FirstHopDelayTime < 0 || f.SecondHopSentTime < 0 || f.SecondHopDelayTime < 0 ||
		f.TotalDelayTime < 0 || f.ThirdHopSentTime < 0 {
		return errkind.New(errkind.CodeInvalidRecord, "times must be >= 0")
	}
	if f.OriginalUpdateTime > f.UpdateTime {
		return errkind.New(errkind.CodeInvalidRecord, "originalUpdateTime must be <= updateTime")
	}
	if f.FirstHopSentTime > f.SecondHopSentTime || f.SecondHopSentTime > f.ThirdHopSentTime {
		return errkind.New(errkind.CodeInvalidRecord, "hop timestamps must be non-decreasing")
	}
	if f.TotalDelayTime != f.FirstHopDelayTime+f.SecondHopDelayTime {
		return errkind.New(errkind.CodeInvalidRecord, "totalDelayTime must equal firstHopDelayTime + secondHopDelayTime")
	}
	if !finite(f.VX, f.VY, f.VZ, f.PX, f.PY, f.PZ) {
		return errkind.New(errkind.CodeInvalidRecord, "non-finite position/velocity component")
	}
	return nil
}

// DecodeFinalTrack decodes b into a FinalTrack, rejecting inputs shorter
// than FinalTrackWireSize or that fail Validate.
func DecodeFinalTrack(b []byte) (FinalTrack, error) {
	if len(b) < finalTrackWireSize {
		return FinalTrack{}, errkind.New(errkind.CodeDecodeFailure, "short FinalTrack buffer")
	}
	f := FinalTrack{
		TrackID:             getInt32(b, 0),
		VX:                  getFloat64(b, 4),
		VY:                  getFloat64(b, 12),
		VZ:                  getFloat64(b, 20),
		PX:                  getFloat64(b, 28),
		PY:                  getFloat64(b, 36),
		PZ:                  getFloat64(b, 44),
		OriginalUpdateTime:  getInt64(b, 52),
		UpdateTime:          getInt64(b, 60),
		FirstHopSentTime:    getInt64(b, 68),
		FirstHopDelayTime:   getInt64(b, 76),
		SecondHopSentTime:   getInt64(b, 84),
		SecondHopDelayTime:  getInt64(b, 92),
		TotalDelayTime:      getInt64(b, 100),
		ThirdHopSentTime:    getInt64(b, 108),
	}
	if err := f.Validate(); err != nil {
		return FinalTrack{}, err
	}
	return f, nil
}
