// Package wire implements the fixed-layout binary codec for the four
// track-data record types that flow through the pipeline: Track,
// ExtrapTrack, DelayTrack and FinalTrack. Each subsequent type is a
// superset of the previous one, appending fields only.
//
// Each type encodes its fields in declared order with explicit
// binary.LittleEndian writes into a freshly allocated, exactly-sized
// buffer rather than reflection or unsafe struct casts, so the wire
// layout is little-endian, naturally aligned, and padding-free
// regardless of host architecture.
package wire

import (
	"encoding/binary"
	"math"
)

// Record is implemented by every wire type; it lets transport and queue
// code stay generic over which stage's record they are moving.
type Record interface {
	Encode() []byte
	Validate() error
}

const (
	trackWireSize       = 60
	extrapTrackWireSize = 76
	delayTrackWireSize  = 92
	finalTrackWireSize  = 116
)

func putFloat64(buf []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
}

func getFloat64(buf []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(buf[off : off+8]))
}

func putInt64(buf []byte, off int, v int64) {
	binary.LittleEndian.PutUint64(buf[off:off+8], uint64(v))
}

func getInt64(buf []byte, off int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[off : off+8]))
}

func putInt32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
}

func getInt32(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
