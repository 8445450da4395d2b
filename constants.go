// Package trackrelay implements the real-time three-stage track-data
// pipeline: stage A extrapolates low-rate kinematic tracks to a high output
// rate, stage B measures the A→B transport delay, and stage C measures the
// B→C delay and reports an end-to-end delay budget. Each stage runs as an
// independent process exchanging group-tagged UDP multicast datagrams.
package trackrelay

import "github.com/behrlich/trackrelay/internal/stageconfig"

// Re-exported production defaults, so callers outside internal/ can read
// the compiled-in defaults without reaching into an internal package.
const (
	DefaultFIn  = 8.0
	DefaultFOut = 100.0
)

// Role re-exports internal/stageconfig.Role for external callers composing
// a stage from cmd/.
type Role = stageconfig.Role

const (
	RoleStageA = stageconfig.RoleStageA
	RoleStageB = stageconfig.RoleStageB
	RoleStageC = stageconfig.RoleStageC
)
