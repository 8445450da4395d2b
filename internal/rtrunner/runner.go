// Package rtrunner pins a pipeline role's worker loop to a single OS thread
// and, best-effort, to a real-time scheduling class and CPU, so jitter-
// sensitive receive/extrapolate/send loops are not preempted or migrated
// by the Go scheduler like an ordinary goroutine.
package rtrunner

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sys/unix"

	"github.com/behrlich/trackrelay/internal/logging"
)

// Config describes how a Runner should pin and schedule its worker thread.
type Config struct {
	// Name identifies the runner in log lines.
	Name string
	// CPU is the CPU index to pin to via SchedSetaffinity. -1 disables affinity.
	CPU int
	// Priority is the SCHED_FIFO priority to request. 0 disables real-time
	// scheduling and leaves the thread on the default scheduler.
	Priority int
	// Body is run on the pinned OS thread. It must return promptly after
	// stop is closed.
	Body func(stop <-chan struct{})
	// JoinTimeout bounds how long Stop waits for Body to return before
	// giving up and logging a warning. Defaults to 2s.
	JoinTimeout time.Duration
}

// Runner pins Config.Body to a locked OS thread, applying best-effort CPU
// affinity and real-time scheduling, and supervises its lifecycle.
type Runner struct {
	cfg    Config
	stop   chan struct{}
	done   chan struct{}
	logger *logging.Logger
}

// New constructs a Runner from cfg. It does not start the worker thread.
func New(cfg Config) *Runner {
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = 2 * time.Second
	}
	return &Runner{
		cfg:    cfg,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: logging.Default().Named(cfg.Name),
	}
}

// Start launches the worker thread. It returns once the thread has
// reported it is pinned and scheduled (not once Body has finished any work).
func (r *Runner) Start() {
	ready := make(chan struct{})
	go r.threadMain(ready)
	<-ready
}

// threadMain locks the calling goroutine to its OS thread for the lifetime
// of Body, then applies best-effort affinity/scheduling before running it.
func (r *Runner) threadMain(ready chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.done)

	if r.cfg.CPU >= 0 {
		var mask unix.CPUSet
		mask.Set(r.cfg.CPU)
		if err := unix.SchedSetaffinity(0, &mask); err != nil {
			r.logger.Debug("set CPU affinity failed", "cpu", r.cfg.CPU, "err", err)
		} else {
			r.logger.Debug("set CPU affinity", "cpu", r.cfg.CPU)
		}
	}

	if r.cfg.Priority > 0 {
		attr := &unix.SchedParam{Priority: int32(r.cfg.Priority)}
		if err := unix.SchedSetscheduler(0, unix.SCHED_FIFO, attr); err != nil {
			r.logger.Debug("set SCHED_FIFO failed", "priority", r.cfg.Priority, "err", err)
		} else {
			r.logger.Debug("set SCHED_FIFO", "priority", r.cfg.Priority)
		}
	}

	close(ready)
	r.cfg.Body(r.stop)
}

// Stop signals Body to return and waits up to JoinTimeout for it to do so.
// A warning is logged, not an error returned, if Body outlives the timeout;
// the thread is then abandoned to avoid blocking shutdown indefinitely.
func (r *Runner) Stop() error {
	close(r.stop)
	select {
	case <-r.done:
		return nil
	case <-time.After(r.cfg.JoinTimeout):
		r.logger.Warn("worker thread did not stop within timeout", "timeout", r.cfg.JoinTimeout)
		return fmt.Errorf("rtrunner: %s did not stop within %s", r.cfg.Name, r.cfg.JoinTimeout)
	}
}

// Join blocks until the worker thread has returned, with no timeout.
func (r *Runner) Join() {
	<-r.done
}
