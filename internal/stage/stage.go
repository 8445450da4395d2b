// Package stage composes a receiver, a domain worker, and one or more
// senders into a single leaves-first-start, reverse-order-stop unit: outputs
// must be ready to accept records before the inputs that feed them begin
// running, and inputs must stop before the outputs that drain them.
package stage

import (
	"sync"

	"github.com/behrlich/trackrelay/internal/logging"
)

// Startable is any component with idempotent Start/Stop lifecycle methods.
type Startable interface {
	Start() error
	Stop() error
}

// Stage composes one Receiver, one Worker, and any number of Senders.
// Receiver and Senders are Startable; Worker, if non-nil, is also Startable
// but most domain workers are synchronous (invoked directly by the
// receiver's sink callback) and so have no lifecycle of their own — Worker
// is optional for exactly that reason.
type Stage struct {
	Name     string
	Receiver Startable
	Worker   Startable
	Senders  []Startable

	mu      sync.Mutex
	running bool
	// attempted is set once Start has begun starting components, so Stop
	// still tears down a stage whose Start failed part-way.
	attempted bool
	logger    *logging.Logger
}

// New constructs a Stage. Worker may be nil when the domain worker has no
// independent lifecycle (it runs synchronously inside the receiver's sink).
func New(name string, receiver Startable, worker Startable, senders ...Startable) *Stage {
	return &Stage{
		Name:     name,
		Receiver: receiver,
		Worker:   worker,
		Senders:  senders,
		logger:   logging.Default().Named(name),
	}
}

// Start starts senders, then the worker, then the receiver, so nothing can
// arrive before there is somewhere for it to go. If any component fails to
// start, Start returns false and the already-started components are left
// running so the caller can invoke Stop for clean teardown.
func (s *Stage) Start() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return true, nil
	}
	s.attempted = true

	for _, sender := range s.Senders {
		if err := sender.Start(); err != nil {
			s.logger.Critical("sender failed to start", "stage", s.Name, "err", err)
			return false, err
		}
	}

	if s.Worker != nil {
		if err := s.Worker.Start(); err != nil {
			s.logger.Critical("worker failed to start", "stage", s.Name, "err", err)
			return false, err
		}
	}

	if err := s.Receiver.Start(); err != nil {
		s.logger.Critical("receiver failed to start", "stage", s.Name, "err", err)
		return false, err
	}

	s.running = true
	return true, nil
}

// Stop stops the receiver (halting new input), then the worker (draining
// in-flight records), then the senders (best-effort drain), the reverse of
// Start's order.
func (s *Stage) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running && !s.attempted {
		return
	}

	if err := s.Receiver.Stop(); err != nil {
		s.logger.Warn("receiver stop error", "stage", s.Name, "err", err)
	}

	if s.Worker != nil {
		if err := s.Worker.Stop(); err != nil {
			s.logger.Warn("worker stop error", "stage", s.Name, "err", err)
		}
	}

	for _, sender := range s.Senders {
		if err := sender.Stop(); err != nil {
			s.logger.Warn("sender stop error", "stage", s.Name, "err", err)
		}
	}

	s.running = false
	s.attempted = false
}

// IsRunning reports whether the stage has been started and not yet stopped.
func (s *Stage) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
