package transport

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/behrlich/trackrelay/internal/errkind"
	"github.com/behrlich/trackrelay/internal/logging"
	"github.com/behrlich/trackrelay/internal/queue"
	"github.com/behrlich/trackrelay/internal/rtrunner"
)

// Record is the minimal capability a Sender needs: a record must be able to
// serialize itself to its wire form.
type Record interface {
	Encode() []byte
}

// popTimeout bounds how long the sender's worker loop waits for a queued
// record before re-checking its stop channel.
const popTimeout = 100 * time.Millisecond

// SenderConfig configures a Sender.
type SenderConfig struct {
	Name     string
	Group    string
	Endpoint Endpoint
	Capacity int
	CPU      int
	Priority int
	// OnOverflow, if non-nil, is called once per drop-oldest overflow burst
	// on the outbound queue, in addition to the built-in warning log — a
	// caller can use it to feed a metrics counter.
	OnOverflow func()
}

// Sender is the RADIO role: it owns an outbound queue and worker thread,
// encoding and tagging each popped record before writing it to its peer.
type Sender[T Record] struct {
	cfg    SenderConfig
	queue  *queue.Queue[T]
	runner *rtrunner.Runner
	conn   *ipv4.PacketConn
	dst    net.Addr
	logger *logging.Logger

	mu      sync.Mutex
	running atomic.Bool
}

// NewSender constructs a Sender from cfg without opening any socket.
func NewSender[T Record](cfg SenderConfig) *Sender[T] {
	logger := logging.Default().Named(cfg.Name)
	return &Sender[T]{
		cfg:    cfg,
		logger: logger,
		queue: queue.New[T](cfg.Capacity, func(T) {
			logger.Warn("outbound queue overflow, dropping oldest record", "stage", cfg.Name)
			if cfg.OnOverflow != nil {
				cfg.OnOverflow()
			}
		}),
	}
}

// Start connects the socket to the peer endpoint and launches the send
// worker. Start is idempotent.
func (s *Sender[T]) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return nil
	}

	pc, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return errkind.NewStage("transport.Sender.Start", s.cfg.Name, errkind.CodeSocketFailure, err.Error())
	}
	s.conn = ipv4.NewPacketConn(pc)
	s.dst = s.cfg.Endpoint.UDPAddr()

	s.runner = rtrunner.New(rtrunner.Config{
		Name:     s.cfg.Name,
		CPU:      s.cfg.CPU,
		Priority: s.cfg.Priority,
		Body:     s.loop,
	})
	s.runner.Start()
	s.running.Store(true)
	return nil
}

// Stop halts the send worker and closes the socket.
func (s *Sender[T]) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return nil
	}
	s.queue.Close()
	var joinErr error
	if s.runner != nil {
		joinErr = s.runner.Stop()
	}
	if s.conn != nil {
		s.conn.Close()
	}
	s.running.Store(false)
	return joinErr
}

// IsRunning reports whether the send worker is active.
func (s *Sender[T]) IsRunning() bool {
	return s.running.Load()
}

// Send queues record for transmission, dropping the oldest queued record on
// overflow. It never blocks and never waits on network I/O.
func (s *Sender[T]) Send(record T) {
	if !s.running.Load() {
		s.logger.Warn("send on non-running sender, dropping", "stage", s.cfg.Name)
		return
	}
	s.queue.Push(record)
}

// Accept implements the delaycalc Sink interface, letting a Sender
// be registered directly as a fan-out target.
func (s *Sender[T]) Accept(record T) {
	s.Send(record)
}

func (s *Sender[T]) loop(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		record, status := s.queue.Pop(popTimeout)
		switch status {
		case queue.PopStopped:
			return
		case queue.PopTimeout:
			continue
		}

		tagged, err := encodeTag(s.cfg.Group, record.Encode())
		if err != nil {
			s.logger.Error("tag encode failure", "stage", s.cfg.Name, "err", err)
			continue
		}
		if _, err := s.conn.WriteTo(tagged, nil, s.dst); err != nil {
			s.logger.Error("send failure", "stage", s.cfg.Name, "err", err)
			continue
		}
	}
}
