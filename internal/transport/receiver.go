// Package transport implements the DISH-role receiver and RADIO-role sender
// that move wire records between pipeline stages over group-tagged UDP
// multicast datagrams.
package transport

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/behrlich/trackrelay/internal/errkind"
	"github.com/behrlich/trackrelay/internal/logging"
	"github.com/behrlich/trackrelay/internal/rtrunner"
)

const readDeadline = 100 * time.Millisecond

// maxDatagramSize is generous headroom over the largest wire record
// (FinalTrack, 116 bytes) plus its group tag.
const maxDatagramSize = 2048

// Sink receives a decoded record along with the microsecond receive
// timestamp captured as soon as the datagram arrived.
type Sink[T any] func(record T, receiveTimeUs int64)

// Decoder turns a raw datagram payload (with the group tag already
// stripped) into a typed record.
type Decoder[T any] func([]byte) (T, error)

// ReceiverConfig configures a Receiver.
type ReceiverConfig[T any] struct {
	Name     string
	Group    string
	Endpoint Endpoint
	Decode   Decoder[T]
	Sink     Sink[T]
	CPU      int
	Priority int
}

// Receiver is the DISH role: it binds a group-filtered multicast socket,
// decodes matching datagrams, timestamps them, and hands them to a sink.
type Receiver[T any] struct {
	cfg    ReceiverConfig[T]
	conn   *ipv4.PacketConn
	runner *rtrunner.Runner
	logger *logging.Logger

	mu      sync.Mutex
	running atomic.Bool
}

// NewReceiver constructs a Receiver from cfg without opening any socket.
func NewReceiver[T any](cfg ReceiverConfig[T]) *Receiver[T] {
	return &Receiver[T]{
		cfg:    cfg,
		logger: logging.Default().Named(cfg.Name),
	}
}

// Start binds the socket, joins the multicast group (when the endpoint
// address is a multicast address; a unicast dev endpoint is only bound), and launches the
// receive loop on a pinned OS thread. Start is idempotent: calling it again
// while already running returns nil without restarting.
func (r *Receiver[T]) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running.Load() {
		return nil
	}

	pc, err := net.ListenPacket("udp4", (&net.UDPAddr{Port: r.cfg.Endpoint.Port}).String())
	if err != nil {
		return errkind.NewStage("transport.Receiver.Start", r.cfg.Name, errkind.CodeSocketFailure, err.Error())
	}
	conn := ipv4.NewPacketConn(pc)
	if r.cfg.Endpoint.IP.IsMulticast() {
		if err := conn.JoinGroup(nil, r.cfg.Endpoint.UDPAddr()); err != nil {
			pc.Close()
			return errkind.NewStage("transport.Receiver.Start", r.cfg.Name, errkind.CodeSocketFailure, err.Error())
		}
	}

	r.conn = conn
	r.runner = rtrunner.New(rtrunner.Config{
		Name:     r.cfg.Name,
		CPU:      r.cfg.CPU,
		Priority: r.cfg.Priority,
		Body:     r.loop,
	})
	r.runner.Start()
	r.running.Store(true)
	return nil
}

// Stop halts the receive loop and closes the socket. Stop is safe to call
// on a Receiver that was never started.
func (r *Receiver[T]) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running.Load() {
		return nil
	}
	var joinErr error
	if r.runner != nil {
		joinErr = r.runner.Stop()
	}
	if r.conn != nil {
		r.conn.Close()
	}
	r.running.Store(false)
	return joinErr
}

// IsRunning reports whether the receive loop is active.
func (r *Receiver[T]) IsRunning() bool {
	return r.running.Load()
}

func (r *Receiver[T]) loop(stop <-chan struct{}) {
	buf := make([]byte, maxDatagramSize)
	for {
		select {
		case <-stop:
			return
		default:
		}

		r.conn.SetReadDeadline(time.Now().Add(readDeadline))
		n, _, _, err := r.conn.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			r.logger.Debug("receive error", "stage", r.cfg.Name, "err", err)
			continue
		}
		receiveTimeUs := time.Now().UnixMicro()

		group, payload, err := decodeTag(buf[:n])
		if err != nil {
			r.logger.Error("decode failure", "stage", r.cfg.Name, "err", err)
			continue
		}
		if group != r.cfg.Group {
			r.logger.Debug("dropping datagram for other group", "want", r.cfg.Group, "got", group)
			continue
		}

		record, err := r.cfg.Decode(payload)
		if err != nil {
			r.logger.Error("decode failure", "stage", r.cfg.Name, "err", err)
			continue
		}

		r.invokeSink(record, receiveTimeUs)
	}
}

// invokeSink recovers from a panicking sink so a faulty consumer cannot take
// down the receive loop.
func (r *Receiver[T]) invokeSink(record T, receiveTimeUs int64) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("sink panicked", "stage", r.cfg.Name, "recover", rec)
		}
	}()
	r.cfg.Sink(record, receiveTimeUs)
}
