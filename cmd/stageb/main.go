// Command stageb runs pipeline stage B: it consumes stage A's extrapolated
// track stream, computes the A→B transport delay, and forwards enriched
// records to stage C.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	trackrelay "github.com/behrlich/trackrelay"
	"github.com/behrlich/trackrelay/internal/delaycalc"
	"github.com/behrlich/trackrelay/internal/logging"
	"github.com/behrlich/trackrelay/internal/stage"
	"github.com/behrlich/trackrelay/internal/stageconfig"
	"github.com/behrlich/trackrelay/internal/transport"
	"github.com/behrlich/trackrelay/internal/wire"
)

func main() {
	var dev bool
	var metricsAddr string

	root := &cobra.Command{
		Use:          "stageb",
		Short:        "Compute A→B transport delay and forward to stage C",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dev, metricsAddr)
		},
	}
	root.Flags().BoolVar(&dev, "dev", false, "use loopback development endpoints instead of production multicast")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", ":9101", "address to serve Prometheus metrics on")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(dev bool, metricsAddr string) error {
	stageconfig.LoadDotEnv()
	cfg := stageconfig.LoadStageB(dev)
	logger := logging.Default().Named("stageB")
	metrics := trackrelay.NewMetrics("stageb")

	inboundEndpoint, err := transport.ParseEndpoint(cfg.InboundEndpoint)
	if err != nil {
		logger.Critical("invalid inbound endpoint", "err", err)
		return err
	}
	outboundEndpoint, err := transport.ParseEndpoint(cfg.OutboundEndpoint)
	if err != nil {
		logger.Critical("invalid outbound endpoint", "err", err)
		return err
	}

	sender := transport.NewSender[wire.DelayTrack](transport.SenderConfig{
		Name:       "stageB.sender",
		Group:      cfg.OutboundGroup,
		Endpoint:   outboundEndpoint,
		Capacity:   cfg.OutboundQueueCapacity,
		CPU:        cfg.SenderCPU,
		Priority:   cfg.SenderPriority,
		OnOverflow: func() { metrics.ObserveOverflow("stageB.sender") },
	})

	calculator := &delaycalc.Calculator{Sinks: []delaycalc.Sink{sender}}

	receiver := transport.NewReceiver[wire.ExtrapTrack](transport.ReceiverConfig[wire.ExtrapTrack]{
		Name:     "stageB.receiver",
		Group:    cfg.InboundGroup,
		Endpoint: inboundEndpoint,
		Decode:   wire.DecodeExtrapTrack,
		CPU:      cfg.ReceiverCPU,
		Priority: cfg.ReceiverPriority,
		Sink: func(et wire.ExtrapTrack, receiveTimeUs int64) {
			metrics.ObserveDecoded("ExtrapTrack")
			if _, err := calculator.Process(et, receiveTimeUs, func() int64 { return time.Now().UnixMicro() }); err != nil {
				metrics.ObserveDropped("invalid record")
				logger.Warn("rejected invalid record", "err", err)
			}
		},
	})

	st := stage.New("stageB", receiver, nil, sender)

	httpSrv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server error", "err", err)
		}
	}()

	ok, err := st.Start()
	if !ok {
		logger.Critical("stage B failed to start", "err", err)
		return fmt.Errorf("stageB: %w", err)
	}
	logger.Info("stage B running", "inbound", cfg.InboundEndpoint, "outbound", cfg.OutboundEndpoint)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("stage B shutting down")
	st.Stop()
	_ = httpSrv.Close()
	return nil
}
