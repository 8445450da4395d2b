// Command stagec runs pipeline stage C: it consumes stage B's delay-
// annotated stream, computes the B→C delay and end-to-end total delay,
// maintains a moving-average and per-track analytics, and emits the final
// record.
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
	"github.com/behrlich/trackrelay/internal/finalize"
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
		Use:          "stagec",
		Short:        "Compute B→C delay and total delay budget, emit the final record",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dev, metricsAddr)
		},
	}
	root.Flags().BoolVar(&dev, "dev", false, "use loopback development endpoints instead of production multicast")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", ":9102", "address to serve Prometheus metrics on")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(dev bool, metricsAddr string) error {
	stageconfig.LoadDotEnv()
	cfg := stageconfig.LoadStageC(dev)
	logger := logging.Default().Named("stageC")
	metrics := trackrelay.NewMetrics("stagec")

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

	sender := transport.NewSender[wire.FinalTrack](transport.SenderConfig{
		Name:       "stageC.sender",
		Group:      cfg.OutboundGroup,
		Endpoint:   outboundEndpoint,
		Capacity:   cfg.OutboundQueueCapacity,
		CPU:        cfg.SenderCPU,
		Priority:   cfg.SenderPriority,
		OnOverflow: func() { metrics.ObserveOverflow("stageC.sender") },
	})

	finalizer := &finalize.Finalizer{}
	average := finalize.NewMovingAverage(0) // 0 selects the default 100-entry window
	trackStats := finalize.NewTrackStats()

	receiver := transport.NewReceiver[wire.DelayTrack](transport.ReceiverConfig[wire.DelayTrack]{
		Name:     "stageC.receiver",
		Group:    cfg.InboundGroup,
		Endpoint: inboundEndpoint,
		Decode:   wire.DecodeDelayTrack,
		CPU:      cfg.ReceiverCPU,
		Priority: cfg.ReceiverPriority,
		Sink: func(d wire.DelayTrack, receiveTimeUs int64) {
			metrics.ObserveDecoded("DelayTrack")
			final := finalizer.Process(d, func() int64 { return time.Now().UnixMicro() })
			sender.Send(final)

			average.Observe(final.FirstHopDelayTime)
			trackStats.Observe(final.TrackID, final.TotalDelayTime)
			metrics.ObserveDelay("total", float64(final.TotalDelayTime))
		},
	})

	st := stage.New("stageC", receiver, nil, sender)

	httpSrv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server error", "err", err)
		}
	}()

	ok, err := st.Start()
	if !ok {
		logger.Critical("stage C failed to start", "err", err)
		return fmt.Errorf("stageC: %w", err)
	}
	logger.Info("stage C running", "inbound", cfg.InboundEndpoint, "outbound", cfg.OutboundEndpoint)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("stage C shutting down", "avgFirstHopDelayUs", average.Average())
	st.Stop()
	_ = httpSrv.Close()
	return nil
}
