// Command stagea runs pipeline stage A: it ingests raw kinematic tracks,
// extrapolates them to the pipeline's output rate, and forwards the
// extrapolated stream to stage B.
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
	"github.com/behrlich/trackrelay/internal/extrapolate"
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
		Use:          "stagea",
		Short:        "Extrapolate raw tracks to the pipeline output rate and forward to stage B",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dev, metricsAddr)
		},
	}
	root.Flags().BoolVar(&dev, "dev", false, "use loopback development endpoints instead of production multicast")
	root.Flags().StringVar(&metricsAddr, "metrics-addr", ":9100", "address to serve Prometheus metrics on")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(dev bool, metricsAddr string) error {
	stageconfig.LoadDotEnv()
	cfg := stageconfig.LoadStageA(dev)
	logger := logging.Default().Named("stageA")
	metrics := trackrelay.NewMetrics("stagea")

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

	sender := transport.NewSender[wire.ExtrapTrack](transport.SenderConfig{
		Name:       "stageA.sender",
		Group:      cfg.OutboundGroup,
		Endpoint:   outboundEndpoint,
		Capacity:   cfg.OutboundQueueCapacity,
		CPU:        cfg.SenderCPU,
		Priority:   cfg.SenderPriority,
		OnOverflow: func() { metrics.ObserveOverflow("stageA.sender") },
	})

	extrapolator := extrapolate.NewExtrapolator(cfg.FIn, cfg.FOut)

	receiver := transport.NewReceiver[wire.Track](transport.ReceiverConfig[wire.Track]{
		Name:     "stageA.receiver",
		Group:    cfg.InboundGroup,
		Endpoint: inboundEndpoint,
		Decode:   wire.DecodeTrack,
		CPU:      cfg.ReceiverCPU,
		Priority: cfg.ReceiverPriority,
		Sink: func(t wire.Track, receiveTimeUs int64) {
			metrics.ObserveDecoded("Track")
			for _, et := range extrapolator.Process(t, time.Now) {
				sender.Send(et)
			}
		},
	})

	st := stage.New("stageA", receiver, nil, sender)

	httpSrv := &http.Server{Addr: metricsAddr, Handler: metrics.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics server error", "err", err)
		}
	}()

	ok, err := st.Start()
	if !ok {
		logger.Critical("stage A failed to start", "err", err)
		return fmt.Errorf("stageA: %w", err)
	}
	logger.Info("stage A running", "inbound", cfg.InboundEndpoint, "outbound", cfg.OutboundEndpoint)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("stage A shutting down")
	st.Stop()
	_ = httpSrv.Close()
	return nil
}
