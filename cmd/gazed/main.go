// gazed is the gaze tracking daemon: it ingests eye landmarks from an
// external detector, runs the calibration and filtering pipeline, and
// serves gaze and attention data over HTTP/websocket.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/irisline/gazekit/internal/config"
	"github.com/irisline/gazekit/internal/log"
	"github.com/irisline/gazekit/pkg/attention"
	"github.com/irisline/gazekit/pkg/gaze"
	"github.com/irisline/gazekit/pkg/provider"
	"github.com/irisline/gazekit/pkg/web"
)

const (
	// advanceInterval drives calibration dwell/transit timing at
	// display refresh rate.
	advanceInterval = 16 * time.Millisecond

	// statsInterval is the attention broadcast cadence. Aggregation
	// is deliberately decoupled from the per-frame rate.
	statsInterval = 2 * time.Second
)

func main() {
	log.Init(config.LogLevel())

	cfg := gaze.DefaultConfig()
	cfg.FrameWidth = config.FrameWidth()
	cfg.FrameHeight = config.FrameHeight()

	tracker := gaze.New(cfg)
	server := web.NewServer(config.ListenAddr(), tracker,
		cfg.FrameWidth, cfg.FrameHeight)
	tracker.SetDisplaySink(server)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutting down")
		cancel()
		server.Shutdown()
	}()

	// Optional outbound landmark provider. Without it, frames are
	// expected on the inbound /ws/landmarks endpoint.
	if url := config.ProviderURL(); url != "" {
		client := provider.NewClient(url, tracker.IngestFrame)
		if err := client.Connect(); err != nil {
			log.Error("cannot start session", "err", err)
			os.Exit(1)
		}
		go runProvider(ctx, client)
		go func() {
			<-ctx.Done()
			client.Close()
		}()
	}

	go runTickers(ctx, tracker, server, cfg)

	if err := server.Start(); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// runProvider keeps the landmark stream alive, redialing with backoff
// when it drops mid-run. Only the initial connect (in main) is fatal.
func runProvider(ctx context.Context, client *provider.Client) {
	backoff := time.Second
	for {
		err := client.Run()
		if ctx.Err() != nil {
			return
		}
		log.Warn("landmark provider stream ended, reconnecting",
			"err", err, "backoff", backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
		if err := client.Connect(); err != nil {
			continue
		}
		backoff = time.Second
	}
}

// runTickers drives calibration timing and the periodic attention
// broadcast.
func runTickers(ctx context.Context, tracker *gaze.Tracker, server *web.Server, cfg gaze.Config) {
	advance := time.NewTicker(advanceInterval)
	stats := time.NewTicker(statsInterval)
	defer advance.Stop()
	defer stats.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-advance.C:
			tracker.Advance(now)

		case <-stats.C:
			points := tracker.Points()
			if len(points) == 0 {
				continue
			}
			window := attention.Window{End: 1e18}
			regions := attention.Regions(points, window, 4,
				cfg.FrameWidth, cfg.FrameHeight)
			server.Hub().Publish("attention", map[string]any{
				"regions":   regions,
				"quadrants": attention.Quadrants(regions),
			})
		}
	}
}
