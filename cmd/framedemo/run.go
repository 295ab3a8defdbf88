package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	framescheduler "github.com/Swind/go-frame-scheduler"
	"github.com/Swind/go-frame-scheduler/core"
	"github.com/Swind/go-frame-scheduler/host/eventloophost"
	obs "github.com/Swind/go-frame-scheduler/observability/prometheus"
	obszerolog "github.com/Swind/go-frame-scheduler/observability/zerolog"
)

const (
	hostMainThread = "main-thread"
	hostEventLoop  = "eventloop"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the workload until every frame has been produced",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   hostMainThread,
				Usage:   "Host driving the scheduler (main-thread, eventloop)",
				EnvVars: []string{"FRAMEDEMO_HOST"},
			},
			&cli.IntFlag{
				Name:    "fps",
				Value:   60,
				Usage:   "Frames per second",
				EnvVars: []string{"FRAMEDEMO_FPS"},
			},
			&cli.IntFlag{
				Name:    "widgets",
				Aliases: []string{"w"},
				Value:   64,
				Usage:   "Number of widgets measured and resized every frame",
				EnvVars: []string{"FRAMEDEMO_WIDGETS"},
			},
			&cli.IntFlag{
				Name:    "frames",
				Aliases: []string{"n"},
				Value:   120,
				Usage:   "Number of animated frames",
				EnvVars: []string{"FRAMEDEMO_FRAMES"},
			},
			&cli.BoolFlag{
				Name:    "strict",
				Usage:   "Panic on usage errors instead of logging them",
				EnvVars: []string{"FRAMEDEMO_STRICT"},
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Value:   ":2112",
				Usage:   "Serve /metrics on this address (empty disables)",
				EnvVars: []string{"FRAMEDEMO_METRICS_ADDR"},
			},
			&cli.DurationFlag{
				Name:    "linger",
				Usage:   "Keep serving metrics this long after the workload finished",
				EnvVars: []string{"FRAMEDEMO_LINGER"},
			},
		},

		Action: RunAction,
	}
}

func RunAction(c *cli.Context) error {
	// 1. Get flags
	hostKind := c.String("host")
	fps := c.Int("fps")
	widgets := c.Int("widgets")
	frames := c.Int("frames")

	// 2. Validate (format only)
	if hostKind != hostMainThread && hostKind != hostEventLoop {
		return cli.Exit(fmt.Sprintf("unknown host %q", hostKind), 1)
	}
	if fps <= 0 || widgets <= 0 || frames <= 0 {
		return cli.Exit("fps, widgets and frames must be positive", 1)
	}

	level, err := zerolog.ParseLevel(c.String("log-level"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid log level: %v", err), 1)
	}
	logger := obszerolog.New(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Str("host", hostKind).Logger())

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	// 3. Wire metrics
	reg := prom.NewRegistry()
	exporter, err := obs.NewMetricsExporter("", reg, obs.ExporterOptions{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}
	poller, err := obs.NewSnapshotPoller(reg, 250*time.Millisecond)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}

	if addr := c.String("metrics-addr"); addr != "" {
		shutdown := serveMetrics(addr, reg, logger)
		defer shutdown()
	}

	// 4. Run the workload
	w := newWorkload(widgets, frames)
	opts := demoOptions{
		fps:     fps,
		strict:  c.Bool("strict"),
		logger:  logger,
		metrics: exporter,
		poller:  poller,
	}

	var summary workloadSummary
	switch hostKind {
	case hostEventLoop:
		summary, err = runOnEventLoop(ctx, w, opts)
	default:
		summary, err = runOnMainThread(ctx, w, opts)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed: %v", err), 1)
	}

	// 5. Format output
	fmt.Printf("✓ %d frames: %d reads, %d writes, %d component updates\n",
		summary.Frames, summary.Reads, summary.Writes, summary.Updates)

	if linger := c.Duration("linger"); linger > 0 {
		select {
		case <-time.After(linger):
		case <-ctx.Done():
		}
	}
	return nil
}

type demoOptions struct {
	fps     int
	strict  bool
	logger  core.Logger
	metrics core.Metrics
	poller  *obs.SnapshotPoller
}

func runOnMainThread(ctx context.Context, w *workload, opts demoOptions) (workloadSummary, error) {
	loop := framescheduler.NewFrameLoop("framedemo", framescheduler.FrameLoopConfig{
		FrameRate:  opts.fps,
		StrictMode: opts.strict,
		Logger:     opts.logger,
		Metrics:    opts.metrics,
	})
	if err := loop.Start(ctx); err != nil {
		return workloadSummary{}, err
	}
	defer loop.Stop()

	opts.poller.AddScheduler("framedemo", loop.Scheduler())
	opts.poller.AddHost(loop.Host().Name(), loop.Host())
	opts.poller.Start(ctx)
	defer opts.poller.Stop()

	if err := loop.Run(ctx, func(ctx context.Context) {
		w.start(framescheduler.SchedulerFromContext(ctx))
	}); err != nil {
		return workloadSummary{}, err
	}

	select {
	case <-w.Done():
	case <-ctx.Done():
		return workloadSummary{}, ctx.Err()
	}

	var summary workloadSummary
	err := loop.Run(ctx, func(context.Context) {
		summary = w.summary()
	})
	return summary, err
}

func runOnEventLoop(ctx context.Context, w *workload, opts demoOptions) (workloadSummary, error) {
	loop, err := eventloop.New()
	if err != nil {
		return workloadSummary{}, fmt.Errorf("create event loop: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			opts.logger.Error("event loop exited", core.F("error", err))
		}
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	host := eventloophost.New(loop,
		eventloophost.WithFrameRate(opts.fps),
		eventloophost.WithLogger(opts.logger),
		eventloophost.WithMetrics(opts.metrics),
		eventloophost.WithName("framedemo-loop"),
	)

	config := core.DefaultFrameSchedulerConfig()
	config.Name = "framedemo"
	config.StrictMode = opts.strict
	config.Logger = opts.logger
	config.Metrics = opts.metrics
	scheduler := core.NewFrameSchedulerWithConfig(host, config)

	opts.poller.AddScheduler("framedemo", scheduler)
	opts.poller.AddHost(host.Name(), host)
	opts.poller.Start(ctx)
	defer opts.poller.Stop()

	if err := host.Post(func() { w.start(scheduler) }); err != nil {
		return workloadSummary{}, err
	}

	select {
	case <-w.Done():
	case <-ctx.Done():
		return workloadSummary{}, ctx.Err()
	}

	result := make(chan workloadSummary, 1)
	if err := host.Post(func() { result <- w.summary() }); err != nil {
		return workloadSummary{}, err
	}
	select {
	case summary := <-result:
		return summary, nil
	case <-ctx.Done():
		return workloadSummary{}, ctx.Err()
	}
}

func serveMetrics(addr string, reg *prom.Registry, logger core.Logger) (shutdown func()) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", core.F("addr", addr), core.F("error", err))
		}
	}()
	logger.Info("serving metrics", core.F("addr", addr))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

// loadEnvFile loads the dotenv file named by --env-file. A missing file is
// not an error; variables already set in the environment win.
func loadEnvFile(c *cli.Context) error {
	path := c.String("env-file")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cli.Exit(fmt.Sprintf("load %s: %v", path, err), 1)
	}
	return nil
}
