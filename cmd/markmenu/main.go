package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mchmarny/markingmenu/pkg/config"
	"github.com/mchmarny/markingmenu/pkg/controller"
	"github.com/mchmarny/markingmenu/pkg/demo"
	"github.com/mchmarny/markingmenu/pkg/feedback"
	"github.com/mchmarny/markingmenu/pkg/logger"
	"github.com/mchmarny/markingmenu/pkg/metric"
	"github.com/mchmarny/markingmenu/pkg/replay"
	"github.com/mchmarny/markingmenu/pkg/server"
	"github.com/mchmarny/markingmenu/pkg/terminal"
	"github.com/mchmarny/markingmenu/pkg/timer"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	module = "markmenu"

	defaultLogFile = "markmenu.log"

	helpText = "right-drag or ctrl-drag to mark, pause to show the menu, esc to quit"
)

var (
	version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"

	configPath = flag.String("config", "", "Path to the YAML configuration file")
	port       = flag.Int("port", 0, "Port of the HTTP server, overrides the configuration")
	logLevel   = flag.String("log-level", "", "Log level, overrides the configuration")
	noServer   = flag.Bool("no-server", false, "Do not start the HTTP server")
	noSound    = flag.Bool("no-sound", false, "Do not click on selection")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", module, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return nil, err
		}
	}

	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}

	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// the screen belongs to the menu, so logs go to a file
	closeLog, err := logger.SetDefaultLoggerToFile(cfg.Log.File, module, version, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	counters := metric.NewGestureCounters(reg)
	tree := demo.NewTree(version, nil)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	grid := terminal.Grid{Aspect: cfg.Terminal.AspectRatio}
	canvas := terminal.NewCanvas(screen, grid)
	canvas.SetStatus(helpText)

	loop := timer.NewLoop(timer.DefaultLoopBuffer)
	defer loop.Close()

	clicker := &feedback.Clicker{}
	if !*noSound {
		clicker = feedback.NewClicker()
	}
	defer clicker.Close()

	session, err := controller.NewSession(tree.Root,
		controller.WithScheduler(loop),
		controller.WithTrailView(canvas.Trail()),
		controller.WithRadialFactory(canvas.RadialFactory()),
		controller.WithGestureOptions(cfg.GestureOptions()),
		controller.WithRecorder(counters),
		controller.WithSelectHandler(func(sel controller.Selection) {
			clicker.Selection(sel)
			canvas.SetStatus(fmt.Sprintf("%s (%s, path %s)", sel.Description, sel.Mode, formatPath(sel.Path)))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create menu session: %w", err)
	}

	input := terminal.NewInput(grid)
	session.Attach(input)
	defer session.Detach()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	if !*noServer {
		opts := append(cfg.ServerOptions(),
			server.WithRegistry(reg),
			server.WithMenu(tree),
			server.WithReplay(tree.Root, replay.Options{
				Gesture:  cfg.GestureOptions(),
				Recorder: counters,
			}),
			server.WithMetrics(),
			server.WithSimpleHealth(),
		)
		srv := server.New(opts...)

		g.Go(func() error {
			return srv.Serve(gCtx)
		})
	}

	g.Go(func() error {
		// leaving the terminal stops the server too
		defer stop()
		return eventLoop(gCtx, screen, canvas, input, loop)
	})

	slog.Info("marking menu started", "port", cfg.Server.Port, "server", !*noServer, "sound", clicker.Enabled())

	return g.Wait()
}

// eventLoop runs input events and fired timers on one goroutine, which is
// the only goroutine that touches the menu session.
func eventLoop(ctx context.Context, screen tcell.Screen, canvas *terminal.Canvas, input *terminal.Input, loop *timer.Loop) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	canvas.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventKey:
				if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC {
					slog.Info("quit requested")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			default:
				input.Handle(ev)
			}

		case task := <-loop.Tasks():
			task()
		}

		canvas.Draw()
	}
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "/")
}
