package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/config"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/devtools"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/metrics"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/sdlview"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/teaview"
)

var version = "dev"

func init() {
	// SDL must own the main thread.
	runtime.LockOSThread()
}

// CLI is the command line of the demo.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (TOML or YAML); built-in defaults when empty" type:"path"`
	View    string           `help:"Frontend to run" enum:"tea,sdl" default:"tea"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply loads .env before any configuration is read.
func (c *CLI) AfterApply() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Note: .env could not be loaded: %v\n", err)
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("stacknav-demo"),
		kong.Description("Two-screen stack navigator demo"),
		kong.Vars{"version": version},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cli)
	stop()
	stacknav.CloseLogger()
	if err != nil {
		stacknav.GetLogger().Error("stacknav-demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cli CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	if cli.Verbose {
		cfg.LogLevel = "debug"
	}

	opts := stacknav.Options{Config: cfg}

	if cfg.Metrics.Addr != "" {
		reg := prom.NewRegistry()
		opts.Recorder = metrics.NewPrometheusRecorder(reg)
		srv := serveMetrics(cfg.Metrics.Addr, reg)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.Devtools.NATSURL != "" {
		sink, err := devtools.NewNATSSink(cfg.Devtools.NATSURL, cfg.Devtools.Subject)
		if err != nil {
			return stacknav.NewInfrastructureError("devtools_connect", err)
		}
		opts.Sink = sink
	}

	app, err := stacknav.New(opts)
	if err != nil {
		if sink, ok := opts.Sink.(*devtools.NATSSink); ok {
			_ = sink.Close()
		}
		return err
	}
	defer func() { _ = app.Close() }()

	logger := stacknav.GetLogger()
	logger.Info("Starting stacknav-demo", "version", version, "view", cli.View, "config", cli.Config)

	switch cli.View {
	case "sdl":
		mode, err := sdlview.WindowMode(cfg.Window.Mode)
		if err != nil {
			return err
		}
		theme := sdlview.DefaultTheme()
		if cfg.Window.FontPath != "" {
			theme.FontPath = cfg.Window.FontPath
		}
		view := sdlview.New(app, sdlview.Options{
			Title:          cfg.Window.Title,
			Width:          cfg.Window.Width,
			Height:         cfg.Window.Height,
			Window:         mode,
			Theme:          theme,
			BackDevicePath: cfg.Input.BackDevice,
		})
		if err := app.Start(view); err != nil {
			return err
		}
		return view.Run(ctx)
	default:
		view := teaview.New(app)
		if err := app.Start(view); err != nil {
			return err
		}
		return view.Run(ctx)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg, cfg.Validate()
	}
	return config.Load(path)
}

func serveMetrics(addr string, reg *prom.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			stacknav.GetLogger().Error("Metrics server stopped", "addr", addr, "error", err)
		}
	}()
	return srv
}
