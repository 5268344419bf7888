package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gallery-builder/internal/build"
	"gallery-builder/internal/config"
	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/metrics"
	"gallery-builder/internal/preview"
	"gallery-builder/internal/startup"
	"gallery-builder/internal/watch"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config      string `short:"c" help:"Configuration file (JSON or YAML)" default:"config.json"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	MetricsFile string `help:"Write build metrics in Prometheus text format to this file"`
}

// CLI is the command line grammar.
type CLI struct {
	Globals

	Build   BuildCmd   `cmd:"" default:"1" help:"Build the gallery (default)"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild whenever the input, config or theme changes"`
	Preview PreviewCmd `cmd:"" help:"Serve the output directory for local viewing"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// BuildCmd runs a single build.
type BuildCmd struct {
	Clean bool `help:"Remove the output directory before building"`
}

// Run implements the build command.
func (c *BuildCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err := runBuild(ctx, g, c.Clean)
	return err
}

// WatchCmd rebuilds on change until interrupted.
type WatchCmd struct {
	Clean bool   `help:"Remove the output directory before the first build"`
	Serve bool   `help:"Also serve the output directory"`
	Addr  string `help:"Preview listen address (overrides PREVIEW_ADDR)"`
}

// Run implements the watch command.
func (c *WatchCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := runBuild(ctx, g, c.Clean); err != nil {
		return err
	}

	// Directories to watch come from the settings at start-up.
	s, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	w := watch.New(s, func(ctx context.Context) error {
		_, err := runBuild(ctx, g, false)
		return err
	})

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return w.Run(ctx)
	})
	if c.Serve {
		cfg := previewConfig(c.Addr)
		eg.Go(func() error {
			return preview.Serve(ctx, s.Output, cfg)
		})
	}
	return eg.Wait()
}

// PreviewCmd serves the generated site.
type PreviewCmd struct {
	Addr    string `help:"Listen address (overrides PREVIEW_ADDR)"`
	NoBuild bool   `help:"Serve the existing output without building first"`
}

// Run implements the preview command.
func (c *PreviewCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !c.NoBuild {
		if _, err := runBuild(ctx, g, false); err != nil {
			return err
		}
	}
	s, err := config.Load(g.Config)
	if err != nil {
		return err
	}
	return preview.Serve(ctx, s.Output, previewConfig(c.Addr))
}

// VersionCmd prints build information.
type VersionCmd struct{}

// Run implements the version command.
func (c *VersionCmd) Run() error {
	info := startup.GetBuildInfo()
	fmt.Printf("gallery %s (commit %s, built %s, %s, %s/%s)\n",
		info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("gallery"),
		kong.Description("Generate a static photo and video gallery from a directory of albums."),
		kong.UsageOnError(),
	)

	if kctx.Command() != "version" {
		setup(cli.Verbose)
	}

	if err := kctx.Run(&cli.Globals); err != nil {
		startup.LogFatal("%v", err)
	}
}

// setup wires the process-wide collaborators before any command runs.
func setup(verbose bool) {
	if err := config.LoadEnv(); err != nil {
		logging.Warn("Failed to load .env: %v", err)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logging.SetLevel(logging.ParseLevel(level))
	}
	if verbose {
		logging.SetLevel(logging.LevelDebug)
	}
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()

	info := startup.GetBuildInfo()
	metrics.AppInfo.WithLabelValues(info.Version, info.Commit, info.GoVersion).Set(1)

	startup.Banner()
}

func runBuild(ctx context.Context, g *Globals, clean bool) (build.Stats, error) {
	s, err := config.Load(g.Config)
	if err != nil {
		return build.Stats{}, err
	}
	startup.LogConfiguration(s)

	b := build.New(s)
	b.Clean = clean
	stats, err := b.Run(ctx)
	if err != nil {
		return stats, err
	}
	startup.LogBuildSummary(stats.Summary())

	if g.MetricsFile != "" {
		if err := metrics.WriteTextfile(g.MetricsFile); err != nil {
			logging.Warn("%v", err)
		}
	}
	return stats, nil
}

func previewConfig(addr string) startup.PreviewConfig {
	cfg := startup.LoadPreviewConfig()
	if addr != "" {
		cfg.Addr = addr
	}
	return cfg
}
