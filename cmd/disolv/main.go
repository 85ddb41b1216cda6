// Command disolv runs a discrete-time agent-based simulation from a
// single configuration document — spec.md §6's "-c <config-file>" CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/config"
	"github.com/nagacharan-tangirala/disolv/ui"
)

var (
	build     string
	buildtime string
)

func main() {
	var (
		configPath string
		showVer    bool
	)
	flag.StringVar(&configPath, "c", "", "path to the run configuration file")
	flag.BoolVar(&showVer, "version", false, "print version and exit")
	nlog.InitFlags(flag.CommandLine)
	flag.Parse()

	if showVer {
		printVer()
		return
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "disolv: -c <config-file> is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "disolv: load config:", err)
		os.Exit(1)
	}
	cfg.ApplyLogging()
	defer nlog.Flush(true)

	sim, err := config.Build(cfg)
	if err != nil {
		nlog.Errorln("disolv: build simulation:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sim); err != nil && err != context.Canceled {
		nlog.Errorln("disolv:", err)
		os.Exit(1)
	}
}

// run coordinates the simulation and UI goroutines with errgroup: the
// first non-nil error (or a user quit from the TUI, which cancels
// uiCtx and so gctx) stops both — spec.md §5/SPEC_FULL.md §5's two
// independent termination paths.
func run(ctx context.Context, cfg *config.Config, sim *config.Simulation) error {
	ticks := make(chan config.Tick, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ticks)
		return sim.Run(gctx, ticks)
	})
	g.Go(func() error {
		uiCtx, cancel := context.WithCancel(gctx)
		defer cancel()
		return ui.Run(uiCtx, cfg.SimSettings.Scenario, ticks, cancel)
	})

	return g.Wait()
}

func printVer() {
	fmt.Printf("disolv version %s (build %s)\n", build, buildtime)
}
