package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/videopoker/internal/display"
	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/solver"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand.
type Globals struct {
	Debug        bool   `help:"Enable debug logging"`
	NoColor      bool   `help:"Disable colored output"`
	Workers      int    `default:"0" help:"Concurrent pattern evaluations (0 = number of CPUs)"`
	PaytableFile string `type:"existingfile" name:"paytable-file" help:"HCL file with additional pay tables"`

	// Out receives command output; nil means stdout.
	Out io.Writer `kong:"-"`
}

func (g *Globals) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Solve     SolveCmd         `cmd:"" help:"Rank every hold decision for a hand"`
	Deal      DealCmd          `cmd:"" help:"Deal a random hand and solve it"`
	Paytables PaytablesCmd     `cmd:"" help:"List the available pay tables"`
	Serve     ServeCmd         `cmd:"" help:"Serve solve requests over WebSocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("vpsolve"),
		kong.Description("Exact expected-value solver for Jacks or Better video poker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func (g *Globals) setup() (*log.Logger, *paytable.Registry, error) {
	if g.NoColor {
		display.DisableColor()
	}
	logger := g.logger()

	tables := paytable.NewRegistry()
	if g.PaytableFile != "" {
		if err := tables.LoadFile(g.PaytableFile); err != nil {
			return nil, nil, err
		}
		logger.Debug("Loaded pay tables", "file", g.PaytableFile)
	}
	return logger, tables, nil
}

func (g *Globals) solver(logger *log.Logger) *solver.Solver {
	opts := []solver.Option{
		solver.WithCache(solver.NewCache()),
		solver.WithLogger(logger),
	}
	if g.Workers > 0 {
		opts = append(opts, solver.WithWorkers(g.Workers))
	}
	return solver.New(opts...)
}

// signalContext returns a context cancelled on interrupt signals.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down gracefully", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
