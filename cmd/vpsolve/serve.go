package main

import (
	"time"

	"github.com/lox/videopoker/internal/server"
)

// ServeCmd runs the WebSocket service.
type ServeCmd struct {
	Addr     string        `default:":8080" help:"Server address"`
	Paytable string        `short:"p" default:"9/6" help:"Pay table used when a request names none"`
	Timeout  time.Duration `default:"30s" help:"Maximum time a client waits for a solve"`
}

func (c *ServeCmd) Run(g *Globals) error {
	logger, tables, err := g.setup()
	if err != nil {
		return err
	}
	if _, err := tables.Lookup(c.Paytable); err != nil {
		return err
	}

	cfg := server.Config{
		DefaultPayTable: c.Paytable,
		SolveTimeout:    c.Timeout,
	}
	srv := server.NewServer(g.solver(logger), tables, logger, server.WithConfig(cfg))

	ctx, cancel := signalContext(logger)
	defer cancel()

	logger.Info("Starting video poker solver",
		"addr", c.Addr,
		"paytable", c.Paytable,
		"timeout", c.Timeout,
		"workers", g.Workers)
	return srv.ListenAndServe(ctx, c.Addr)
}
