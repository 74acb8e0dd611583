package main

import (
	"fmt"
	"io"

	"github.com/lox/videopoker/internal/display"
	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
	"github.com/lox/videopoker/solver"
)

// DisplayFlags control how results are printed.
type DisplayFlags struct {
	Paytable      string `short:"p" default:"9/6" help:"Pay table name"`
	Top           int    `short:"n" default:"0" help:"Show only the N best decisions (0 = all)"`
	Probabilities bool   `short:"P" help:"Show per-category probabilities of the best decisions"`
	Symbols       bool   `help:"Render suits as glyphs"`
}

func (f DisplayFlags) options() display.Options {
	return display.Options{Top: f.Top, Probabilities: f.Probabilities, Symbols: f.Symbols}
}

// SolveCmd ranks the decisions for a given hand.
type SolveCmd struct {
	DisplayFlags

	Hand string `arg:"" help:"Five cards, e.g. '7s 7h Ac Kd Qs' or 7s7hAcKdQs"`
	Hold string `help:"Evaluate a single decision: a pattern like HH--- or the cards to keep"`
}

func (c *SolveCmd) Run(g *Globals) error {
	logger, tables, err := g.setup()
	if err != nil {
		return err
	}

	hand, err := poker.ParseHand(c.Hand)
	if err != nil {
		return err
	}
	table, err := tables.Lookup(c.Paytable)
	if err != nil {
		return err
	}

	s := g.solver(logger)
	if c.Hold != "" {
		return evaluateHold(g.out(), s, hand, c.Hold, table, c.options())
	}

	play, err := s.Solve(hand, table)
	if err != nil {
		return err
	}
	return display.RenderPlay(g.out(), play, c.options())
}

func evaluateHold(w io.Writer, s *solver.Solver, hand poker.Hand, hold string, table paytable.PayTable, opts display.Options) error {
	pattern, err := solver.ParseHoldPattern(hold, hand)
	if err != nil {
		return err
	}
	r, err := s.Evaluator().Evaluate(hand, pattern, table)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (%s)\n", hand, table.Name); err != nil {
		return err
	}
	return display.RenderHold(w, hand, r, opts)
}
