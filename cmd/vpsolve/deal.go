package main

import (
	"math/rand"
	"time"

	"github.com/lox/videopoker/internal/display"
	"github.com/lox/videopoker/poker"
)

// DealCmd deals a hand from a shuffled deck and solves it.
type DealCmd struct {
	DisplayFlags

	Seed  *int64 `help:"Deterministic RNG seed (optional)"`
	Hands int    `default:"1" help:"Number of hands to deal"`
}

func (c *DealCmd) Run(g *Globals) error {
	logger, tables, err := g.setup()
	if err != nil {
		return err
	}
	table, err := tables.Lookup(c.Paytable)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Debug("Dealing", "seed", seed, "hands", c.Hands)

	deck := poker.NewDeck(rand.New(rand.NewSource(seed)))
	s := g.solver(logger)

	for i := 0; i < c.Hands; i++ {
		if deck.CardsRemaining() < poker.HandSize {
			deck.Shuffle()
		}
		hand, err := deck.DealHand()
		if err != nil {
			return err
		}
		play, err := s.Solve(hand, table)
		if err != nil {
			return err
		}
		if err := display.RenderPlay(g.out(), play, c.options()); err != nil {
			return err
		}
	}
	return nil
}
