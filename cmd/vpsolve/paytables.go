package main

import (
	"github.com/lox/videopoker/internal/display"
)

// PaytablesCmd lists the preset and loaded pay tables.
type PaytablesCmd struct{}

func (c *PaytablesCmd) Run(g *Globals) error {
	_, tables, err := g.setup()
	if err != nil {
		return err
	}
	return display.RenderPayTables(g.out(), tables.All())
}
