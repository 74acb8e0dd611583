package paytable

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/videopoker/poker"
)

// fileConfig is the top level of a pay-table file:
//
//	paytable "9/6 short royal" {
//	  base        = "9/6"
//	  royal_flush = 500
//	}
type fileConfig struct {
	Tables []tableBlock `hcl:"paytable,block"`
}

// tableBlock declares one table. Entries left unset are taken from base, if
// given; a table without a base must set every entry.
type tableBlock struct {
	Name          string   `hcl:"name,label"`
	Base          *string  `hcl:"base,optional"`
	RoyalFlush    *float64 `hcl:"royal_flush,optional"`
	StraightFlush *float64 `hcl:"straight_flush,optional"`
	FourOfAKind   *float64 `hcl:"four_of_a_kind,optional"`
	FullHouse     *float64 `hcl:"full_house,optional"`
	Flush         *float64 `hcl:"flush,optional"`
	Straight      *float64 `hcl:"straight,optional"`
	ThreeOfAKind  *float64 `hcl:"three_of_a_kind,optional"`
	TwoPair       *float64 `hcl:"two_pair,optional"`
	JacksOrBetter *float64 `hcl:"jacks_or_better,optional"`
	HighCard      *float64 `hcl:"high_card,optional"`
}

func (b tableBlock) entries() map[poker.Category]*float64 {
	return map[poker.Category]*float64{
		poker.RoyalFlush:    b.RoyalFlush,
		poker.StraightFlush: b.StraightFlush,
		poker.FourOfAKind:   b.FourOfAKind,
		poker.FullHouse:     b.FullHouse,
		poker.Flush:         b.Flush,
		poker.Straight:      b.Straight,
		poker.ThreeOfAKind:  b.ThreeOfAKind,
		poker.TwoPair:       b.TwoPair,
		poker.JacksOrBetter: b.JacksOrBetter,
		poker.HighCard:      b.HighCard,
	}
}

// LoadFile loads pay tables from an HCL file.
func LoadFile(filename string) ([]PayTable, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read pay table file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes pay tables from HCL source. Every table is validated.
func Parse(src []byte, filename string) ([]PayTable, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Bases resolve against presets and tables declared earlier in the file.
	known := NewRegistry()
	tables := make([]PayTable, 0, len(config.Tables))
	for _, block := range config.Tables {
		pt, err := block.build(known)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		if err := known.Add(pt); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		tables = append(tables, pt)
	}
	return tables, nil
}

func (b tableBlock) build(known *Registry) (PayTable, error) {
	payouts := make(map[poker.Category]float64, poker.NumCategories)
	if b.Base != nil {
		base, err := known.Lookup(*b.Base)
		if err != nil {
			return PayTable{}, fmt.Errorf("paytable %q: base: %w", b.Name, err)
		}
		payouts = base.Payouts
	}

	for c, v := range b.entries() {
		if v != nil {
			payouts[c] = *v
		}
	}

	pt := PayTable{Name: b.Name, Payouts: payouts}
	if err := pt.Validate(); err != nil {
		return PayTable{}, err
	}
	return pt, nil
}
