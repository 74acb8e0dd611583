// Package display renders solver output for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
	"github.com/lox/videopoker/solver"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	heldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	discardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	evStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// Options controls how much of a result is shown.
type Options struct {
	// Top limits the ranked list; 0 shows all 32 decisions.
	Top int
	// Probabilities adds a per-category breakdown of the best decisions.
	Probabilities bool
	// Symbols renders suits as glyphs rather than letters.
	Symbols bool
}

// DisableColor strips ANSI styling from all output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// FormatCard renders one card, optionally with a suit glyph.
func FormatCard(c poker.Card, symbols bool) string {
	if symbols {
		return c.Rank().String() + c.Suit().Symbol()
	}
	return c.String()
}

// FormatHold renders the hand with discarded positions shown as "--".
func FormatHold(hand poker.Hand, p solver.HoldPattern, symbols bool) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		if p.Keeps(i) {
			parts[i] = FormatCard(c, symbols)
		} else {
			parts[i] = "--"
		}
	}
	return strings.Join(parts, " ")
}

// RenderPlay writes the ranked decisions for a solved hand.
func RenderPlay(w io.Writer, play solver.PlayResult, opts Options) error {
	hand, err := poker.Classify(play.Hand[:])
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s  %s\n", headerStyle.Render("hand"), heldStyle.Render(formatHand(play.Hand, opts.Symbols)))
	fmt.Fprintf(w, "%s  %s\n", headerStyle.Render("dealt"), categoryStyle.Render(hand.String()))
	fmt.Fprintf(w, "%s  %s\n\n", headerStyle.Render("table"), play.PayTable)

	ranked := play.Ranked()
	if opts.Top > 0 && opts.Top < len(ranked) {
		ranked = ranked[:opts.Top]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("hold"),
		headerStyle.Render("draw"),
		headerStyle.Render("ev"))

	for i, r := range ranked {
		hold := FormatHold(play.Hand, r.Pattern, opts.Symbols)
		style := discardStyle
		if i == 0 {
			style = bestStyle
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n",
			i+1,
			style.Render(hold),
			r.Pattern.Discards(),
			evStyle.Render(fmt.Sprintf("%.6f", r.ExpectedValue)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.Probabilities {
		fmt.Fprintln(w)
		if err := renderProbabilities(w, play.Hand, ranked, opts.Symbols); err != nil {
			return err
		}
	}

	if play.Elapsed > 0 {
		fmt.Fprintf(w, "\nsolved in %v\n", play.Elapsed)
	}
	return nil
}

// RenderHold writes the full outcome distribution of one decision.
func RenderHold(w io.Writer, hand poker.Hand, r solver.HoldResult, opts Options) error {
	fmt.Fprintf(w, "%s  %s\n", headerStyle.Render("hold"), heldStyle.Render(FormatHold(hand, r.Pattern, opts.Symbols)))
	fmt.Fprintf(w, "%s  %s\n", headerStyle.Render("ev"), evStyle.Render(fmt.Sprintf("%.6f", r.ExpectedValue)))
	fmt.Fprintf(w, "%s  %d\n\n", headerStyle.Render("draws"), r.Draws)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("count"),
		headerStyle.Render("chance"))
	for i := poker.NumCategories - 1; i >= 0; i-- {
		c := poker.Category(i)
		fmt.Fprintf(tw, "%s\t%d\t%s\n",
			categoryStyle.Render(c.String()),
			r.Counts[c],
			percentStyle.Render(formatPercent(r.Probability(c))))
	}
	return tw.Flush()
}

func renderProbabilities(w io.Writer, hand poker.Hand, ranked []solver.HoldResult, symbols bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", categoryStyle.Render("hand"))
	for _, r := range ranked {
		fmt.Fprintf(tw, "\t%s", heldStyle.Render(FormatHold(hand, r.Pattern, symbols)))
	}
	fmt.Fprintln(tw)

	for i := poker.NumCategories - 1; i >= 0; i-- {
		c := poker.Category(i)
		fmt.Fprintf(tw, "%s", categoryStyle.Render(c.String()))
		for _, r := range ranked {
			fmt.Fprintf(tw, "\t%s", percentStyle.Render(formatPercent(r.Probability(c))))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// RenderPayTables lists pay tables with one column per table.
func RenderPayTables(w io.Writer, tables []paytable.PayTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", headerStyle.Render("hand"))
	for _, pt := range tables {
		fmt.Fprintf(tw, "\t%s", headerStyle.Render(pt.Name))
	}
	fmt.Fprintln(tw)

	for i := poker.NumCategories - 1; i >= 0; i-- {
		c := poker.Category(i)
		fmt.Fprintf(tw, "%s", categoryStyle.Render(c.String()))
		for _, pt := range tables {
			fmt.Fprintf(tw, "\t%g", pt.Payout(c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func formatHand(hand poker.Hand, symbols bool) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = FormatCard(c, symbols)
	}
	return strings.Join(parts, " ")
}

func formatPercent(p float64) string {
	switch {
	case p == 0:
		return "."
	case p < 0.0001:
		return fmt.Sprintf("%.4f%%", p*100)
	default:
		return fmt.Sprintf("%.2f%%", p*100)
	}
}
