// Package solver finds the optimal hold decision for a Jacks-or-Better hand by
// exact enumeration of every possible draw.
package solver

import (
	"cmp"
	"io"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
)

// Solver ranks the 32 hold decisions of a hand.
type Solver struct {
	evaluator *Evaluator
	cache     *Cache
	workers   int
	clock     quartz.Clock
	logger    *log.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithCache shares a memoization cache across solves.
func WithCache(c *Cache) Option {
	return func(s *Solver) { s.cache = c }
}

// WithWorkers bounds how many hold patterns are evaluated concurrently.
func WithWorkers(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithClock sets the clock used to time solves.
func WithClock(c quartz.Clock) Option {
	return func(s *Solver) { s.clock = c }
}

// WithLogger sets the logger for solve diagnostics. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l.WithPrefix("solver")
		}
	}
}

// New creates a Solver. Without WithCache it does not memoize.
func New(opts ...Option) *Solver {
	s := &Solver{
		workers: runtime.NumCPU(),
		clock:   quartz.NewReal(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.evaluator = NewEvaluator(s.cache)
	return s
}

// Evaluator returns the evaluator backing the solver.
func (s *Solver) Evaluator() *Evaluator {
	return s.evaluator
}

// Solve evaluates all 32 hold patterns and returns them ranked by expected
// value. Equal expected values keep enumeration order (ascending pattern).
func (s *Solver) Solve(hand poker.Hand, table paytable.PayTable) (PlayResult, error) {
	if err := hand.Validate(); err != nil {
		return PlayResult{}, err
	}
	pays, err := table.Vector()
	if err != nil {
		return PlayResult{}, err
	}

	start := s.clock.Now()

	results := make([]HoldResult, NumPatterns)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for p := range HoldPattern(NumPatterns) {
		g.Go(func() error {
			results[p] = s.evaluator.evaluate(hand, p, pays)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PlayResult{}, err
	}

	slices.SortStableFunc(results, compareResults)

	play := PlayResult{
		Hand:         hand,
		PayTable:     table.Name,
		Optimal:      results[0],
		Alternatives: results[1:],
		Elapsed:      s.clock.Since(start),
	}

	s.logger.Debug("Solved hand",
		"hand", hand,
		"paytable", table.Name,
		"hold", play.Optimal.Pattern,
		"ev", play.Optimal.ExpectedValue,
		"elapsed", play.Elapsed)

	return play, nil
}

// Solve ranks the hold decisions of hand with a default, uncached Solver.
func Solve(hand poker.Hand, table paytable.PayTable) (PlayResult, error) {
	return New().Solve(hand, table)
}

// compareResults orders by expected value descending, then by pattern.
func compareResults(a, b HoldResult) int {
	if c := cmp.Compare(b.ExpectedValue, a.ExpectedValue); c != 0 {
		return c
	}
	return cmp.Compare(a.Pattern, b.Pattern)
}
