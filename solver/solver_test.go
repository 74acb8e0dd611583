package solver

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/videopoker/paytable"
	"github.com/lox/videopoker/poker"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func solve(t *testing.T, s *Solver, hand string) PlayResult {
	t.Helper()
	play, err := s.Solve(poker.MustParseHand(hand), paytable.NineSix())
	require.NoError(t, err)
	return play
}

func TestSolveScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		hand    string
		hold    string
		ev      float64
		runner  HoldPattern
		runnerE float64
	}{
		{
			name:    "low pair beats three high cards",
			hand:    "7s 7h Ac Kd Qs",
			hold:    "HH---",
			ev:      0.82368177613321,
			runner:  0b00111,
			runnerE: 0.6753006475485661,
		},
		{
			name:    "four to a royal beats a made straight",
			hand:    "Ks Qs Js Ts 9h",
			hold:    "HHHH-",
			ev:      921.0 / 47.0,
			runner:  KeepAll,
			runnerE: 4,
		},
		{
			name:    "pat straight flush beats the royal draw",
			hand:    "9s Ts Js Qs Ks",
			hold:    "HHHHH",
			ev:      50,
			runner:  0b11110,
			runnerE: 875.0 / 47.0,
		},
	}

	s := New(WithLogger(quietLogger()))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			play := solve(t, s, tc.hand)

			assert.Equal(t, tc.hold, play.Optimal.Pattern.String())
			assert.InDelta(t, tc.ev, play.Optimal.ExpectedValue, 1e-9)
			require.Len(t, play.Alternatives, NumPatterns-1)
			assert.Equal(t, tc.runner, play.Alternatives[0].Pattern)
			assert.InDelta(t, tc.runnerE, play.Alternatives[0].ExpectedValue, 1e-9)
			assert.Equal(t, "9/6", play.PayTable)
		})
	}
}

func TestSolveInvariants(t *testing.T) {
	t.Parallel()
	s := New(WithCache(NewCache()))

	for _, hand := range []string{"7s 7h Ac Kd Qs", "2c 5d 9h Js Kc", "Ah 2h 3h 4h 9c"} {
		play := solve(t, s, hand)
		ranked := play.Ranked()
		require.Len(t, ranked, NumPatterns)

		seen := make(map[HoldPattern]bool)
		for _, r := range ranked {
			seen[r.Pattern] = true

			total := 0.0
			for _, p := range r.Probabilities {
				total += p
			}
			assert.InDelta(t, 1.0, total, 1e-9, "%s %s", hand, r.Pattern)
			assert.Equal(t, poker.Binomial(47, r.Pattern.Discards()), r.Draws)
			assert.LessOrEqual(t, r.ExpectedValue, play.Optimal.ExpectedValue)
		}
		assert.Len(t, seen, NumPatterns, "every pattern evaluated exactly once")

		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].ExpectedValue, ranked[i].ExpectedValue)
		}

		pat, ok := play.Find(KeepAll)
		require.True(t, ok)
		class, err := poker.Classify(play.Hand[:])
		require.NoError(t, err)
		assert.Equal(t, paytable.NineSix().Payout(class.Category), pat.ExpectedValue)
	}
}

func TestSolveTiesKeepEnumerationOrder(t *testing.T) {
	t.Parallel()
	play := solve(t, New(), "7s 7h Ac Kd Qs")

	// Holding the pair with any one of the three high cards is exactly equivalent.
	tied := play.Alternatives[:3]
	assert.Equal(t, []HoldPattern{0b00111, 0b01011, 0b10011}, []HoldPattern{tied[0].Pattern, tied[1].Pattern, tied[2].Pattern})
	assert.Equal(t, tied[0].ExpectedValue, tied[1].ExpectedValue)
	assert.Equal(t, tied[1].ExpectedValue, tied[2].ExpectedValue)
	assert.Equal(t, tied[0].Counts, tied[2].Counts)
}

func TestSolveDeterministic(t *testing.T) {
	t.Parallel()
	hand := "Jh Th 8h 4s 2c"

	serial := solve(t, New(WithWorkers(1)), hand)
	parallel := solve(t, New(WithWorkers(8), WithCache(NewCache())), hand)

	serial.Elapsed, parallel.Elapsed = 0, 0
	assert.Equal(t, serial, parallel)
}

func TestSolveUsesClock(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)

	play := solve(t, New(WithClock(clock)), "Ts Js Qs Ks As")
	assert.Equal(t, time.Duration(0), play.Elapsed)
	assert.Equal(t, "HHHHH", play.Optimal.Pattern.String())
	assert.Equal(t, 800.0, play.Optimal.ExpectedValue)
}

func TestSolveInvalidInputs(t *testing.T) {
	t.Parallel()
	hand := poker.MustParseHand("7s 7h Ac Kd Qs")

	broken := paytable.NineSix()
	broken.Payouts[poker.Flush] = -6
	_, err := Solve(hand, broken)
	assert.ErrorIs(t, err, paytable.ErrInvalidPayTable)

	dup := hand
	dup[4] = dup[0]
	_, err = Solve(dup, paytable.NineSix())
	assert.ErrorIs(t, err, poker.ErrInvalidHand)
}

func TestSolveSharedCacheConcurrently(t *testing.T) {
	t.Parallel()
	cache := NewCache()
	s := New(WithCache(cache), WithWorkers(4))
	hand := poker.MustParseHand("Ad Kd Qd 3c 3s")

	want, err := New().Solve(hand, paytable.EightFive())
	require.NoError(t, err)
	want.Elapsed = 0

	// Counts do not depend on the pay table, so a warm-up under another table fills the cache.
	_, err = s.Solve(hand, paytable.NineSix())
	require.NoError(t, err)
	assert.Zero(t, cache.Stats().Hits)

	var wg sync.WaitGroup
	results := make([]PlayResult, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			play, err := s.Solve(hand, paytable.EightFive())
			assert.NoError(t, err)
			play.Elapsed = 0
			results[i] = play
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
	assert.Equal(t, int64(4*NumPatterns), cache.Stats().Hits)
}

func TestWithNilLogger(t *testing.T) {
	t.Parallel()
	s := New(WithLogger(nil))
	play, err := s.Solve(poker.MustParseHand("9s Ts Js Qs Ks"), paytable.NineSix())
	require.NoError(t, err)
	assert.Equal(t, KeepAll, play.Optimal.Pattern)
}
