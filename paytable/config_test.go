package paytable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/videopoker/poker"
)

const sampleConfig = `
paytable "short-royal" {
  base        = "9/6"
  royal_flush = 500
}

paytable "bonus" {
  royal_flush     = 800
  straight_flush  = 50
  four_of_a_kind  = 80
  full_house      = 8
  flush           = 5
  straight        = 4
  three_of_a_kind = 3
  two_pair        = 2
  jacks_or_better = 1
  high_card       = 0
}

paytable "stingy" {
  base      = "bonus"
  two_pair  = 1
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	tables, err := Parse([]byte(sampleConfig), "sample.hcl")
	require.NoError(t, err)
	require.Len(t, tables, 3)

	short := tables[0]
	assert.Equal(t, "short-royal", short.Name)
	assert.Equal(t, 500.0, short.Payout(poker.RoyalFlush))
	assert.Equal(t, 9.0, short.Payout(poker.FullHouse))

	bonus := tables[1]
	assert.Equal(t, 80.0, bonus.Payout(poker.FourOfAKind))
	require.NoError(t, bonus.Validate())

	stingy := tables[2]
	assert.Equal(t, 1.0, stingy.Payout(poker.TwoPair))
	assert.Equal(t, 80.0, stingy.Payout(poker.FourOfAKind), "inherits from a table declared earlier")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "missing entries without base",
			src:     `paytable "partial" { royal_flush = 800 }`,
			wantErr: ErrInvalidPayTable,
		},
		{
			name:    "negative payout",
			src: `paytable "neg" {
  base  = "9/6"
  flush = -1
}`,
			wantErr: ErrInvalidPayTable,
		},
		{
			name:    "unknown base",
			src:     `paytable "orphan" { base = "10/7" }`,
			wantErr: ErrUnknownPayTable,
		},
		{name: "syntax error", src: `paytable "x" {`},
		{name: "unknown attribute", src: `paytable "x" {
  base   = "9/6"
  jokers = 2
}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.src), "bad.hcl")
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tables.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	r := NewRegistry()
	require.NoError(t, r.LoadFile(path))

	pt, err := r.Lookup("short-royal")
	require.NoError(t, err)
	assert.Equal(t, 500.0, pt.Payout(poker.RoyalFlush))
	assert.Len(t, r.All(), 7)

	assert.Error(t, r.LoadFile(filepath.Join(t.TempDir(), "missing.hcl")))
}
