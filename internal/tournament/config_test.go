package tournament

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseArgs(t *testing.T) {
	cfg, err := ParseArgs(strings.Fields("-M a.map b.map -P Aggressive cheater -G 3 -D 20"))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Maps:       []string{"a.map", "b.map"},
		Strategies: []string{"aggressive", "cheater"},
		Games:      3,
		MaxTurns:   20,
	}, cfg)

	cfg, err = ParseArgs(strings.Fields("-D 10 -G 1 -P neutral benevolent -M x.map"))
	require.NoError(t, err, "flags may come in any order")
	assert.Equal(t, 10, cfg.MaxTurns)

	cfg, err = ParseArgs(strings.Fields("-M a.map -P aggressive Aggressive -G 1 -D 10"))
	require.NoError(t, err, "a strategy may be listed more than once")
	assert.Equal(t, []string{"aggressive", "aggressive"}, cfg.Strategies)
}

func TestParseArgs_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"six games", "-M a -P aggressive cheater -G 6 -D 20", "6 games per map"},
		{"sixty turns", "-M a -P aggressive cheater -G 1 -D 60", "60 max turns"},
		{"nine turns", "-M a -P aggressive cheater -G 1 -D 9", "9 max turns"},
		{"no games", "-M a -P aggressive cheater -G 0 -D 20", "0 games"},
		{"one strategy", "-M a -P aggressive -G 1 -D 20", "1 strategies"},
		{"five strategies", "-M a -P aggressive cheater neutral benevolent human -G 1 -D 20", "5 strategies"},
		{"human", "-M a -P aggressive human -G 1 -D 20", `"human" is not allowed`},
		{"unknown strategy", "-M a -P aggressive sneaky -G 1 -D 20", `"sneaky"`},
		{"no maps", "-M -P aggressive cheater -G 1 -D 20", "0 maps"},
		{"six maps", "-M a b c d e f -P aggressive cheater -G 1 -D 20", "6 maps"},
		{"missing -D", "-M a -P aggressive cheater -G 1", "-D takes exactly one number"},
		{"two numbers", "-M a -P aggressive cheater -G 1 2 -D 20", "-G takes exactly one number"},
		{"not a number", "-M a -P aggressive cheater -G one -D 20", `"one" is not a number`},
		{"unknown flag", "-M a -X -P aggressive cheater -G 1 -D 20", "unknown flag -X"},
		{"repeated flag", "-M a -M b -P aggressive cheater -G 1 -D 20", "-M given twice"},
		{"value first", "a -M b -P aggressive cheater -G 1 -D 20", "before any flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(strings.Fields(tt.args))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseArgs_LimitsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		games := rapid.IntRange(-2, 8).Draw(t, "games")
		turns := rapid.IntRange(0, 70).Draw(t, "turns")
		args := []string{"-M", "a.map", "-P", "aggressive", "neutral", "-G", strconv.Itoa(games), "-D", strconv.Itoa(turns)}

		_, err := ParseArgs(args)
		ok := games >= MinGames && games <= MaxGames && turns >= MinTurns && turns <= MaxTurns
		if ok && err != nil {
			t.Fatalf("games=%d turns=%d rejected: %v", games, turns, err)
		}
		if !ok && err == nil {
			t.Fatalf("games=%d turns=%d accepted", games, turns)
		}
	})
}
