package tournament

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/warzone/internal/game"
	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/mitchelldurbincs/warzone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maps = map[string]func() *core.Map{
	"duel.map":       func() *core.Map { return testutil.CreateLineMap(2) },
	"continents.map": testutil.CreateTwoContinentMap,
	"island.map":     func() *core.Map { return testutil.CreateDisconnectedMap(3) },
}

func newTestRunner(t *testing.T, dir string) *Runner {
	t.Helper()
	cfg := RunnerConfig{
		Logger:  testutil.NopLogger(),
		Rng:     testutil.NewTestRNG(99),
		LoadMap: testutil.MapLoader(maps),
	}
	if dir != "" {
		cfg.LogFile = filepath.Join(dir, "tournament.log")
		cfg.ReportFile = filepath.Join(dir, "tournament.yaml")
	}
	return NewRunner(cfg)
}

func TestRunner_Run(t *testing.T) {
	r := newTestRunner(t, "")
	report, err := r.Run(context.Background(), Config{
		Maps:       []string{"duel.map", "continents.map"},
		Strategies: []string{"aggressive", "benevolent"},
		Games:      2,
		MaxTurns:   10,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 4)
	assert.NotEmpty(t, report.RunID)
	for _, res := range report.Results[:2] {
		assert.Equal(t, "duel.map", res.Map)
		assert.Equal(t, "aggressive", res.Winner)
		assert.Equal(t, 1, res.Turns)
	}
	assert.Equal(t, 1, report.Results[0].Game)
	assert.Equal(t, 2, report.Results[1].Game)
	assert.NotEqual(t, report.Results[0].GameID, report.Results[1].GameID, "every game runs in its own engine")
	assert.Equal(t, "continents.map", report.Results[2].Map)
}

func TestRunner_DrawOnTurnLimit(t *testing.T) {
	r := newTestRunner(t, "")
	report, err := r.Run(context.Background(), Config{
		Maps:       []string{"continents.map"},
		Strategies: []string{"benevolent", "neutral"},
		Games:      1,
		MaxTurns:   10,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, DrawResult, report.Results[0].Winner)
	assert.Equal(t, 10, report.Results[0].Turns)
	assert.Equal(t, map[string]int{DrawResult: 1}, report.Wins())
}

func TestRunner_RepeatedStrategies(t *testing.T) {
	r := newTestRunner(t, "")
	report, err := r.Run(context.Background(), Config{
		Maps:       []string{"continents.map"},
		Strategies: []string{"benevolent", "benevolent", "neutral"},
		Games:      1,
		MaxTurns:   10,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, DrawResult, report.Results[0].Winner)
}

func TestPlayerNames(t *testing.T) {
	assert.Equal(t,
		[]string{"aggressive", "cheater", "aggressive-2", "aggressive-3"},
		PlayerNames([]string{"aggressive", "cheater", "aggressive", "aggressive"}))
	assert.Equal(t, []string{"neutral", "benevolent"}, PlayerNames([]string{"neutral", "benevolent"}))
}

func TestRunner_RejectsBadMapsBeforePlaying(t *testing.T) {
	bus := events.NewEventBus()
	played := 0
	bus.SubscribeFunc(events.TypeTournamentGameFinished, func(events.Event) { played++ })

	r := NewRunner(RunnerConfig{Logger: testutil.NopLogger(), LoadMap: testutil.MapLoader(maps), EventBus: bus})
	_, err := r.Run(context.Background(), Config{
		Maps:       []string{"duel.map", "island.map"},
		Strategies: []string{"aggressive", "benevolent"},
		Games:      1,
		MaxTurns:   10,
	})
	assert.ErrorIs(t, err, core.ErrMapInvalid)

	_, err = r.Run(context.Background(), Config{
		Maps:       []string{"nowhere.map"},
		Strategies: []string{"aggressive", "benevolent"},
		Games:      1,
		MaxTurns:   10,
	})
	assert.Error(t, err)
	assert.Zero(t, played)
}

func TestRunner_RunTournamentWritesFiles(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(t, dir)

	summary, err := r.RunTournament(context.Background(),
		strings.Fields("-M duel.map -P aggressive benevolent -G 3 -D 10"))
	require.NoError(t, err)
	assert.Contains(t, summary, "duel.map\taggressive\taggressive\taggressive")
	assert.Contains(t, summary, "totals: aggressive=3")

	log, err := os.ReadFile(filepath.Join(dir, "tournament.log"))
	require.NoError(t, err)
	assert.Equal(t, "duel.map\t1\taggressive\nduel.map\t2\taggressive\nduel.map\t3\taggressive\n", string(log))

	f, err := os.Open(filepath.Join(dir, "tournament.yaml"))
	require.NoError(t, err)
	defer f.Close()
	report, err := ReadReport(f)
	require.NoError(t, err)
	assert.Len(t, report.Results, 3)
	assert.Equal(t, 3, report.Config.Games)
	assert.Equal(t, []string{"aggressive", "benevolent"}, report.Config.Strategies)
}

func TestRunner_InvalidArgumentsWriteNothing(t *testing.T) {
	dir := t.TempDir()
	r := newTestRunner(t, dir)

	_, err := r.RunTournament(context.Background(),
		strings.Fields("-M duel.map -P aggressive benevolent -G 6 -D 10"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, statErr := os.Stat(filepath.Join(dir, "tournament.log"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_DrivesEngineTournamentState(t *testing.T) {
	e, err := game.NewEngine(context.Background(), game.GameConfig{
		Logger:     testutil.NopLogger(),
		Rules:      game.DefaultRules(),
		LoadMap:    testutil.MapLoader(maps),
		Tournament: newTestRunner(t, ""),
	})
	require.NoError(t, err)

	_, err = e.Handle(context.Background(), states.ActionTournament,
		strings.Fields("-M duel.map -P aggressive benevolent -G 1 -D 60"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, states.PhaseStart, e.CurrentPhase())
	assert.Empty(t, e.History())

	_, err = e.Handle(context.Background(), states.ActionTournament,
		strings.Fields("-M duel.map -P aggressive benevolent -G 1 -D 10"))
	require.NoError(t, err)
	assert.Equal(t, states.PhaseTournamentSetup, e.CurrentPhase())
}

func TestWriteLogAndReport(t *testing.T) {
	report := &Report{
		RunID:   "run-1",
		Config:  Config{Maps: []string{"m"}, Strategies: []string{"a", "b"}, Games: 2, MaxTurns: 10},
		Results: []Result{{Map: "m", Game: 1, Winner: "a"}, {Map: "m", Game: 2, Winner: DrawResult}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, report))
	assert.Equal(t, "m\t1\ta\nm\t2\tdraw\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteReport(&buf, report))
	assert.Contains(t, buf.String(), "run_id: run-1")
	assert.Contains(t, buf.String(), "wins:")

	back, err := ReadReport(&buf)
	require.NoError(t, err)
	assert.Equal(t, report.Results, back.Results)
}
