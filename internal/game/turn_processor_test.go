package game

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/events"
	"github.com/mitchelldurbincs/warzone/internal/game/states"
	"github.com/mitchelldurbincs/warzone/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns the same attack intents every turn and turns bombs into
// orders.
type scripted struct {
	attack []core.Intent
	issued []core.Intent
}

func (s *scripted) Kind() core.StrategyKind                          { return core.StrategyBenevolent }
func (s *scripted) ToDefend(*core.World, *core.Player) []core.Intent { return nil }
func (s *scripted) ToAttack(*core.World, *core.Player) []core.Intent { return s.attack }

func (s *scripted) IssueOrder(w *core.World, p *core.Player, in core.Intent, sink core.LogSink) (core.Order, error) {
	s.issued = append(s.issued, in)
	o := core.NewBomb(p, in.Target)
	p.Orders().Add(o)
	return o, nil
}

// startedEngine deals starting positions without running the turn loop.
func startedEngine(t *testing.T, mapName string, players ...string) *Engine {
	t.Helper()
	e := newTestEngine(t, nil)
	lobby(t, e, mapName, players...)
	_, err := e.stateMachine.Apply(states.ActionGameStart, "test start")
	require.NoError(t, err)
	e.setupStartingPositions()
	return e
}

func player(t *testing.T, e *Engine, name string) *core.Player {
	t.Helper()
	p, ok := e.World().PlayerByName(name)
	require.True(t, ok, name)
	return p
}

func territoryByID(t *testing.T, e *Engine, id int) *core.Territory {
	t.Helper()
	ter, ok := e.Map().TerritoryByID(id)
	require.True(t, ok)
	return ter
}

func countCards(p *core.Player, kind core.CardType) int {
	n := 0
	for _, c := range p.Hand().Cards() {
		if c.Type() == kind {
			n++
		}
	}
	return n
}

func drawUntil(t *testing.T, w *core.World, p *core.Player, kind core.CardType) {
	t.Helper()
	for p.HasCard(kind) < 0 {
		_, err := w.Deck.Draw(p.Hand())
		require.NoError(t, err, "deck ran out before a %s card turned up", kind)
	}
}

func discardAll(p *core.Player, kind core.CardType) {
	for p.HasCard(kind) >= 0 {
		_, _ = p.Hand().Play(kind)
	}
}

func TestSetupStartingPositions(t *testing.T) {
	e := startedEngine(t, "continents", "a", "benevolent", "b", "benevolent")
	w := e.World()

	players := w.Players()
	for i, ter := range e.Map().Territories() {
		assert.Equal(t, players[i%2].ID, ter.Owner, ter.Name)
		assert.Equal(t, 1, ter.Armies())
	}
	for _, p := range players {
		assert.Equal(t, 3, p.TerritoryCount())
		assert.Equal(t, 50, p.Pool())
		assert.Equal(t, 2, p.Hand().Size())
	}
	assert.Equal(t, 25-4, w.Deck.Size())
	require.NoError(t, w.CheckOwnership())
}

func TestPlayTurn_WrongPhase(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.turnProcessor.PlayTurn(context.Background())
	assert.Error(t, err)
}

func TestPlayTurn_PausesBetweenPhases(t *testing.T) {
	var phases []states.GamePhase
	e := newTestEngine(t, func(c *GameConfig) {
		c.Pause = func(p states.GamePhase) { phases = append(phases, p) }
	})
	lobby(t, e, "continents", "a", "benevolent", "b", "benevolent")
	_, err := e.stateMachine.Apply(states.ActionGameStart, "test start")
	require.NoError(t, err)
	e.setupStartingPositions()

	over, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.False(t, over)
	assert.Equal(t, []states.GamePhase{
		states.PhaseAssignReinforcement,
		states.PhaseIssueOrders,
		states.PhaseExecuteOrders,
	}, phases)
	assert.Equal(t, states.PhaseAssignReinforcement, e.CurrentPhase())
	assert.Equal(t, 2, e.Turn())
}

func TestPlayTurn_CardGatedIntentIsSkipped(t *testing.T) {
	e := startedEngine(t, "line", "a", "benevolent", "b", "benevolent")
	w := e.World()
	a, b := player(t, e, "a"), player(t, e, "b")
	testutil.Assign(w, a, 4, 1)
	testutil.Assign(w, b, 8, 2, 3)
	target := territoryByID(t, e, 2)

	s := &scripted{attack: []core.Intent{{Target: target, Kind: core.IntentBomb}}}
	a.Strategy = s
	discardAll(a, core.CardBomb)

	var skipped []*events.OrderSkippedEvent
	e.EventBus().SubscribeFunc(events.TypeOrderSkipped, func(ev events.Event) {
		skipped = append(skipped, ev.(*events.OrderSkippedEvent))
	})

	_, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Empty(t, s.issued, "the strategy is never asked to build an order without the card")
	require.Len(t, skipped, 1)
	assert.Equal(t, "a", skipped[0].Metadata.PlayerName)
	assert.Contains(t, skipped[0].Reason, "no bomb card")
	assert.Equal(t, 8, target.Armies())
	ps, ok := e.Stats().Player(a.ID)
	require.True(t, ok)
	assert.Equal(t, 1, ps.OrdersSkipped)
}

func TestPlayTurn_CardIsSpentOnIssue(t *testing.T) {
	e := startedEngine(t, "line", "a", "benevolent", "b", "benevolent")
	w := e.World()
	a, b := player(t, e, "a"), player(t, e, "b")
	testutil.Assign(w, a, 4, 1)
	testutil.Assign(w, b, 8, 2, 3)
	target := territoryByID(t, e, 2)

	s := &scripted{attack: []core.Intent{{Target: target, Kind: core.IntentBomb}}}
	a.Strategy = s
	drawUntil(t, w, a, core.CardBomb)
	bombs := countCards(a, core.CardBomb)

	_, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)

	require.Len(t, s.issued, 1)
	assert.Equal(t, bombs-1, countCards(a, core.CardBomb))
	assert.Equal(t, 4, target.Armies())
	assert.Equal(t, 0, a.Orders().Len(), "queues are drained by execution")
}

func TestPlayTurn_ReinforcementCardFillsPool(t *testing.T) {
	e := startedEngine(t, "continents", "a", "benevolent", "b", "benevolent")
	w := e.World()
	a := player(t, e, "a")
	a.Strategy = &scripted{attack: []core.Intent{{Kind: core.IntentReinforcement}}}
	drawUntil(t, w, a, core.CardReinforcement)
	cards := countCards(a, core.CardReinforcement)

	var issued []*events.OrderIssuedEvent
	e.EventBus().SubscribeFunc(events.TypeOrderIssued, func(ev events.Event) {
		issued = append(issued, ev.(*events.OrderIssuedEvent))
	})

	_, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50+3+5, a.Pool())
	assert.Equal(t, cards-1, countCards(a, core.CardReinforcement))
	require.Len(t, issued, 1)
	assert.Equal(t, "reinforcement", issued[0].OrderType)
}

func TestPlayTurn_CheaterAnnexesOneBorderPerTurn(t *testing.T) {
	e := startedEngine(t, "line", "c", "cheater", "v", "benevolent")
	w := e.World()
	c, v := player(t, e, "c"), player(t, e, "v")
	testutil.Assign(w, v, 7, 1, 3)
	testutil.Assign(w, c, 2, 2)
	// T2 borders T1 then T3; the first pick takes the second candidate.
	rng := testutil.NewScriptedSource(1, 0)
	w.Rng = rng

	var annexed []*events.TerritoryAnnexedEvent
	e.EventBus().SubscribeFunc(events.TypeTerritoryAnnexed, func(ev events.Event) {
		annexed = append(annexed, ev.(*events.TerritoryAnnexedEvent))
	})

	over, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.False(t, over)
	t1, t3 := territoryByID(t, e, 1), territoryByID(t, e, 3)
	assert.Equal(t, 2, c.TerritoryCount(), "exactly one border is annexed per turn")
	assert.True(t, t3.OwnedBy(c.ID))
	assert.Equal(t, 7, t3.Armies(), "annexed armies stay in place")
	assert.True(t, t1.OwnedBy(v.ID))
	require.Len(t, annexed, 1)
	assert.Equal(t, "v", annexed[0].FormerOwner)
	assert.Equal(t, 1, rng.Calls())

	over, err = e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.True(t, over)
	assert.Len(t, annexed, 2)
	assert.True(t, t1.OwnedBy(c.ID))
	winner, ok := e.Winner()
	require.True(t, ok)
	assert.Same(t, c, winner)
	assert.Equal(t, states.PhaseWin, e.CurrentPhase())
	require.NoError(t, w.CheckOwnership())
}

func TestPlayTurn_CheaterWithoutEnemyBordersDoesNothing(t *testing.T) {
	e := startedEngine(t, "line", "c", "cheater", "v", "benevolent")
	w := e.World()
	c, v := player(t, e, "c"), player(t, e, "v")
	testutil.Assign(w, c, 2, 1, 2, 3)
	rng := testutil.NewScriptedSource()
	w.Rng = rng

	e.turnProcessor.issueOrders(1, e.logger)

	assert.Equal(t, 3, c.TerritoryCount())
	assert.Zero(t, v.TerritoryCount())
	assert.Zero(t, rng.Calls(), "no candidates means no draw")
}

func TestPlayTurn_EndOfTurnHousekeeping(t *testing.T) {
	e := startedEngine(t, "continents", "a", "benevolent", "b", "benevolent")
	a, b := player(t, e, "a"), player(t, e, "b")
	a.AddFriend(b)
	b.AddFriend(a)
	a.MarkConquered()
	handA, handB := a.Hand().Size(), b.Hand().Size()

	_, err := e.turnProcessor.PlayTurn(context.Background())
	require.NoError(t, err)

	assert.False(t, a.IsFriend(b), "truces last one turn")
	assert.False(t, b.IsFriend(a))
	assert.False(t, a.ConqueredThisTurn())
	assert.Equal(t, handA+1, a.Hand().Size(), "a conqueror draws one card")
	assert.Equal(t, handB, b.Hand().Size())
}

func TestPlayTurn_Cancelled(t *testing.T) {
	e := startedEngine(t, "continents", "a", "benevolent", "b", "benevolent")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.turnProcessor.PlayTurn(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "reinforcement")
}
