package core

import "fmt"

// OrderType represents the variant of an order
type OrderType int

const (
	OrderDeploy OrderType = iota
	OrderAdvance
	OrderBomb
	OrderBlockade
	OrderAirlift
	OrderNegotiate
)

func (t OrderType) String() string {
	switch t {
	case OrderDeploy:
		return "deploy"
	case OrderAdvance:
		return "advance"
	case OrderBomb:
		return "bomb"
	case OrderBlockade:
		return "blockade"
	case OrderAirlift:
		return "airlift"
	case OrderNegotiate:
		return "negotiate"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Outcome describes what an executed order did.
type Outcome struct {
	Executed  bool
	Effect    string
	Combat    *CombatResult
	Conquered *Territory
	// Previous owner of a territory that changed hands, if any.
	Loser *Player
}

// Order is a queued player instruction. Validate is a pure check. Execute
// mutates the world only when Validate passes; an invalid order is a silent
// no-op that records why in its effect.
type Order interface {
	Type() OrderType
	Issuer() *Player
	Validate(w *World) bool
	Execute(w *World) Outcome
	// Effect is empty until the order has been executed.
	Effect() string
	String() string
}

type baseOrder struct {
	issuer *Player
	effect string
}

func (o *baseOrder) Issuer() *Player { return o.issuer }
func (o *baseOrder) Effect() string  { return o.effect }

func (o *baseOrder) skip(reason string) Outcome {
	o.effect = "skipped: " + reason
	return Outcome{Effect: o.effect}
}

func (o *baseOrder) done(effect string) Outcome {
	o.effect = effect
	return Outcome{Executed: true, Effect: effect}
}

func ownedBy(t *Territory, p *Player) bool {
	return t != nil && p != nil && t.Owner == p.ID
}

// Deploy places armies from the issuer's pool onto one of its territories.
// The pool is debited when the order is issued.
type Deploy struct {
	baseOrder
	Target *Territory
	Armies int
}

func NewDeploy(issuer *Player, target *Territory, armies int) *Deploy {
	return &Deploy{baseOrder: baseOrder{issuer: issuer}, Target: target, Armies: armies}
}

func (d *Deploy) Type() OrderType { return OrderDeploy }

func (d *Deploy) Validate(w *World) bool {
	return d.Armies >= 0 && ownedBy(d.Target, d.issuer)
}

func (d *Deploy) Execute(w *World) Outcome {
	if !d.Validate(w) {
		return d.skip(fmt.Sprintf("%s does not own the deploy target", d.issuer))
	}
	if err := d.Target.AddArmies(d.Armies); err != nil {
		return d.skip(err.Error())
	}
	return d.done(fmt.Sprintf("%s deployed %d armies to %s (now %d)", d.issuer, d.Armies, d.Target.Name, d.Target.Armies()))
}

func (d *Deploy) String() string {
	return fmt.Sprintf("deploy %d to %s", d.Armies, territoryName(d.Target))
}

// Advance moves armies to an adjacent territory, attacking it when it is
// owned by someone else.
type Advance struct {
	baseOrder
	Source *Territory
	Target *Territory
	Armies int
}

func NewAdvance(issuer *Player, source, target *Territory, armies int) *Advance {
	return &Advance{baseOrder: baseOrder{issuer: issuer}, Source: source, Target: target, Armies: armies}
}

func (a *Advance) Type() OrderType { return OrderAdvance }

func (a *Advance) Validate(w *World) bool {
	return a.Armies >= 0 &&
		a.Target != nil &&
		a.Source != a.Target &&
		ownedBy(a.Source, a.issuer) &&
		a.Source.IsAdjacent(a.Target)
}

func (a *Advance) Execute(w *World) Outcome {
	if !a.Validate(w) {
		return a.skip(fmt.Sprintf("%s cannot advance from %s to %s", a.issuer, territoryName(a.Source), territoryName(a.Target)))
	}

	n := a.Armies
	if n > a.Source.Armies() {
		n = a.Source.Armies()
	}

	if a.Target.Owner == a.Source.Owner {
		a.Source.setArmies(a.Source.Armies() - n)
		a.Target.setArmies(a.Target.Armies() + n)
		return a.done(fmt.Sprintf("%s moved %d armies from %s to %s", a.issuer, n, a.Source.Name, a.Target.Name))
	}

	if n == 0 || a.Target.Armies() == 0 {
		return a.skip(fmt.Sprintf("no armies to fight between %s and %s", a.Source.Name, a.Target.Name))
	}

	defender := w.Owner(a.Target)
	if a.issuer.IsFriend(defender) {
		return a.skip(fmt.Sprintf("%s has a truce with %s", a.issuer, defender))
	}

	a.Source.setArmies(a.Source.Armies() - n)
	result := ResolveCombat(w.Rng, w.Combat, n, a.Target.Armies())

	out := Outcome{Executed: true, Combat: &result}
	if result.Captured() {
		w.Transfer(a.Target, a.issuer)
		a.Target.setArmies(result.AttackersLeft)
		a.issuer.MarkConquered()
		out.Conquered = a.Target
		out.Loser = defender
		a.effect = fmt.Sprintf("%s conquered %s from %s (%s)", a.issuer, a.Target.Name, playerName(defender), result)
	} else {
		a.Target.setArmies(result.DefendersLeft)
		a.Source.setArmies(a.Source.Armies() + result.AttackersLeft)
		a.effect = fmt.Sprintf("%s failed to take %s from %s (%s)", a.issuer, a.Target.Name, playerName(defender), result)
	}
	out.Effect = a.effect
	return out
}

func (a *Advance) String() string {
	return fmt.Sprintf("advance %d from %s to %s", a.Armies, territoryName(a.Source), territoryName(a.Target))
}

// Bomb halves the armies on an enemy territory bordering the issuer.
type Bomb struct {
	baseOrder
	Target *Territory
}

func NewBomb(issuer *Player, target *Territory) *Bomb {
	return &Bomb{baseOrder: baseOrder{issuer: issuer}, Target: target}
}

func (b *Bomb) Type() OrderType { return OrderBomb }

func (b *Bomb) Validate(w *World) bool {
	if b.Target == nil || ownedBy(b.Target, b.issuer) {
		return false
	}
	if b.issuer.IsFriend(w.Owner(b.Target)) {
		return false
	}
	for _, n := range b.Target.neighbors {
		if ownedBy(n, b.issuer) {
			return true
		}
	}
	return false
}

func (b *Bomb) Execute(w *World) Outcome {
	if !b.Validate(w) {
		return b.skip(fmt.Sprintf("%s cannot bomb %s", b.issuer, territoryName(b.Target)))
	}
	before := b.Target.Armies()
	b.Target.setArmies(before / 2)
	return b.done(fmt.Sprintf("%s bombed %s (%d -> %d)", b.issuer, b.Target.Name, before, b.Target.Armies()))
}

func (b *Bomb) String() string {
	return fmt.Sprintf("bomb %s", territoryName(b.Target))
}

// Blockade doubles the armies on an owned territory and hands it to the
// neutral player.
type Blockade struct {
	baseOrder
	Target *Territory
}

func NewBlockade(issuer *Player, target *Territory) *Blockade {
	return &Blockade{baseOrder: baseOrder{issuer: issuer}, Target: target}
}

func (b *Blockade) Type() OrderType { return OrderBlockade }

func (b *Blockade) Validate(w *World) bool {
	return ownedBy(b.Target, b.issuer)
}

func (b *Blockade) Execute(w *World) Outcome {
	if !b.Validate(w) {
		return b.skip(fmt.Sprintf("%s does not own %s", b.issuer, territoryName(b.Target)))
	}
	b.Target.setArmies(b.Target.Armies() * 2)
	w.Transfer(b.Target, w.Neutral())
	out := b.done(fmt.Sprintf("%s blockaded %s (now %d armies, neutral)", b.issuer, b.Target.Name, b.Target.Armies()))
	out.Loser = b.issuer
	return out
}

func (b *Blockade) String() string {
	return fmt.Sprintf("blockade %s", territoryName(b.Target))
}

// Airlift moves armies between any two owned territories.
type Airlift struct {
	baseOrder
	Source *Territory
	Target *Territory
	Armies int
}

func NewAirlift(issuer *Player, source, target *Territory, armies int) *Airlift {
	return &Airlift{baseOrder: baseOrder{issuer: issuer}, Source: source, Target: target, Armies: armies}
}

func (a *Airlift) Type() OrderType { return OrderAirlift }

func (a *Airlift) Validate(w *World) bool {
	return a.Armies >= 0 &&
		a.Source != a.Target &&
		ownedBy(a.Source, a.issuer) &&
		ownedBy(a.Target, a.issuer)
}

func (a *Airlift) Execute(w *World) Outcome {
	if !a.Validate(w) {
		return a.skip(fmt.Sprintf("%s cannot airlift from %s to %s", a.issuer, territoryName(a.Source), territoryName(a.Target)))
	}
	n := a.Armies
	if n > a.Source.Armies() {
		n = a.Source.Armies()
	}
	a.Source.setArmies(a.Source.Armies() - n)
	a.Target.setArmies(a.Target.Armies() + n)
	return a.done(fmt.Sprintf("%s airlifted %d armies from %s to %s", a.issuer, n, a.Source.Name, a.Target.Name))
}

func (a *Airlift) String() string {
	return fmt.Sprintf("airlift %d from %s to %s", a.Armies, territoryName(a.Source), territoryName(a.Target))
}

// Negotiate declares a truce between the issuer and another player for the
// rest of the turn.
type Negotiate struct {
	baseOrder
	Target *Player
}

func NewNegotiate(issuer, target *Player) *Negotiate {
	return &Negotiate{baseOrder: baseOrder{issuer: issuer}, Target: target}
}

func (n *Negotiate) Type() OrderType { return OrderNegotiate }

func (n *Negotiate) Validate(w *World) bool {
	return n.Target != nil && n.Target != n.issuer
}

func (n *Negotiate) Execute(w *World) Outcome {
	if !n.Validate(w) {
		return n.skip(fmt.Sprintf("%s has no one to negotiate with", n.issuer))
	}
	n.issuer.AddFriend(n.Target)
	n.Target.AddFriend(n.issuer)
	return n.done(fmt.Sprintf("%s negotiated a truce with %s", n.issuer, n.Target))
}

func (n *Negotiate) String() string {
	return fmt.Sprintf("negotiate with %s", playerName(n.Target))
}

func territoryName(t *Territory) string {
	if t == nil {
		return "<none>"
	}
	return t.Name
}

func playerName(p *Player) string {
	if p == nil {
		return "nobody"
	}
	return p.Name
}
