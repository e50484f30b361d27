package strategy

import (
	"fmt"

	"github.com/mitchelldurbincs/warzone/internal/game/core"
	"github.com/mitchelldurbincs/warzone/internal/game/rules"
)

// Prompter is the console the human strategy asks questions through.
type Prompter interface {
	// Choose shows options and returns the index picked.
	Choose(prompt string, options []string) (int, error)
	// ReadInt reads one integer. Range checks are the caller's job.
	ReadInt(prompt string) (int, error)
	// Message shows a line of feedback.
	Message(text string)
}

const doneOption = "done"

// Human asks the user for every decision.
type Human struct {
	prompter Prompter
}

func NewHuman(p Prompter) *Human {
	return &Human{prompter: p}
}

func (h *Human) Kind() core.StrategyKind { return core.StrategyHuman }

// ToDefend asks which territories should receive reinforcements. Picking a
// territory twice is allowed; the pool limits the total at issue time.
func (h *Human) ToDefend(w *core.World, p *core.Player) []core.Intent {
	if p.Pool() == 0 {
		return nil
	}
	owned := p.Territories()
	var intents []core.Intent
	for len(intents) < p.Pool() {
		t, ok := h.pickTerritory(fmt.Sprintf("%s: deploy to which territory? (%d in pool)", p.Name, p.Pool()), owned)
		if !ok {
			break
		}
		intents = append(intents, core.Intent{Target: t, Kind: core.IntentDeploy})
	}
	return intents
}

var attackMenu = []core.IntentKind{
	core.IntentAdvance,
	core.IntentAirlift,
	core.IntentBomb,
	core.IntentBlockade,
	core.IntentNegotiate,
	core.IntentReinforcement,
}

// ToAttack loops over the order menu until the user picks done.
func (h *Human) ToAttack(w *core.World, p *core.Player) []core.Intent {
	options := make([]string, 0, len(attackMenu)+1)
	for _, k := range attackMenu {
		options = append(options, k.String())
	}
	options = append(options, doneOption)

	var intents []core.Intent
	for {
		idx, err := h.prompter.Choose(fmt.Sprintf("%s: choose an order", p.Name), options)
		if err != nil || idx < 0 || idx >= len(attackMenu) {
			return intents
		}
		if in, ok := h.buildIntent(w, p, attackMenu[idx]); ok {
			intents = append(intents, in)
		}
	}
}

func (h *Human) buildIntent(w *core.World, p *core.Player, kind core.IntentKind) (core.Intent, bool) {
	owned := p.Territories()
	in := core.Intent{Kind: kind}
	var ok bool
	switch kind {
	case core.IntentAdvance:
		if in.Source, ok = h.pickTerritory("advance from", owned); !ok {
			return in, false
		}
		in.Target, ok = h.pickTerritory("advance to", in.Source.Neighbors())
	case core.IntentAirlift:
		if in.Source, ok = h.pickTerritory("airlift from", owned); !ok {
			return in, false
		}
		in.Target, ok = h.pickTerritory("airlift to", owned)
	case core.IntentBomb:
		in.Target, ok = h.pickTerritory("bomb which territory", rules.Attackable(p))
	case core.IntentBlockade:
		in.Target, ok = h.pickTerritory("blockade which territory", owned)
	case core.IntentNegotiate:
		var foreign []*core.Territory
		for _, t := range w.Map.Territories() {
			if owner := w.Owner(t); owner != nil && owner != p && !owner.Neutral {
				foreign = append(foreign, t)
			}
		}
		in.Target, ok = h.pickTerritory("negotiate with the owner of", foreign)
	case core.IntentReinforcement:
		ok = true
	}
	return in, ok
}

func (h *Human) pickTerritory(prompt string, from []*core.Territory) (*core.Territory, bool) {
	if len(from) == 0 {
		h.prompter.Message("no territory available")
		return nil, false
	}
	options := make([]string, 0, len(from)+1)
	for _, t := range from {
		options = append(options, fmt.Sprintf("%s (%d armies)", t.Name, t.Armies()))
	}
	options = append(options, doneOption)
	idx, err := h.prompter.Choose(prompt, options)
	if err != nil || idx < 0 || idx >= len(from) {
		return nil, false
	}
	return from[idx], true
}

// readCount asks for a number in [0, max] until one is given.
func (h *Human) readCount(prompt string, max int) (int, error) {
	for {
		n, err := h.prompter.ReadInt(fmt.Sprintf("%s [0-%d]", prompt, max))
		if err != nil {
			return 0, err
		}
		if n >= 0 && n <= max {
			return n, nil
		}
		h.prompter.Message(fmt.Sprintf("%d is out of range, enter a number between 0 and %d", n, max))
	}
}

func (h *Human) IssueOrder(w *core.World, p *core.Player, in core.Intent, sink core.LogSink) (core.Order, error) {
	armies := 0
	var err error
	switch in.Kind {
	case core.IntentDeploy:
		armies, err = h.readCount(fmt.Sprintf("armies to deploy on %s", in.Target.Name), p.Pool())
	case core.IntentAdvance:
		armies, err = h.readCount(fmt.Sprintf("armies to advance from %s to %s", in.Source.Name, in.Target.Name), ProjectedArmies(p, in.Source))
	case core.IntentAirlift:
		armies, err = h.readCount(fmt.Sprintf("armies to airlift from %s to %s", in.Source.Name, in.Target.Name), ProjectedArmies(p, in.Source))
	}
	if err != nil {
		return nil, core.WrapPlayerError(p, "read army count", err)
	}
	o, err := build(w, p, in, armies)
	if err != nil {
		return nil, err
	}
	emit(sink, "%s (human) issued %s", p.Name, o)
	return o, nil
}
