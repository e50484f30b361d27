package core

import (
	"fmt"
	"strings"
)

// StrategyKind identifies a player decision policy.
type StrategyKind int

const (
	StrategyHuman StrategyKind = iota
	StrategyAggressive
	StrategyBenevolent
	StrategyNeutral
	StrategyCheater
)

var strategyNames = map[StrategyKind]string{
	StrategyHuman:      "human",
	StrategyAggressive: "aggressive",
	StrategyBenevolent: "benevolent",
	StrategyNeutral:    "neutral",
	StrategyCheater:    "cheater",
}

func (k StrategyKind) String() string {
	if name, ok := strategyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseStrategyKind resolves a strategy name case-insensitively.
func ParseStrategyKind(name string) (StrategyKind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range strategyNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
}

// IntentKind tags what an intent should turn into.
type IntentKind int

const (
	IntentDeploy IntentKind = iota
	IntentAdvance
	IntentBomb
	IntentBlockade
	IntentAirlift
	IntentNegotiate
	IntentReinforcement
	IntentCheat
)

func (k IntentKind) String() string {
	switch k {
	case IntentDeploy:
		return "deploy"
	case IntentAdvance:
		return "advance"
	case IntentBomb:
		return "bomb"
	case IntentBlockade:
		return "blockade"
	case IntentAirlift:
		return "airlift"
	case IntentNegotiate:
		return "negotiate"
	case IntentReinforcement:
		return "reinforcement"
	case IntentCheat:
		return "cheating"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// RequiredCard returns the card an intent consumes, if any.
func (k IntentKind) RequiredCard() (CardType, bool) {
	switch k {
	case IntentBomb:
		return CardBomb, true
	case IntentBlockade:
		return CardBlockade, true
	case IntentAirlift:
		return CardAirlift, true
	case IntentNegotiate:
		return CardDiplomacy, true
	case IntentReinforcement:
		return CardReinforcement, true
	default:
		return 0, false
	}
}

// Intent is a decision that has not yet become a concrete order.
// Source may be nil for single-territory kinds.
type Intent struct {
	Source *Territory
	Target *Territory
	Kind   IntentKind
}

func (in Intent) String() string {
	switch {
	case in.Source != nil && in.Target != nil:
		return fmt.Sprintf("%s %s -> %s", in.Kind, in.Source.Name, in.Target.Name)
	case in.Target != nil:
		return fmt.Sprintf("%s %s", in.Kind, in.Target.Name)
	default:
		return in.Kind.String()
	}
}

// LogSink receives one line of text per decision a strategy makes.
type LogSink func(message string)

// Strategy is a player's decision policy. ToDefend and ToAttack only read
// state; IssueOrder materialises one intent and appends it to the player's
// queue.
type Strategy interface {
	Kind() StrategyKind
	ToDefend(w *World, p *Player) []Intent
	ToAttack(w *World, p *Player) []Intent
	IssueOrder(w *World, p *Player, in Intent, sink LogSink) (Order, error)
}
