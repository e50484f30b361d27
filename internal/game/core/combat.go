package core

import "fmt"

// CombatResult records the army counts before and after a battle.
type CombatResult struct {
	Attackers     int
	Defenders     int
	AttackersLeft int
	DefendersLeft int
}

// Captured reports whether the attackers took the territory.
func (r CombatResult) Captured() bool {
	return r.AttackersLeft > 0 && r.DefendersLeft == 0
}

func (r CombatResult) String() string {
	return fmt.Sprintf("attackers %d->%d, defenders %d->%d", r.Attackers, r.AttackersLeft, r.Defenders, r.DefendersLeft)
}

// ResolveCombat runs the attack pass followed by the defence pass. Every
// attacking unit rolls once while defenders remain; then every surviving
// defender rolls once while attackers remain. The passes never interleave.
func ResolveCombat(rng Source, rules CombatRules, attackers, defenders int) CombatResult {
	res := CombatResult{Attackers: attackers, Defenders: defenders}

	for i := 0; i < attackers && defenders > 0; i++ {
		if Chance(rng, rules.AttackKillPercent) {
			defenders--
		}
	}

	survivors := defenders
	for i := 0; i < survivors && attackers > 0; i++ {
		if Chance(rng, rules.DefendKillPercent) {
			attackers--
		}
	}

	res.AttackersLeft = attackers
	res.DefendersLeft = defenders
	return res
}
