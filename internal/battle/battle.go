// Package battle runs auto-battler style turn-based combat between two unit
// rosters. It is independent of the physics engine: fights resolve on an
// attack-timer event queue instead of a simulated arena, which makes it the
// cheap resolver for roster balance checks.
package battle

import (
	"fmt"
	"math"
	"sort"
)

// UnitSpec is the static unit data used to spawn a fighter into battle.
type UnitSpec struct {
	Name        string  `json:"name"`
	HP          int     `json:"hp"`
	Attack      int     `json:"attack"`
	Armor       int     `json:"armor"`
	AttackSpeed float64 `json:"attack_speed"`
}

// Validate rejects units that cannot fight.
func (u UnitSpec) Validate() error {
	if u.HP <= 0 {
		return fmt.Errorf("battle: unit %q: hp must be > 0, got %d", u.Name, u.HP)
	}
	if u.Attack < 0 {
		return fmt.Errorf("battle: unit %q: attack must be >= 0, got %d", u.Name, u.Attack)
	}
	if u.AttackSpeed <= 0 {
		return fmt.Errorf("battle: unit %q: attack_speed must be > 0, got %g", u.Name, u.AttackSpeed)
	}
	return nil
}

type fighter struct {
	unit           UnitSpec
	team           string
	slot           int
	hp             int
	nextAttackTime float64
}

func (f *fighter) alive() bool {
	return f.hp > 0
}

func (f *fighter) speedInterval() float64 {
	return 1.0 / f.unit.AttackSpeed
}

func (f *fighter) label() string {
	return fmt.Sprintf("%s:%s[%d]", f.team, f.unit.Name, f.slot)
}

// Survivor is a fighter still standing when the battle ends.
type Survivor struct {
	Team string `json:"team"`
	Name string `json:"name"`
	Slot int    `json:"slot"`
	HP   int    `json:"hp"`
}

// Result reports the battle outcome. Winner is empty when both teams still
// stand at a safety limit, or both are wiped on the same timestamp.
type Result struct {
	Winner      string     `json:"winner,omitempty"`
	TimeElapsed float64    `json:"time_elapsed"`
	Actions     int        `json:"actions"`
	Survivors   []Survivor `json:"survivors"`
	Log         []string   `json:"log"`
}

// Options bound a battle. Zero values take the stock limits.
type Options struct {
	TeamAName  string
	TeamBName  string
	MaxActions int
	MaxTime    float64
}

func (o Options) withDefaults() Options {
	if o.TeamAName == "" {
		o.TeamAName = "A"
	}
	if o.TeamBName == "" {
		o.TeamBName = "B"
	}
	if o.MaxActions == 0 {
		o.MaxActions = 500
	}
	if o.MaxTime == 0 {
		o.MaxTime = 180.0
	}
	return o
}

func pickTarget(enemies []*fighter) *fighter {
	// Frontline first: the smaller slot index is closer to the front.
	best := enemies[0]
	for _, f := range enemies[1:] {
		if f.slot != best.slot {
			if f.slot < best.slot {
				best = f
			}
			continue
		}
		if f.hp != best.hp {
			if f.hp < best.hp {
				best = f
			}
			continue
		}
		if f.unit.Name < best.unit.Name {
			best = f
		}
	}
	return best
}

func computeDamage(attacker, defender *fighter) int {
	damage := attacker.unit.Attack - defender.unit.Armor
	if damage < 1 {
		return 1
	}
	return damage
}

// Simulate runs a battle between two rosters.
//
// Every alive unit repeatedly performs a normal attack on the enemy in the
// smallest slot. The attack interval is 1/attack_speed and the damage is
// max(1, attack-armor). The battle ends when a team is wiped or a safety
// limit is reached. Given the same rosters the outcome is identical on
// every run: simultaneous attacks resolve in (team, slot, name) order.
func Simulate(teamA, teamB []UnitSpec, opts Options) (*Result, error) {
	if len(teamA) == 0 || len(teamB) == 0 {
		return nil, fmt.Errorf("battle: both teams must have at least one unit")
	}
	opts = opts.withDefaults()
	if opts.MaxActions < 0 {
		return nil, fmt.Errorf("battle: max_actions must be > 0, got %d", opts.MaxActions)
	}
	if opts.MaxTime < 0 {
		return nil, fmt.Errorf("battle: max_time must be > 0, got %g", opts.MaxTime)
	}
	if opts.TeamAName == opts.TeamBName {
		return nil, fmt.Errorf("battle: team names must differ, both are %q", opts.TeamAName)
	}

	fighters := make([]*fighter, 0, len(teamA)+len(teamB))
	for idx, unit := range teamA {
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		fighters = append(fighters, &fighter{unit: unit, team: opts.TeamAName, slot: idx, hp: unit.HP})
	}
	for idx, unit := range teamB {
		if err := unit.Validate(); err != nil {
			return nil, err
		}
		fighters = append(fighters, &fighter{unit: unit, team: opts.TeamBName, slot: idx, hp: unit.HP})
	}

	var log []string
	currentTime := 0.0
	actions := 0

	for actions < opts.MaxActions && currentTime <= opts.MaxTime {
		if !teamAlive(fighters, opts.TeamAName) || !teamAlive(fighters, opts.TeamBName) {
			break
		}

		nextTime := math.Inf(1)
		for _, f := range fighters {
			if f.alive() && f.nextAttackTime < nextTime {
				nextTime = f.nextAttackTime
			}
		}
		currentTime = nextTime

		var ready []*fighter
		for _, f := range fighters {
			if f.alive() && math.Abs(f.nextAttackTime-nextTime) < 1e-9 {
				ready = append(ready, f)
			}
		}
		sort.Slice(ready, func(i, j int) bool {
			a, b := ready[i], ready[j]
			if a.team != b.team {
				return a.team < b.team
			}
			if a.slot != b.slot {
				return a.slot < b.slot
			}
			return a.unit.Name < b.unit.Name
		})

		for _, attacker := range ready {
			// Killed by an earlier action on the same timestamp.
			if !attacker.alive() {
				continue
			}

			var enemies []*fighter
			for _, f := range fighters {
				if f.team != attacker.team && f.alive() {
					enemies = append(enemies, f)
				}
			}
			if len(enemies) == 0 {
				break
			}

			target := pickTarget(enemies)
			damage := computeDamage(attacker, target)
			target.hp -= damage
			if target.hp < 0 {
				target.hp = 0
			}
			actions++

			log = append(log, fmt.Sprintf("%06.2fs %s -> %s for %d (target hp: %d)",
				currentTime, attacker.label(), target.label(), damage, target.hp))
			if target.hp == 0 {
				log = append(log, fmt.Sprintf("%06.2fs %s defeated", currentTime, target.label()))
			}

			attacker.nextAttackTime = currentTime + attacker.speedInterval()

			if actions >= opts.MaxActions {
				break
			}
		}
	}

	aliveA := teamAlive(fighters, opts.TeamAName)
	aliveB := teamAlive(fighters, opts.TeamBName)
	winner := ""
	if aliveA && !aliveB {
		winner = opts.TeamAName
	} else if aliveB && !aliveA {
		winner = opts.TeamBName
	}

	var survivors []*fighter
	for _, f := range fighters {
		if f.alive() {
			survivors = append(survivors, f)
		}
	}
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].team != survivors[j].team {
			return survivors[i].team < survivors[j].team
		}
		return survivors[i].slot < survivors[j].slot
	})

	result := &Result{
		Winner:      winner,
		TimeElapsed: currentTime,
		Actions:     actions,
		Survivors:   make([]Survivor, 0, len(survivors)),
		Log:         log,
	}
	for _, f := range survivors {
		result.Survivors = append(result.Survivors, Survivor{Team: f.team, Name: f.unit.Name, Slot: f.slot, HP: f.hp})
	}
	return result, nil
}

func teamAlive(fighters []*fighter, team string) bool {
	for _, f := range fighters {
		if f.team == team && f.alive() {
			return true
		}
	}
	return false
}
