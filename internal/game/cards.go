package game

import "github.com/peterkuimelis/duckdog/internal/effect"

// ============================================================
// Base cards
// ============================================================

// CreatureCard returns a plain creature with no abilities.
func CreatureCard(name string, power int) *Card {
	return &Card{
		Name:      name,
		Archetype: ArchetypeCreature,
		Family:    FamilyCreature,
		Power:     power,
	}
}

// DuckCard returns a duck: it quacks and swims.
func DuckCard(name string, power int) *Card {
	return &Card{
		Name:      name,
		Archetype: ArchetypeDuck,
		Family:    FamilyDuck,
		Power:     power,
		Quacks:    true,
		Swims:     true,
	}
}

// DogCard returns a dog with no abilities.
func DogCard(name string, power int) *Card {
	return &Card{
		Name:      name,
		Archetype: ArchetypeDog,
		Family:    FamilyDog,
		Power:     power,
	}
}

// PeacefulDuck: 2 power.
func PeacefulDuck() *Card {
	return DuckCard("Peaceful Duck", 2)
}

// BanditDog: 3 power.
func BanditDog() *Card {
	return DogCard("Bandit Dog", 3)
}

// ============================================================
// Dogs with abilities
// ============================================================

// TrasherResist is how much incoming damage the Thug ignores.
const TrasherResist = 1

// Thug: 5 power. Takes 1 less damage.
func Thug() *Card {
	c := DogCard("Thug", 5)
	c.Archetype = ArchetypeTrasher
	c.Abilities = []*Ability{{
		Name:        "Thick Hide",
		Description: "Takes 1 less damage",
		ModifyTakenDamage: func(c *Creature, value int, from *Creature, gc *Context, k effect.Continuation) {
			c.SignalAbility(gc, func() {
				k(max(value-TrasherResist, 0))
			})
		},
	}}
	return c
}

// GatlingDamage is dealt to every enemy card by the Gatling.
const GatlingDamage = 2

// Gatling: 6 power. Deals 2 damage to every enemy card, one after another.
func Gatling() *Card {
	c := DogCard("Gatling", 6)
	c.Archetype = ArchetypeGatling
	c.Abilities = []*Ability{{
		Name:        "Spray",
		Description: "Deals 2 damage to every enemy card",
		Attack: func(c *Creature, gc *Context, done effect.Done) {
			q := effect.NewQueue()
			for _, target := range gc.OppositePlayer.TableSnapshot() {
				q.Push(func(next effect.Done) {
					c.ShowAttack(gc, target, func() {
						c.DealDamageToCreature(GatlingDamage, target, gc, next)
					})
				})
			}
			q.ContinueWith(done)
		},
	}}
	return c
}

// LadBonus is the extra damage a Lad deals when n Lads are in play.
func LadBonus(n int) int {
	return n * (n + 1) / 2
}

// Lad: 2 power. Every Lad in play adds to the others' damage and toughness.
func Lad() *Card {
	c := DogCard("Lad", 2)
	c.Archetype = ArchetypeLad
	c.Abilities = []*Ability{ladAbility()}
	return c
}

func ladAbility() *Ability {
	return &Ability{
		Name:        "Strength in Numbers",
		Description: "The more of them, the stronger they are",
		Describes:   CapModifiesOutgoing,
		OnEnter: func(c *Creature, gc *Context, done effect.Done) {
			gc.InPlay.Add(ArchetypeLad, 1)
			done()
		},
		OnLeave: func(c *Creature, gc *Context, done effect.Done) {
			gc.InPlay.Add(ArchetypeLad, -1)
			done()
		},
		ModifyDealtDamage: func(c *Creature, value int, target *Creature, gc *Context, k effect.Continuation) {
			k(value + LadBonus(gc.InPlay.Count(ArchetypeLad)))
		},
		ModifyTakenDamage: func(c *Creature, value int, from *Creature, gc *Context, k effect.Continuation) {
			resist := gc.InPlay.Count(ArchetypeLad)
			c.SignalAbility(gc, func() {
				k(max(value-resist, 0))
			})
		},
	}
}

// PseudoDuck: 3 power. A dog that quacks and swims.
func PseudoDuck() *Card {
	c := DogCard("Pseudo-Duck", 3)
	c.Archetype = ArchetypePseudoDuck
	c.Quacks = true
	c.Swims = true
	return c
}

// ============================================================
// Ducks with abilities
// ============================================================

// Brewer: 2 power. Before attacking, every duck on the field gains 1 max
// power and recovers 2 power.
func Brewer() *Card {
	c := DuckCard("Brewer", 2)
	c.Archetype = ArchetypeBrewer
	c.Abilities = []*Ability{{
		Name:        "Brew",
		Description: "Before attacking, every duck gets +1 max power and heals 2",
		BeforeAttack: func(c *Creature, gc *Context, done effect.Done) {
			field := append(gc.CurrentPlayer.TableSnapshot(), gc.OppositePlayer.TableSnapshot()...)
			q := effect.NewQueue()
			for _, card := range field {
				if !IsDuck(card) {
					continue
				}
				q.Push(func(next effect.Done) {
					c.SignalHeal(gc, card, func() {
						card.SetMaxPower(card.MaxPower() + 1)
						card.SetCurrentPower(card.CurrentPower() + 2)
						card.UpdateView()
						next()
					})
				})
			}
			q.ContinueWith(done)
		},
	}}
	return c
}
