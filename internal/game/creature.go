package game

import (
	"fmt"

	"github.com/peterkuimelis/duckdog/internal/effect"
	"github.com/peterkuimelis/duckdog/internal/log"
)

// ModifyDealtDamage passes outgoing damage through every ability that
// modifies it, most specific first, then hands the result to k. A hook that
// calls its continuation twice only advances the chain once.
func (c *Creature) ModifyDealtDamage(value int, target *Creature, gc *Context, k effect.Continuation) {
	c.modifyDealtFrom(0, value, target, gc, k)
}

func (c *Creature) modifyDealtFrom(i int, value int, target *Creature, gc *Context, k effect.Continuation) {
	abilities := c.Card.Abilities
	for ; i < len(abilities); i++ {
		if hook := abilities[i].ModifyDealtDamage; hook != nil {
			next := i + 1
			hook(c, value, target, gc, effect.OnceValue(func(v int) {
				c.modifyDealtFrom(next, v, target, gc, k)
			}))
			return
		}
	}
	k(value)
}

// ModifyTakenDamage passes incoming damage through every ability that
// modifies it, most specific first, then hands the result to k.
func (c *Creature) ModifyTakenDamage(value int, from *Creature, gc *Context, k effect.Continuation) {
	c.modifyTakenFrom(0, value, from, gc, k)
}

func (c *Creature) modifyTakenFrom(i int, value int, from *Creature, gc *Context, k effect.Continuation) {
	abilities := c.Card.Abilities
	for ; i < len(abilities); i++ {
		if hook := abilities[i].ModifyTakenDamage; hook != nil {
			next := i + 1
			hook(c, value, from, gc, effect.OnceValue(func(v int) {
				c.modifyTakenFrom(next, v, from, gc, k)
			}))
			return
		}
	}
	k(value)
}

// BeforeAttack runs the pre-attack hooks, most specific first.
func (c *Creature) BeforeAttack(gc *Context, done effect.Done) {
	c.beforeAttackFrom(0, gc, done)
}

func (c *Creature) beforeAttackFrom(i int, gc *Context, done effect.Done) {
	abilities := c.Card.Abilities
	for ; i < len(abilities); i++ {
		if hook := abilities[i].BeforeAttack; hook != nil {
			next := i + 1
			hook(c, gc, func() { c.beforeAttackFrom(next, gc, done) })
			return
		}
	}
	done()
}

// ComeIntoPlay runs the entry hooks, most generic first, so each ability
// sees its parents' effects already applied.
func (c *Creature) ComeIntoPlay(gc *Context, done effect.Done) {
	c.enterFrom(len(c.Card.Abilities)-1, gc, done)
}

func (c *Creature) enterFrom(i int, gc *Context, done effect.Done) {
	abilities := c.Card.Abilities
	for ; i >= 0; i-- {
		if hook := abilities[i].OnEnter; hook != nil {
			prev := i - 1
			hook(c, gc, func() { c.enterFrom(prev, gc, done) })
			return
		}
	}
	done()
}

// Remove runs the removal hooks, most generic first.
func (c *Creature) Remove(gc *Context, done effect.Done) {
	c.leaveFrom(len(c.Card.Abilities)-1, gc, done)
}

func (c *Creature) leaveFrom(i int, gc *Context, done effect.Done) {
	abilities := c.Card.Abilities
	for ; i >= 0; i-- {
		if hook := abilities[i].OnLeave; hook != nil {
			prev := i - 1
			hook(c, gc, func() { c.leaveFrom(prev, gc, done) })
			return
		}
	}
	done()
}

// Attack resolves the creature's attack. The first ability that overrides
// the attack replaces the default one entirely.
func (c *Creature) Attack(gc *Context, done effect.Done) {
	for _, a := range c.Card.Abilities {
		if a.Attack != nil {
			a.Attack(c, gc, done)
			return
		}
	}
	c.defaultAttack(gc, done)
}

// defaultAttack hits the opposing creature in the same slot, or the opposing
// player when that slot is empty.
func (c *Creature) defaultAttack(gc *Context, done effect.Done) {
	slot := gc.CurrentPlayer.TableIndex(c)
	if slot < 0 {
		done()
		return
	}
	power := c.CurrentPower()
	if target := gc.OppositePlayer.At(slot); target != nil {
		c.ShowAttack(gc, target, func() {
			c.DealDamageToCreature(power, target, gc, done)
		})
		return
	}
	c.ShowAttack(gc, nil, func() {
		gc.damagePlayer(gc.OppositePlayer, power, fmt.Sprintf("direct attack by %s", c.Name()))
		done()
	})
}

// DealDamageToCreature runs value through this creature's outgoing modifiers
// and the target's incoming ones, then applies it.
func (c *Creature) DealDamageToCreature(value int, target *Creature, gc *Context, done effect.Done) {
	c.ModifyDealtDamage(value, target, gc, func(v int) {
		target.TakeDamage(v, c, gc, done)
	})
}

// TakeDamage applies incoming damage after the creature's own modifiers.
// A creature whose power drops to 0 leaves the table.
func (c *Creature) TakeDamage(value int, from *Creature, gc *Context, done effect.Done) {
	if !c.inPlay {
		done()
		return
	}
	c.ModifyTakenDamage(value, from, gc, func(v int) {
		if v <= 0 {
			done()
			return
		}
		c.view().SignalDamage(v, func() {
			oldPower := c.CurrentPower()
			c.SetCurrentPower(oldPower - v)
			c.UpdateView()
			gc.Emit(log.NewDamageEvent(gc.Turn, c.Owner, c.Name(), v, oldPower, c.CurrentPower()))
			if c.CurrentPower() > 0 {
				done()
				return
			}
			gc.destroy(c, done)
		})
	})
}

// --- View signals ---

// SignalAbility shows that the creature's ability fires.
func (c *Creature) SignalAbility(gc *Context, done effect.Done) {
	gc.Emit(log.NewAbilityEvent(gc.Turn, c.Owner, c.Name()))
	c.view().SignalAbility(done)
}

// SignalHeal shows the creature strengthening target.
func (c *Creature) SignalHeal(gc *Context, target *Creature, done effect.Done) {
	gc.Emit(log.NewHealEvent(gc.Turn, c.Owner, c.Name(), target.Name()))
	c.view().SignalHeal(done)
}

// ShowAttack plays the attack animation against target, or against the
// opposing player when target is nil.
func (c *Creature) ShowAttack(gc *Context, target *Creature, done effect.Done) {
	if target == nil {
		gc.Emit(log.NewDirectAttackEvent(gc.Turn, c.Owner, c.Name()))
	} else {
		gc.Emit(log.NewAttackEvent(gc.Turn, c.Owner, c.Name(), target.Name()))
	}
	c.view().ShowAttack(done)
}
