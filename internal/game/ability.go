package game

import "github.com/peterkuimelis/duckdog/internal/effect"

// Capability is the set of hooks an ability provides.
type Capability uint8

const (
	CapDealsDamage Capability = 1 << iota
	CapModifiesOutgoing
	CapModifiesIncoming
	CapEntryEffect
	CapBeforeAttack
)

// Ability is one rule attached to a card. Every hook is optional; a nil hook
// means the ability does not take part in that step.
type Ability struct {
	Name        string
	Description string

	// Describes lists the capabilities that must be present for the
	// description to show. Zero means any capability.
	Describes Capability

	// Attack replaces the default attack. The first ability with Attack wins.
	Attack func(c *Creature, gc *Context, done effect.Done)

	// ModifyDealtDamage transforms outgoing damage and forwards it to k,
	// which continues into the next ability down the chain.
	ModifyDealtDamage func(c *Creature, value int, target *Creature, gc *Context, k effect.Continuation)

	// ModifyTakenDamage transforms incoming damage and forwards it to k.
	ModifyTakenDamage func(c *Creature, value int, from *Creature, gc *Context, k effect.Continuation)

	// BeforeAttack runs before the creature attacks.
	BeforeAttack func(c *Creature, gc *Context, done effect.Done)

	// OnEnter and OnLeave run after the more generic abilities' hooks.
	OnEnter func(c *Creature, gc *Context, done effect.Done)
	OnLeave func(c *Creature, gc *Context, done effect.Done)
}

// Capabilities returns the hooks this ability implements.
func (a *Ability) Capabilities() Capability {
	var caps Capability
	if a.Attack != nil {
		caps |= CapDealsDamage
	}
	if a.ModifyDealtDamage != nil {
		caps |= CapModifiesOutgoing
	}
	if a.ModifyTakenDamage != nil {
		caps |= CapModifiesIncoming
	}
	if a.OnEnter != nil || a.OnLeave != nil {
		caps |= CapEntryEffect
	}
	if a.BeforeAttack != nil {
		caps |= CapBeforeAttack
	}
	return caps
}

// Has reports whether every capability in want is implemented.
func (a *Ability) Has(want Capability) bool {
	return a.Capabilities()&want == want
}

// describes reports whether the ability's text should be shown.
func (a *Ability) describes() bool {
	if a.Description == "" {
		return false
	}
	if a.Describes == 0 {
		return a.Capabilities() != 0
	}
	return a.Has(a.Describes)
}
