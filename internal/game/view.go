package game

import (
	"time"

	"github.com/peterkuimelis/duckdog/internal/effect"
)

// View is the per-creature presentation layer. Each signal schedules a visual
// effect and calls done once it has finished playing.
type View interface {
	SignalAbility(done effect.Done)
	SignalHeal(done effect.Done)
	ShowAttack(done effect.Done)
	SignalDamage(amount int, done effect.Done)
	Update()
}

// ViewFactory builds the view for a creature entering a match. Completions
// must be delivered on loop.
type ViewFactory func(c *Creature, loop *effect.Loop) View

// InstantView completes every signal immediately.
type InstantView struct{}

func (InstantView) SignalAbility(done effect.Done)            { done() }
func (InstantView) SignalHeal(done effect.Done)               { done() }
func (InstantView) ShowAttack(done effect.Done)               { done() }
func (InstantView) SignalDamage(amount int, done effect.Done) { done() }
func (InstantView) Update()                                   {}

// Base animation lengths at speed 1.
const (
	AbilityDuration = 300 * time.Millisecond
	HealDuration    = 300 * time.Millisecond
	AttackDuration  = 500 * time.Millisecond
	DamageDuration  = 200 * time.Millisecond
)

// TimedView pretends to animate by waiting the scaled animation length, then
// posts the completion back onto the match loop.
type TimedView struct {
	Loop     *effect.Loop
	Speed    *effect.Speed
	OnUpdate func()
}

// TimedViews returns a factory of TimedViews sharing speed. A nil speed uses
// effect.DefaultSpeed. onUpdate, if set, is called on the loop whenever a
// creature's power or ceiling changes.
func TimedViews(speed *effect.Speed, onUpdate func(c *Creature)) ViewFactory {
	return func(c *Creature, loop *effect.Loop) View {
		v := &TimedView{Loop: loop, Speed: speed}
		if onUpdate != nil {
			v.OnUpdate = func() { onUpdate(c) }
		}
		return v
	}
}

func (v *TimedView) SignalAbility(done effect.Done)            { v.after(AbilityDuration, done) }
func (v *TimedView) SignalHeal(done effect.Done)               { v.after(HealDuration, done) }
func (v *TimedView) ShowAttack(done effect.Done)               { v.after(AttackDuration, done) }
func (v *TimedView) SignalDamage(amount int, done effect.Done) { v.after(DamageDuration, done) }

func (v *TimedView) Update() {
	if v.OnUpdate != nil {
		v.OnUpdate()
	}
}

func (v *TimedView) after(d time.Duration, done effect.Done) {
	speed := v.Speed
	if speed == nil {
		speed = effect.DefaultSpeed
	}
	time.AfterFunc(speed.Scale(d), func() { v.Loop.Post(done) })
}
