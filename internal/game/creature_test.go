package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/peterkuimelis/duckdog/internal/effect"
)

func TestCurrentPowerStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCreature(BanditDog(), 1, 0)

	for i := 0; i < 1000; i++ {
		if i%50 == 0 {
			c.SetMaxPower(rng.Intn(10))
		}
		c.SetCurrentPower(rng.Intn(41) - 20)
		if p := c.CurrentPower(); p < 0 || p > c.MaxPower() {
			t.Fatalf("write %d: power %d outside [0, %d]", i, p, c.MaxPower())
		}
	}
}

func TestSetMaxPowerReclamps(t *testing.T) {
	c := NewCreature(Thug(), 1, 0)
	c.SetMaxPower(3)
	if c.CurrentPower() != 3 {
		t.Errorf("CurrentPower = %d after lowering max to 3", c.CurrentPower())
	}
	c.SetMaxPower(8)
	c.SetCurrentPower(100)
	if c.CurrentPower() != 8 {
		t.Errorf("CurrentPower = %d, want 8", c.CurrentPower())
	}
}

func TestDescriptionsThreeLevels(t *testing.T) {
	card := DogCard("Layered", 4)
	card.Abilities = []*Ability{
		{Description: "most specific", BeforeAttack: func(c *Creature, gc *Context, done effect.Done) { done() }},
		{Description: "middle", OnEnter: func(c *Creature, gc *Context, done effect.Done) { done() }},
	}
	got := NewCreature(card, 1, 0).Descriptions()
	want := []string{"most specific", "middle", DescDog}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Descriptions = %q, want %q", got, want)
	}
}

func TestDisabledAbilityIsNotDescribed(t *testing.T) {
	a := ladAbility()
	a.ModifyDealtDamage = nil
	card := Lad()
	card.Abilities = []*Ability{a}

	got := NewCreature(card, 1, 0).Descriptions()
	if !reflect.DeepEqual(got, []string{DescDog}) {
		t.Errorf("Descriptions = %q, want only %q", got, DescDog)
	}

	bare := DuckCard("Silent", 1)
	bare.Abilities = []*Ability{{Description: "no hooks at all"}}
	if got := NewCreature(bare, 2, 0).Descriptions(); !reflect.DeepEqual(got, []string{DescDuck}) {
		t.Errorf("Descriptions = %q, want only %q", got, DescDuck)
	}
}

func TestModifiersCompose(t *testing.T) {
	var order []string
	card := DogCard("Stacked", 4)
	card.Abilities = []*Ability{
		{
			Name: "halve",
			ModifyTakenDamage: func(c *Creature, value int, from *Creature, gc *Context, k effect.Continuation) {
				order = append(order, "halve")
				k(value / 2)
			},
		},
		{
			Name: "minus one",
			ModifyTakenDamage: func(c *Creature, value int, from *Creature, gc *Context, k effect.Continuation) {
				order = append(order, "minus one")
				k(value - 1)
			},
		},
	}

	gc := newTable()
	c := NewCreature(card, 1, 0)
	got := -1
	c.ModifyTakenDamage(9, nil, gc, func(v int) { got = v })

	if got != 3 {
		t.Errorf("ModifyTakenDamage(9) = %d, want 3", got)
	}
	if !reflect.DeepEqual(order, []string{"halve", "minus one"}) {
		t.Errorf("order = %v", order)
	}
}

func TestOutgoingModifierStacksOnLad(t *testing.T) {
	card := Lad()
	card.Abilities = append([]*Ability{{
		Name: "brass knuckles",
		ModifyDealtDamage: func(c *Creature, value int, target *Creature, gc *Context, k effect.Continuation) {
			k(value + 10)
		},
	}}, card.Abilities...)

	gc := newTable()
	lad := seat(t, gc, card, 0)

	got := 0
	lad.ModifyDealtDamage(2, nil, gc, func(v int) { got = v })
	if got != 13 {
		t.Errorf("dealt = %d, want 2+10+LadBonus(1) = 13", got)
	}
}

func TestDefaultAttackHitsOppositeSlot(t *testing.T) {
	gc := newTable()
	attacker := seat(t, gc, BanditDog(), 0)
	target := seat(t, gc, PeacefulDuck(), 1)

	finished := false
	attacker.Attack(gc, func() { finished = true })

	if !finished {
		t.Fatal("attack did not complete")
	}
	if target.InPlay() {
		t.Error("Peaceful Duck survived 3 damage")
	}
	if len(gc.OppositePlayer.Table) != 0 {
		t.Errorf("opposite table = %v, want empty", gc.OppositePlayer.Table)
	}
}

func TestDefaultAttackGoesDirectOnEmptySlot(t *testing.T) {
	gc := newTable()
	seat(t, gc, PeacefulDuck(), 1)
	seat(t, gc, BanditDog(), 0)
	attacker := seat(t, gc, Thug(), 0) // slot 1, nothing opposite

	attacker.Attack(gc, func() {})
	if gc.OppositePlayer.HP != StartingHP-5 {
		t.Errorf("HP = %d, want %d", gc.OppositePlayer.HP, StartingHP-5)
	}
}

func TestDamageToRemovedCreatureIsIgnored(t *testing.T) {
	gc := newTable()
	lad := seat(t, gc, Lad(), 1)
	killer := seat(t, gc, Gatling(), 0)

	killer.DealDamageToCreature(10, lad, gc, func() {})
	if lad.InPlay() || gc.InPlay.Count(ArchetypeLad) != 0 {
		t.Fatalf("Lad not removed: inPlay=%v count=%d", lad.InPlay(), gc.InPlay.Count(ArchetypeLad))
	}

	finished := false
	killer.DealDamageToCreature(10, lad, gc, func() { finished = true })
	if !finished {
		t.Fatal("damage to removed creature did not complete")
	}
	if n := gc.InPlay.Count(ArchetypeLad); n != 0 {
		t.Errorf("Lad count = %d after hitting a removed Lad, want 0", n)
	}
}

func TestEntryAndRemovalRunGenericFirst(t *testing.T) {
	var order []string
	hook := func(label string) func(c *Creature, gc *Context, done effect.Done) {
		return func(c *Creature, gc *Context, done effect.Done) {
			order = append(order, label)
			done()
		}
	}
	card := DogCard("Layered", 3)
	card.Abilities = []*Ability{
		{Name: "specific", OnEnter: hook("enter specific"), OnLeave: hook("leave specific")},
		{Name: "generic", OnEnter: hook("enter generic"), OnLeave: hook("leave generic")},
	}

	gc := newTable()
	c := seat(t, gc, card, 0)

	destroyed := false
	gc.destroy(c, func() { destroyed = true })
	if !destroyed {
		t.Fatal("destroy did not complete")
	}

	want := []string{"enter generic", "enter specific", "leave generic", "leave specific"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if c.InPlay() || gc.CurrentPlayer.TableIndex(c) >= 0 {
		t.Error("creature still on the table")
	}
}

func TestModifierContinuationAdvancesOnce(t *testing.T) {
	calls := 0
	card := DogCard("Stutter", 4)
	card.Abilities = []*Ability{
		{
			Name: "twice",
			ModifyDealtDamage: func(c *Creature, value int, target *Creature, gc *Context, k effect.Continuation) {
				k(value + 1)
				k(value + 100)
			},
		},
		{
			Name: "count",
			ModifyDealtDamage: func(c *Creature, value int, target *Creature, gc *Context, k effect.Continuation) {
				calls++
				k(value)
			},
		},
	}

	var got []int
	NewCreature(card, 1, 0).ModifyDealtDamage(2, nil, newTable(), func(v int) { got = append(got, v) })
	if calls != 1 || !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("calls=%d got=%v, want one pass with 3", calls, got)
	}
}
