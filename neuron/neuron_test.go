package neuron

import (
	"math"
	"testing"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/strength"
)

func floatEquals(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < tolerance
}

// manualClock is a minimal Clock used by tests, advanced by hand.
type manualClock struct {
	count common.CycleCount
}

func (c *manualClock) ChargeCycle() ChargeCycle {
	if c.count%2 == 0 {
		return Even
	}
	return Odd
}

func (c *manualClock) CycleCount() common.CycleCount {
	return c.count
}

// noSprout never returns a sprouting target, used by tests that don't
// exercise sprouting.
type noSprout struct{}

func (noSprout) RandomNearbyReceiver(common.Position) (Receiver, bool) { return nil, false }

// stubReceiver is a Receiver whose fired state is set directly by a test.
type stubReceiver struct {
	fired   bool
	impulse common.Impulse
}

func (r *stubReceiver) IntakeImpulse(v common.Impulse) { r.impulse += v }
func (r *stubReceiver) FiredOnPrevCycle() bool         { return r.fired }

func baseConfig() Config {
	return Config{
		MaxPlasticSynapses:    3,
		SynapticTypeThreshold: 0.5,
		StrengthFactory:       strength.NewEMFactory(1.0, 0.1, 0.2),
		Sprouter:              noSprout{},
		Loc:                   common.Position("0,0,0"),
	}
}

func TestFireTrackerPrevCycleAndPrevPrev(t *testing.T) {
	var f FireTracker
	f.Set(Even, true)  // cycle 0 fired
	f.Set(Odd, false)  // cycle 1 did not fire
	if !f.FiredOnPrevCycle(Odd) {
		t.Fatalf("expected cycle 1 to see cycle 0 fired=true")
	}
	if f.FiredOnPrevCycle(Even) {
		t.Fatalf("FiredOnPrevCycle(Even) after only one Odd set should reflect stale Odd slot (false)")
	}
	f.Set(Even, true) // cycle 2
	if !f.FiredOnPrevPrev(Even) {
		t.Fatalf("expected FiredOnPrevPrev(Even) right after its second Set to return the previous Even value (true from cycle 0)")
	}
}

func TestInternalChargeTwoSlotDiscipline(t *testing.T) {
	var c InternalCharge
	c.IntakeNext(Even, 5.0) // goes into Odd slot
	if c.Charge(Even) != 0 {
		t.Fatalf("expected Even slot untouched, got %f", c.Charge(Even))
	}
	if c.Charge(Odd) != 5.0 {
		t.Fatalf("expected Odd slot to hold 5.0, got %f", c.Charge(Odd))
	}
	c.Reset(Odd)
	if c.Charge(Odd) != 0 {
		t.Fatalf("expected Odd slot reset to 0, got %f", c.Charge(Odd))
	}
}

func TestActuatorNeuronDoesNotFireAtExactThreshold(t *testing.T) {
	clock := &manualClock{count: 0}
	a := NewActuatorNeuron(clock, 1.0, 0.5)
	a.IntakeImpulse(1.0) // deposited into next (Odd) slot
	clock.count = 1
	a.RunCycle() // reads Odd slot == 1.0, threshold 1.0, strict > required
	if a.ReadEMAFrequency() != 0 {
		t.Fatalf("expected EMA to remain 0 after a non-firing cycle from 0, got %f", a.ReadEMAFrequency())
	}
	// FiredOnPrevCycle answers relative to the CALLER's current parity, so it
	// must be queried from the cycle after the one being asked about.
	clock.count = 2
	if a.FiredOnPrevCycle() {
		t.Fatalf("charge exactly equal to threshold must not fire (strict >)")
	}
}

func TestActuatorNeuronFiresAboveThresholdAndZeroesSlot(t *testing.T) {
	clock := &manualClock{count: 0}
	a := NewActuatorNeuron(clock, 1.0, 0.5)
	a.IntakeImpulse(1.5)
	clock.count = 1
	a.RunCycle()
	if a.ReadEMAFrequency() <= 0 {
		t.Fatalf("expected EMA to strictly increase after firing, got %f", a.ReadEMAFrequency())
	}
	clock.count = 2
	if !a.FiredOnPrevCycle() {
		t.Fatalf("expected actuator to fire when charge exceeds threshold")
	}
	// Slot consumed during the firing cycle (Odd) must now read 0, so a
	// later cycle with no new impulse must not fire.
	clock.count = 3
	a.RunCycle()
	clock.count = 4
	if a.FiredOnPrevCycle() {
		t.Fatalf("expected no fire on a cycle with no new impulse, since the consumed slot was zeroed")
	}
}

func TestEMABoundedAndMonotoneDirection(t *testing.T) {
	clock := &manualClock{count: 0}
	a := NewActuatorNeuron(clock, 0.5, 0.3)
	prev := a.ReadEMAFrequency()
	for i := 0; i < 20; i++ {
		a.IntakeImpulse(1.0)
		clock.count++
		a.RunCycle()
		cur := a.ReadEMAFrequency()
		if cur <= prev {
			t.Fatalf("expected EMA to strictly increase while firing every cycle: %f -> %f", prev, cur)
		}
		if cur < 0 || cur > 1 {
			t.Fatalf("EMA escaped [0,1]: %f", cur)
		}
		prev = cur
	}
}

func TestSensoryNeuronPeriodZeroNeverFires(t *testing.T) {
	clock := &manualClock{count: 0}
	n := NewSensoryNeuron(clock, 0.5, baseConfig())
	n.SetPeriod(0)
	for i := 0; i < 10; i++ {
		clock.count = common.CycleCount(i)
		n.RunCycle()
	}
	if n.ReadEMAFrequency() != 0 {
		t.Fatalf("expected EMA to stay 0 when period is 0, got %f", n.ReadEMAFrequency())
	}
}

func TestSensoryNeuronFiresOnPeriod(t *testing.T) {
	clock := &manualClock{count: 0}
	n := NewSensoryNeuron(clock, 0.5, baseConfig())
	n.SetPeriod(1)
	recv := &stubReceiver{}
	n.AddStaticSynapse(NewStaticSynapse(2.0, Excitatory, recv))

	for i := 1; i <= 3; i++ {
		clock.count = common.CycleCount(i)
		n.RunCycle()
	}
	if recv.impulse != 6.0 {
		t.Fatalf("expected 3 fires of strength 2.0 to deliver 6.0 total impulse, got %f", float64(recv.impulse))
	}

	clock.count++
	if !n.FiredOnPrevCycle() {
		t.Fatal("expected FiredOnPrevCycle to report the fire from the previous cycle")
	}
}

func TestPlasticSynapsePruneOnWeaknessThreshold(t *testing.T) {
	clock := &manualClock{count: 0}
	cfg := baseConfig()
	cfg.StrengthFactory = strength.NewEMFactory(1.0, 0.3, 0.5)
	n := NewPlasticNeuron(clock, 0.1, 0.5, cfg)

	recv := &stubReceiver{fired: false}
	n.plastic = append(n.plastic, NewPlasticSynapse(cfg.StrengthFactory(), Excitatory, recv))

	// Force two fires so FiredOnPrevPrev is true on the third cycle's prune
	// step, causing decay (target never fires) until the synapse drops
	// below its weakness threshold and is pruned.
	for i := 0; i < 6; i++ {
		clock.count = common.CycleCount(i)
		n.IntakeImpulse(1.0)
		n.RunCycle()
	}
	if n.PlasticSynapseCount() != 0 {
		t.Fatalf("expected the weak synapse to be pruned, got %d remaining", n.PlasticSynapseCount())
	}
}

func TestPlasticSynapseCapRespected(t *testing.T) {
	clock := &manualClock{count: 0}
	cfg := baseConfig()
	cfg.MaxPlasticSynapses = 2
	cfg.Sprouter = alwaysSprout{}
	n := NewPlasticNeuron(clock, 0.1, 0.5, cfg)

	for i := 0; i < 10; i++ {
		clock.count = common.CycleCount(i)
		n.RunCycle()
		if n.PlasticSynapseCount() > cfg.MaxPlasticSynapses {
			t.Fatalf("plastic synapse count %d exceeded cap %d", n.PlasticSynapseCount(), cfg.MaxPlasticSynapses)
		}
	}
}

type alwaysSprout struct{}

func (alwaysSprout) RandomNearbyReceiver(common.Position) (Receiver, bool) {
	return &stubReceiver{}, true
}
