// Package neuron implements the three neuron kinds of the encephalon
// simulation (sensory, plastic, actuator), the charge-cycle discipline that
// makes their cyclic-graph update order-independent, and the plastic
// synapses that connect them.
package neuron

import (
	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/strength"
)

// Sprouter is implemented by the encephalon: it answers a neuron's request
// for a nearby receiver neuron to sprout a new plastic synapse toward.
type Sprouter interface {
	RandomNearbyReceiver(loc common.Position) (Receiver, bool)
}

// Transmitter is implemented by neurons that own outgoing synapses
// (sensory and plastic neurons) and can have a static reflex synapse
// installed onto them.
type Transmitter interface {
	AddStaticSynapse(s *StaticSynapse)
	PlasticSynapseCount() int
}

func updateEMA(ema, alpha float64, fired bool) float64 {
	if fired {
		return alpha + (1-alpha)*ema
	}
	return (1 - alpha) * ema
}

// Config bundles the plasticity parameters shared by sensory and plastic
// neurons, supplied by the encephalon at construction.
type Config struct {
	MaxPlasticSynapses    int
	SynapticTypeThreshold float64
	StrengthFactory       strength.Factory
	Sprouter              Sprouter
	Loc                   common.Position
}

// synapses holds the outgoing-synapse machinery shared by sensory and
// plastic neurons: the plastic and static synapse lists, the per-neuron cap,
// and the sprouting parameters.
type synapses struct {
	plastic []*PlasticSynapse
	static  []*StaticSynapse
	cfg     Config
}

// AddStaticSynapse appends a static synapse to the transmitter's static
// list. Used by the encephalon to install reflexes.
func (s *synapses) AddStaticSynapse(syn *StaticSynapse) {
	s.static = append(s.static, syn)
}

// PlasticSynapseCount returns the number of currently-connected plastic
// synapses.
func (s *synapses) PlasticSynapseCount() int {
	return len(s.plastic)
}

func (s *synapses) fire() {
	for _, p := range s.plastic {
		p.Fire()
	}
	for _, st := range s.static {
		st.Fire()
	}
}

// pruneAndSprout runs the shared prune/sprout step (spec.md §4.C.1 steps 1-2,
// §4.C.2 step 1): strengthen/decay plastic synapses when the neuron fired
// two cycles ago, remove any that fell below their weakness threshold every
// cycle regardless, then attempt to sprout one new synapse if under cap.
func (s *synapses) pruneAndSprout(firedTwoCyclesAgo bool, ema float64) {
	kept := s.plastic[:0]
	for _, syn := range s.plastic {
		if firedTwoCyclesAgo {
			if syn.Target().FiredOnPrevCycle() {
				syn.Strengthen()
			} else {
				syn.Decay()
			}
		}
		if syn.Connected() {
			kept = append(kept, syn)
		}
	}
	s.plastic = kept

	if len(s.plastic) >= s.cfg.MaxPlasticSynapses {
		return
	}
	target, ok := s.cfg.Sprouter.RandomNearbyReceiver(s.cfg.Loc)
	if !ok {
		return
	}
	synType := Excitatory
	if ema >= s.cfg.SynapticTypeThreshold {
		synType = Inhibitory
	}
	s.plastic = append(s.plastic, NewPlasticSynapse(s.cfg.StrengthFactory(), synType, target))
}

// SensoryNeuron is a transmit-only neuron driven by an external sensor via a
// SensoryInterface. It fires whenever its period divides the encephalon's
// cycle count.
type SensoryNeuron struct {
	synapses
	clock   Clock
	period  uint64
	tracker FireTracker
	ema     float64
	alpha   float64
}

// NewSensoryNeuron constructs a sensory neuron driven by clock, with the
// given EMA smoothing constant and plasticity configuration.
func NewSensoryNeuron(clock Clock, alpha float64, cfg Config) *SensoryNeuron {
	return &SensoryNeuron{clock: clock, alpha: alpha, synapses: synapses{cfg: cfg}}
}

// SetPeriod sets the cycle period at which this neuron fires. A period of 0
// means the neuron never fires.
func (n *SensoryNeuron) SetPeriod(period uint64) {
	n.period = period
}

// RunCycle executes one per-cycle procedure: prune/sprout, then fire if due.
func (n *SensoryNeuron) RunCycle() {
	cycle := n.clock.ChargeCycle()
	n.pruneAndSprout(n.tracker.FiredOnPrevPrev(cycle), n.ema)

	if n.period != 0 && uint64(n.clock.CycleCount())%n.period == 0 {
		n.fire()
		n.ema = updateEMA(n.ema, n.alpha, true)
		n.tracker.Set(cycle, true)
	} else {
		n.ema = updateEMA(n.ema, n.alpha, false)
		n.tracker.Set(cycle, false)
	}
}

// ReadEMAFrequency returns the neuron's current EMA firing-frequency
// estimate.
func (n *SensoryNeuron) ReadEMAFrequency() float64 {
	return n.ema
}

// FiredOnPrevCycle reports whether this neuron fired on the previous cycle.
func (n *SensoryNeuron) FiredOnPrevCycle() bool {
	return n.tracker.FiredOnPrevCycle(n.clock.ChargeCycle())
}

// PlasticNeuron both receives and transmits: it accumulates charge,
// threshold-fires, and participates in plasticity like SensoryNeuron.
type PlasticNeuron struct {
	synapses
	clock     Clock
	charge    InternalCharge
	threshold common.Threshold
	tracker   FireTracker
	ema       float64
	alpha     float64
}

// NewPlasticNeuron constructs a plastic neuron driven by clock, with the
// given fire threshold, EMA smoothing constant, and plasticity
// configuration.
func NewPlasticNeuron(clock Clock, threshold, alpha float64, cfg Config) *PlasticNeuron {
	return &PlasticNeuron{clock: clock, threshold: common.Threshold(threshold), alpha: alpha, synapses: synapses{cfg: cfg}}
}

// IntakeImpulse deposits a signed impulse into the next-parity charge slot.
func (n *PlasticNeuron) IntakeImpulse(impulse common.Impulse) {
	n.charge.IntakeNext(n.clock.ChargeCycle(), impulse)
}

// FiredOnPrevCycle reports whether this neuron fired on the previous cycle.
func (n *PlasticNeuron) FiredOnPrevCycle() bool {
	return n.tracker.FiredOnPrevCycle(n.clock.ChargeCycle())
}

// RunCycle executes one per-cycle procedure: prune/sprout, threshold-fire,
// then zero the consumed charge slot.
func (n *PlasticNeuron) RunCycle() {
	cycle := n.clock.ChargeCycle()
	n.pruneAndSprout(n.tracker.FiredOnPrevPrev(cycle), n.ema)

	if n.charge.Charge(cycle) > float64(n.threshold) {
		n.fire()
		n.ema = updateEMA(n.ema, n.alpha, true)
		n.tracker.Set(cycle, true)
	} else {
		n.ema = updateEMA(n.ema, n.alpha, false)
		n.tracker.Set(cycle, false)
	}
	n.charge.Reset(cycle)
}

// ReadEMAFrequency returns the neuron's current EMA firing-frequency
// estimate.
func (n *PlasticNeuron) ReadEMAFrequency() float64 {
	return n.ema
}

// ActuatorNeuron is a receive-only neuron whose EMA firing-frequency
// estimate is read out by an ActuatorInterface as the control value for an
// external actuator.
type ActuatorNeuron struct {
	clock     Clock
	charge    InternalCharge
	threshold common.Threshold
	tracker   FireTracker
	ema       float64
	alpha     float64
}

// NewActuatorNeuron constructs an actuator neuron driven by clock, with the
// given fire threshold and EMA smoothing constant.
func NewActuatorNeuron(clock Clock, threshold, alpha float64) *ActuatorNeuron {
	return &ActuatorNeuron{clock: clock, threshold: common.Threshold(threshold), alpha: alpha}
}

// IntakeImpulse deposits a signed impulse into the next-parity charge slot.
func (n *ActuatorNeuron) IntakeImpulse(impulse common.Impulse) {
	n.charge.IntakeNext(n.clock.ChargeCycle(), impulse)
}

// FiredOnPrevCycle reports whether this neuron fired on the previous cycle.
func (n *ActuatorNeuron) FiredOnPrevCycle() bool {
	return n.tracker.FiredOnPrevCycle(n.clock.ChargeCycle())
}

// RunCycle executes one per-cycle procedure: threshold-test, update EMA and
// tracker, then zero the consumed charge slot. An actuator has no outgoing
// synapses to fire.
func (n *ActuatorNeuron) RunCycle() {
	cycle := n.clock.ChargeCycle()
	if n.charge.Charge(cycle) > float64(n.threshold) {
		n.ema = updateEMA(n.ema, n.alpha, true)
		n.tracker.Set(cycle, true)
	} else {
		n.ema = updateEMA(n.ema, n.alpha, false)
		n.tracker.Set(cycle, false)
	}
	n.charge.Reset(cycle)
}

// ReadEMAFrequency returns the neuron's current EMA firing-frequency
// estimate, which is always in [0, 1] and is the actuator's analog output.
func (n *ActuatorNeuron) ReadEMAFrequency() float64 {
	return n.ema
}
