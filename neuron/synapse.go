package neuron

import (
	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/strength"
)

// Receiver is implemented by any neuron that can be the target of a synapse:
// it accepts impulses and reports whether it fired last cycle, which is what
// a transmitter's plasticity rule strengthens or decays against.
type Receiver interface {
	IntakeImpulse(impulse common.Impulse)
	FiredOnPrevCycle() bool
}

// SynapticType distinguishes excitatory synapses, which increase a target's
// charge, from inhibitory ones, which decrease it.
type SynapticType int

const (
	Excitatory SynapticType = iota
	Inhibitory
)

func (t SynapticType) modifier() float64 {
	if t == Inhibitory {
		return -1
	}
	return 1
}

// Synapse is the common firing contract shared by plastic and static
// synapses.
type Synapse interface {
	Fire()
}

// PlasticSynapse owns a SynapticStrength and a type, and may be strengthened,
// decayed, or pruned across cycles by its owning neuron's plasticity step.
type PlasticSynapse struct {
	strength strength.SynapticStrength
	synType  SynapticType
	target   Receiver
}

// NewPlasticSynapse constructs a plastic synapse of the given type targeting
// target, backed by a fresh strength instance.
func NewPlasticSynapse(s strength.SynapticStrength, synType SynapticType, target Receiver) *PlasticSynapse {
	return &PlasticSynapse{strength: s, synType: synType, target: target}
}

// Fire delivers sign(type)*strength() to the target's intake.
func (p *PlasticSynapse) Fire() {
	p.target.IntakeImpulse(common.Impulse(p.synType.modifier() * p.strength.Strength()))
}

// Strengthen delegates to the underlying strength's Strengthen.
func (p *PlasticSynapse) Strengthen() {
	p.strength.Strengthen()
}

// Decay delegates to the underlying strength's Weaken.
func (p *PlasticSynapse) Decay() {
	p.strength.Weaken()
}

// Connected reports whether this synapse should survive pruning.
func (p *PlasticSynapse) Connected() bool {
	return p.strength.AboveWeaknessThreshold()
}

// Target returns the synapse's receiver, used by the prune step to read the
// target's fired-last-cycle state.
func (p *PlasticSynapse) Target() Receiver {
	return p.target
}

// StaticSynapse has a constant strength and type fixed at construction. It
// never mutates and is never pruned; reflexes are installed as static
// synapses.
type StaticSynapse struct {
	strength float64
	synType  SynapticType
	target   Receiver
}

// NewStaticSynapse constructs a static synapse with a constant strength.
func NewStaticSynapse(strength float64, synType SynapticType, target Receiver) *StaticSynapse {
	return &StaticSynapse{strength: strength, synType: synType, target: target}
}

// Fire delivers sign(type)*strength to the target's intake.
func (s *StaticSynapse) Fire() {
	s.target.IntakeImpulse(common.Impulse(s.synType.modifier() * s.strength))
}
