// Package strength implements the pluggable synaptic-strength policies used
// by plastic synapses. A SynapticStrength is a scalar bounded in [0, M] that
// strengthens or weakens in response to Hebbian co-activation, and reports
// whether it has fallen beneath its weakness threshold so the owning synapse
// knows when to prune itself.
package strength

import (
	"math"

	"github.com/hd220/encephalon/common"
)

// SynapticStrength is the contract a plastic synapse delegates to for its
// scalar strength. Implementations must be monotone and bounded in [0, M],
// and must cross the weakness threshold exactly once in each direction as
// the internal parameter moves monotonically, so prune/survival stays
// well-defined.
type SynapticStrength interface {
	// Strength returns the current scalar strength.
	Strength() float64

	// Strengthen shifts the internal parameter to increase Strength.
	Strengthen()

	// Weaken shifts the internal parameter to decrease Strength.
	Weaken()

	// AboveWeaknessThreshold reports whether Strength() currently exceeds
	// the weakness threshold. A synapse survives only while this is true.
	AboveWeaknessThreshold() bool
}

// Factory constructs a fresh SynapticStrength instance, used by a neuron
// when it sprouts a new plastic synapse.
type Factory func() SynapticStrength

// Sigmoid is a SynapticStrength whose value is M*sigma(x) for an internal
// parameter x that strengthen/weaken shift by +-delta. Starting at x=0 gives
// an initial strength of M/2.
type Sigmoid struct {
	m         float64
	threshold common.Threshold
	delta     float64
	x         float64
}

// NewSigmoidFactory returns a Factory producing fresh Sigmoid instances with
// the given maximum strength M, weakness threshold, and per-event shift
// delta. Each call to the factory starts x at 0 (strength M/2).
func NewSigmoidFactory(m, threshold, delta float64) Factory {
	return func() SynapticStrength {
		return &Sigmoid{m: m, threshold: common.Threshold(threshold), delta: delta}
	}
}

// Strength returns M*sigma(x).
func (s *Sigmoid) Strength() float64 {
	return s.m / (1 + math.Exp(-s.x))
}

// Strengthen shifts x by +delta.
func (s *Sigmoid) Strengthen() {
	s.x += s.delta
}

// Weaken shifts x by -delta.
func (s *Sigmoid) Weaken() {
	s.x -= s.delta
}

// AboveWeaknessThreshold reports whether Strength() > threshold, strictly.
func (s *Sigmoid) AboveWeaknessThreshold() bool {
	return s.Strength() > float64(s.threshold)
}

// EM is a SynapticStrength following an exponential-moving-average update:
// strengthen pulls strength toward M by a factor alpha, weaken decays
// strength toward 0 by the same factor.
type EM struct {
	m         float64
	threshold common.Threshold
	alpha     float64
	strength  float64
}

// NewEMFactory returns a Factory producing fresh EM instances with the given
// maximum strength M, weakness threshold, and learning rate alpha. Each call
// to the factory starts strength at M/2.
func NewEMFactory(m, threshold, alpha float64) Factory {
	return func() SynapticStrength {
		return &EM{m: m, threshold: common.Threshold(threshold), alpha: alpha, strength: m / 2}
	}
}

// Strength returns the current EM value.
func (e *EM) Strength() float64 {
	return e.strength
}

// Strengthen applies strength += alpha*(M - strength).
func (e *EM) Strengthen() {
	e.strength += e.alpha * (e.m - e.strength)
}

// Weaken applies strength -= alpha*strength.
func (e *EM) Weaken() {
	e.strength -= e.alpha * e.strength
}

// AboveWeaknessThreshold reports whether Strength() > threshold, strictly.
func (e *EM) AboveWeaknessThreshold() bool {
	return e.strength > float64(e.threshold)
}
