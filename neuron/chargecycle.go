package neuron

import "github.com/hd220/encephalon/common"

// ChargeCycle is the two-state parity tag that selects which of a neuron's
// two charge slots is being read versus written during a given encephalon
// cycle. It is deliberately a tag and not a counter: every charge read or
// write picks one of exactly two scalar slots, which is what makes a
// directed-graph update order-independent (see InternalCharge).
type ChargeCycle int

const (
	Even ChargeCycle = iota
	Odd
)

// Next returns the other parity.
func (c ChargeCycle) Next() ChargeCycle {
	if c == Even {
		return Odd
	}
	return Even
}

// Clock exposes the encephalon's cycle state to a neuron without requiring
// the neuron to own or mutate it. The encephalon is the only implementation.
type Clock interface {
	ChargeCycle() ChargeCycle
	CycleCount() common.CycleCount
}

// InternalCharge is the pair of charge slots a receiving neuron accumulates
// signed impulses into; inhibitory impulses can leave a slot negative. A
// neuron reads from the slot tagged with the
// current parity and deposits impulses into the slot tagged with the next
// parity; the current slot is zeroed after being read. Because a firing
// neuron can only ever write the *other* slot, and the slot just consumed is
// cleared, the order in which neurons are visited within a cycle cannot
// change the resulting state.
type InternalCharge struct {
	even, odd float64
}

// Charge returns the value currently held in the slot tagged by cycle.
func (c *InternalCharge) Charge(cycle ChargeCycle) float64 {
	if cycle == Even {
		return c.even
	}
	return c.odd
}

// Reset zeroes the slot tagged by cycle.
func (c *InternalCharge) Reset(cycle ChargeCycle) {
	if cycle == Even {
		c.even = 0
	} else {
		c.odd = 0
	}
}

// IntakeNext adds impulse to the slot tagged by cycle.Next(), i.e. the slot
// that will be read during the following cycle.
func (c *InternalCharge) IntakeNext(cycle ChargeCycle, impulse common.Impulse) {
	next := cycle.Next()
	if next == Even {
		c.even += float64(impulse)
	} else {
		c.odd += float64(impulse)
	}
}
