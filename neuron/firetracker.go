package neuron

// FireTracker remembers whether a neuron fired on the previous cycle and on
// the previous-previous cycle, indexed by charge-cycle parity. It holds one
// slot per parity (so it survives being queried from either phase of the
// two-cycle history) plus the single most recent pre-update value needed to
// answer "two cycles ago" precisely.
type FireTracker struct {
	values        [2]bool // indexed by ChargeCycle (Even=0, Odd=1)
	hasRecorded   bool
	lastRecorded  ChargeCycle
	prevPrevValue bool
}

// FiredOnPrevCycle reports whether the neuron fired on the cycle immediately
// before cycle.
func (f *FireTracker) FiredOnPrevCycle(cycle ChargeCycle) bool {
	return f.values[cycle.Next()]
}

// FiredOnPrevPrev reports whether the neuron fired two cycles before cycle.
// If Set has already been called for this exact cycle, the value recorded
// immediately before that call is returned (the value from two cycles ago
// relative to the update currently in progress); otherwise the slot for
// cycle itself still holds that value, since it has not yet been
// overwritten this cycle.
func (f *FireTracker) FiredOnPrevPrev(cycle ChargeCycle) bool {
	if f.hasRecorded && f.lastRecorded == cycle {
		return f.prevPrevValue
	}
	return f.values[cycle]
}

// Set records the fire/no-fire decision for cycle. After this call,
// FiredOnPrevCycle(cycle.Next()) returns fired, and FiredOnPrevPrev(cycle)
// returns whatever value was held at cycle immediately before this call.
func (f *FireTracker) Set(cycle ChargeCycle, fired bool) {
	f.prevPrevValue = f.values[cycle]
	f.lastRecorded = cycle
	f.hasRecorded = true
	f.values[cycle] = fired
}
