// Package encephalon composes geometry, neurons, and sensor/actuator
// interfaces into a single runnable simulation: the Encephalon owns every
// neuron, wires them per the geometry's enumeration, installs reflexes, and
// drives the per-cycle update in the strict order the two-phase charge
// discipline depends on.
package encephalon

import (
	"fmt"
	"math/rand"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/encoder"
	"github.com/hd220/encephalon/geometry"
	"github.com/hd220/encephalon/iface"
	"github.com/hd220/encephalon/neuron"
	"github.com/hd220/encephalon/strength"
)

// Reflex is a named static synapse installed at construction, from a
// sensory neuron directly to an actuator neuron, bypassing plasticity
// entirely.
type Reflex struct {
	SensorName   string
	ActuatorName string
	Type         neuron.SynapticType
	Strength     float64
}

// Encephalon owns every neuron in the simulation, indexed by lattice
// position, plus the sensory/actuator interfaces that connect it to the
// outside world. It implements neuron.Clock and neuron.Sprouter so that
// every neuron can read the current cycle and ask for a sprouting target
// without holding a reference back to the Encephalon itself.
type Encephalon struct {
	geo geometry.Geometry
	rng *rand.Rand

	plasticNeurons  map[common.Position]*neuron.PlasticNeuron
	actuatorNeurons map[common.Position]*neuron.ActuatorNeuron
	sensoryNeurons  map[common.Position]*neuron.SensoryNeuron

	sensoryInterfaces  map[string]*iface.SensoryInterface
	actuatorInterfaces map[string]*iface.ActuatorInterface

	reflexes []Reflex

	cycleCount common.CycleCount
}

// New wires a fresh Encephalon over geo. sensors and actuators must have
// exactly geo.NumSensory() and geo.NumActuator() elements respectively, or
// construction fails. encode is the single sensory encoder bound for every
// sensory neuron; strengthFactory supplies fresh SynapticStrength instances
// to every sprouted plastic synapse. seed drives the locality RNG used by
// sprouting.
func New(
	geo geometry.Geometry,
	sensors []iface.Sensor,
	actuators []iface.Actuator,
	fireThreshold float64,
	emaAlpha float64,
	strengthFactory strength.Factory,
	synapticTypeThreshold float64,
	maxPlasticSynapses int,
	encode encoder.Func,
	reflexes []Reflex,
	seed int64,
) (*Encephalon, error) {
	if len(sensors) != geo.NumSensory() {
		return nil, fmt.Errorf("encephalon: got %d sensors, geometry requires %d", len(sensors), geo.NumSensory())
	}
	if len(actuators) != geo.NumActuator() {
		return nil, fmt.Errorf("encephalon: got %d actuators, geometry requires %d", len(actuators), geo.NumActuator())
	}

	e := &Encephalon{
		geo:                geo,
		rng:                rand.New(rand.NewSource(seed)),
		plasticNeurons:     make(map[common.Position]*neuron.PlasticNeuron),
		actuatorNeurons:    make(map[common.Position]*neuron.ActuatorNeuron),
		sensoryNeurons:     make(map[common.Position]*neuron.SensoryNeuron),
		sensoryInterfaces:  make(map[string]*iface.SensoryInterface),
		actuatorInterfaces: make(map[string]*iface.ActuatorInterface),
	}

	remainingActuators := append([]iface.Actuator(nil), actuators...)
	popActuator := func() iface.Actuator {
		last := len(remainingActuators) - 1
		a := remainingActuators[last]
		remainingActuators = remainingActuators[:last]
		return a
	}

	sensoryNeuronByName := make(map[string]neuron.Transmitter)
	actuatorNeuronByName := make(map[string]*neuron.ActuatorNeuron)

	pos, kind := geo.FirstRxLoc()
	for {
		cfg := neuron.Config{
			MaxPlasticSynapses:    maxPlasticSynapses,
			SynapticTypeThreshold: synapticTypeThreshold,
			StrengthFactory:       strengthFactory,
			Sprouter:              e,
			Loc:                   pos,
		}
		switch kind {
		case geometry.Actuator:
			n := neuron.NewActuatorNeuron(e, fireThreshold, emaAlpha)
			e.actuatorNeurons[pos] = n
			a := popActuator()
			e.actuatorInterfaces[a.Name()] = iface.NewActuatorInterface(n, a)
			actuatorNeuronByName[a.Name()] = n
		case geometry.Plastic:
			n := neuron.NewPlasticNeuron(e, fireThreshold, emaAlpha, cfg)
			e.plasticNeurons[pos] = n
		}

		next, nextKind, ok := geo.NextRxLoc(pos)
		if !ok {
			break
		}
		pos, kind = next, nextKind
	}

	remainingSensors := append([]iface.Sensor(nil), sensors...)
	popSensor := func() iface.Sensor {
		last := len(remainingSensors) - 1
		s := remainingSensors[last]
		remainingSensors = remainingSensors[:last]
		return s
	}

	// The virtual sensory plane enumerates up to L^2 positions, but only
	// the first NumSensory() of them carry an actual sensory neuron (spec
	// "up to numSensory <= L^2"); the rest of the plane is left empty.
	if geo.NumSensory() > 0 {
		sPos := geo.FirstSensoryLoc()
		for i := 0; ; i++ {
			cfg := neuron.Config{
				MaxPlasticSynapses:    maxPlasticSynapses,
				SynapticTypeThreshold: synapticTypeThreshold,
				StrengthFactory:       strengthFactory,
				Sprouter:              e,
				Loc:                   sPos,
			}
			n := neuron.NewSensoryNeuron(e, emaAlpha, cfg)
			e.sensoryNeurons[sPos] = n

			s := popSensor()
			e.sensoryInterfaces[s.Name()] = iface.NewSensoryInterface(s, encode, n)
			sensoryNeuronByName[s.Name()] = n

			if i+1 >= geo.NumSensory() {
				break
			}
			next, ok := geo.NextSensoryLoc(sPos)
			if !ok {
				break
			}
			sPos = next
		}
	}

	for _, r := range reflexes {
		sn, okS := sensoryNeuronByName[r.SensorName]
		an, okA := actuatorNeuronByName[r.ActuatorName]
		if !okS || !okA {
			continue
		}
		sn.AddStaticSynapse(neuron.NewStaticSynapse(r.Strength, r.Type, an))
	}
	e.reflexes = reflexes

	return e, nil
}

// ChargeCycle implements neuron.Clock.
func (e *Encephalon) ChargeCycle() neuron.ChargeCycle {
	if e.cycleCount%2 == 0 {
		return neuron.Even
	}
	return neuron.Odd
}

// CycleCount implements neuron.Clock.
func (e *Encephalon) CycleCount() common.CycleCount {
	return e.cycleCount
}

// RandomNearbyReceiver implements neuron.Sprouter: the locality query used
// by synapse sprouting. It forwards to the geometry's local-random
// selection and returns the receiver neuron living at that position, or
// false if the cell holds no receiver (an edge of the lattice, or the
// geometry has no valid nearby region).
func (e *Encephalon) RandomNearbyReceiver(loc common.Position) (neuron.Receiver, bool) {
	pos, ok := e.geo.LocalRandom(loc, e.rng)
	if !ok {
		return nil, false
	}
	if n, ok := e.plasticNeurons[pos]; ok {
		return n, true
	}
	if n, ok := e.actuatorNeurons[pos]; ok {
		return n, true
	}
	return nil, false
}

// NeuronSnapshot is a per-neuron telemetry sample taken at the end of a
// cycle: its lattice position, EMA firing-frequency estimate, and whether it
// fired on the just-completed cycle.
type NeuronSnapshot struct {
	Position common.Position
	EMA      float64
	Fired    bool
}

// Snapshot returns a telemetry sample for every neuron in the encephalon.
// Fired reflects the fire decision from one cycle before the most recently
// run one (FiredOnPrevCycle's query-from-the-next-cycle contract), so a
// caller taking a Snapshot after every RunCycle sees each neuron's fire
// decision with a one-cycle lag. This is purely observational — nothing
// reads a Snapshot back into the simulation.
func (e *Encephalon) Snapshot() []NeuronSnapshot {
	out := make([]NeuronSnapshot, 0, len(e.plasticNeurons)+len(e.actuatorNeurons)+len(e.sensoryNeurons))
	for pos, n := range e.sensoryNeurons {
		out = append(out, NeuronSnapshot{Position: pos, EMA: n.ReadEMAFrequency(), Fired: n.FiredOnPrevCycle()})
	}
	for pos, n := range e.plasticNeurons {
		out = append(out, NeuronSnapshot{Position: pos, EMA: n.ReadEMAFrequency(), Fired: n.FiredOnPrevCycle()})
	}
	for pos, n := range e.actuatorNeurons {
		out = append(out, NeuronSnapshot{Position: pos, EMA: n.ReadEMAFrequency(), Fired: n.FiredOnPrevCycle()})
	}
	return out
}

// RunCycle advances the encephalon by one discrete time step, in the exact
// order the two-phase charge discipline requires: increment the counter,
// run every sensory interface, run every actuator interface, run every
// sensory neuron, then run every receiver (plastic and actuator) neuron.
// Visitation order within the last two steps is unspecified and must be
// semantically irrelevant.
func (e *Encephalon) RunCycle() {
	e.cycleCount++

	for _, si := range e.sensoryInterfaces {
		si.RunCycle()
	}
	for _, ai := range e.actuatorInterfaces {
		ai.RunCycle()
	}
	for _, sn := range e.sensoryNeurons {
		sn.RunCycle()
	}
	for _, n := range e.plasticNeurons {
		n.RunCycle()
	}
	for _, n := range e.actuatorNeurons {
		n.RunCycle()
	}
}
