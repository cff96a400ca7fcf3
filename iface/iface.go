// Package iface adapts external sensors and actuators to the encephalon's
// sensory and actuator neurons. These are the only points in the system
// that perform external I/O, and they run exclusively inside RunCycle.
package iface

import (
	"github.com/hd220/encephalon/encoder"
	"github.com/hd220/encephalon/neuron"
)

// Sensor is an external analog input, e.g. a polled hardware reading or a
// cached value from a request-response channel.
type Sensor interface {
	Name() string
	Measure() float64
}

// Actuator is an external analog output driven by an actuator neuron's EMA
// firing frequency.
type Actuator interface {
	Name() string
	SetControlValue(value float64)
}

// sensoryNeuron is the subset of *neuron.SensoryNeuron a SensoryInterface
// depends on.
type sensoryNeuron interface {
	SetPeriod(period uint64)
}

// SensoryInterface binds one external sensor to one sensory neuron through
// an encoding function.
type SensoryInterface struct {
	sensor Sensor
	encode encoder.Func
	neuron sensoryNeuron
}

// NewSensoryInterface constructs a SensoryInterface pairing sensor with
// neuron via encode.
func NewSensoryInterface(sensor Sensor, encode encoder.Func, n *neuron.SensoryNeuron) *SensoryInterface {
	return &SensoryInterface{sensor: sensor, encode: encode, neuron: n}
}

// RunCycle measures the sensor and sets the sensory neuron's period from
// the encoded result.
func (s *SensoryInterface) RunCycle() {
	s.neuron.SetPeriod(s.encode(s.sensor.Measure()))
}

// actuatorNeuron is the subset of *neuron.ActuatorNeuron a ActuatorInterface
// depends on.
type actuatorNeuron interface {
	ReadEMAFrequency() float64
}

// ActuatorInterface binds one actuator neuron to one external actuator.
type ActuatorInterface struct {
	neuron   actuatorNeuron
	actuator Actuator
}

// NewActuatorInterface constructs an ActuatorInterface pairing neuron with
// actuator.
func NewActuatorInterface(n *neuron.ActuatorNeuron, actuator Actuator) *ActuatorInterface {
	return &ActuatorInterface{neuron: n, actuator: actuator}
}

// RunCycle reads the actuator neuron's EMA frequency and hands it to the
// actuator as its control value.
func (a *ActuatorInterface) RunCycle() {
	a.actuator.SetControlValue(a.neuron.ReadEMAFrequency())
}
