// Package device provides minimal concrete sensors and actuators that let a
// CLI drive an Encephalon end-to-end without wiring it to real hardware.
// Concrete I/O devices are deliberately outside the encephalon/iface core;
// this package exists only so cmd has something to hand that core.
package device

import (
	"fmt"
	"log"
	"math/rand"
)

// RandomSensor reports an independently drawn uniform value in [0,1) every
// time it is measured, standing in for a polled analog input.
type RandomSensor struct {
	name string
	rng  *rand.Rand
}

// NewRandomSensor constructs a RandomSensor named name, seeded from seed.
func NewRandomSensor(name string, seed int64) *RandomSensor {
	return &RandomSensor{name: name, rng: rand.New(rand.NewSource(seed))}
}

// Name implements iface.Sensor.
func (s *RandomSensor) Name() string { return s.name }

// Measure implements iface.Sensor.
func (s *RandomSensor) Measure() float64 { return s.rng.Float64() }

// ConstantSensor always reports the same fixed value, useful for reflex
// wiring tests and deterministic demo runs.
type ConstantSensor struct {
	name  string
	value float64
}

// NewConstantSensor constructs a ConstantSensor named name reporting value.
func NewConstantSensor(name string, value float64) *ConstantSensor {
	return &ConstantSensor{name: name, value: value}
}

// Name implements iface.Sensor.
func (s *ConstantSensor) Name() string { return s.name }

// Measure implements iface.Sensor.
func (s *ConstantSensor) Measure() float64 { return s.value }

// LogActuator logs every control value it receives through the standard
// logger, standing in for a physical actuator.
type LogActuator struct {
	name string
}

// NewLogActuator constructs a LogActuator named name.
func NewLogActuator(name string) *LogActuator {
	return &LogActuator{name: name}
}

// Name implements iface.Actuator.
func (a *LogActuator) Name() string { return a.name }

// SetControlValue implements iface.Actuator.
func (a *LogActuator) SetControlValue(value float64) {
	log.Printf("actuator %s: control value %.4f", a.name, value)
}

// ConsoleActuator prints every control value it receives to stdout in a
// fixed, greppable format, for interactive runs.
type ConsoleActuator struct {
	name string
}

// NewConsoleActuator constructs a ConsoleActuator named name.
func NewConsoleActuator(name string) *ConsoleActuator {
	return &ConsoleActuator{name: name}
}

// Name implements iface.Actuator.
func (a *ConsoleActuator) Name() string { return a.name }

// SetControlValue implements iface.Actuator.
func (a *ConsoleActuator) SetControlValue(value float64) {
	fmt.Printf("%s: %.4f\n", a.name, value)
}
