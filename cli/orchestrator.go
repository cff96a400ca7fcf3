// Package cli provides the orchestrator that wires a config.AppConfig into a
// runnable encephalon.Encephalon, drives its cycles, and manages the
// optional SQLite telemetry logger for the life of a run.
package cli

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hd220/encephalon/common"
	"github.com/hd220/encephalon/config"
	"github.com/hd220/encephalon/device"
	"github.com/hd220/encephalon/encephalon"
	"github.com/hd220/encephalon/encoder"
	"github.com/hd220/encephalon/geometry"
	"github.com/hd220/encephalon/iface"
	"github.com/hd220/encephalon/strength"
	"github.com/hd220/encephalon/telemetry"
)

// Logger is the subset of *telemetry.Logger the orchestrator depends on, so
// tests can substitute a recording fake.
type Logger interface {
	LogCycle(cycle common.CycleCount, snapshots []encephalon.NeuronSnapshot) error
	Close() error
}

// Orchestrator builds an Encephalon from an AppConfig, runs it for the
// configured number of cycles, and logs periodic telemetry.
type Orchestrator struct {
	AppCfg *config.AppConfig
	Enc    *encephalon.Encephalon
	Logger Logger

	newLoggerFn func(dsn string) (Logger, error)
}

// NewOrchestrator creates an orchestrator for appCfg, defaulting to a real
// SQLite-backed telemetry logger.
func NewOrchestrator(appCfg *config.AppConfig) *Orchestrator {
	return &Orchestrator{
		AppCfg: appCfg,
		newLoggerFn: func(dsn string) (Logger, error) {
			return telemetry.NewSQLiteLogger(dsn)
		},
	}
}

// SetLoggerFactory allows tests to inject a fake telemetry logger.
func (o *Orchestrator) SetLoggerFactory(fn func(dsn string) (Logger, error)) {
	o.newLoggerFn = fn
}

// Run builds the encephalon, runs it for AppCfg.Cli.Cycles cycles, and logs
// telemetry every AppCfg.Cli.LogEvery cycles if enabled.
func (o *Orchestrator) Run() error {
	fmt.Println("encephalon: initializing...")
	fmt.Printf("encephalon: desiredPlastic=%d numSensory=%d numActuator=%d nearbyCount=%d\n",
		o.AppCfg.Encephalon.DesiredPlastic, o.AppCfg.Encephalon.NumSensory,
		o.AppCfg.Encephalon.NumActuator, o.AppCfg.Encephalon.NearbyCount)

	if err := o.initializeLogger(); err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	if o.Logger != nil {
		defer func() {
			if err := o.Logger.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "error closing telemetry logger: %v\n", err)
			}
		}()
	}

	if err := o.createEncephalon(); err != nil {
		return fmt.Errorf("failed to build encephalon: %w", err)
	}

	startTime := time.Now()
	if err := o.runLoop(); err != nil {
		return fmt.Errorf("error during run loop: %w", err)
	}

	fmt.Printf("encephalon: session finished after %s\n", time.Since(startTime))
	return nil
}

// initializeLogger sets up the telemetry logger if a DB path and a positive
// LogEvery are configured.
func (o *Orchestrator) initializeLogger() error {
	cfg := o.AppCfg.Cli
	if cfg.LogEvery <= 0 || strings.TrimSpace(cfg.DbPath) == "" {
		return nil
	}

	dbPath, err := o.validatePathForWrite(cfg.DbPath)
	if err != nil {
		return fmt.Errorf("invalid dbPath '%s': %w", cfg.DbPath, err)
	}

	logger, err := o.newLoggerFn(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry logger at %s: %w", dbPath, err)
	}
	o.Logger = logger
	fmt.Printf("encephalon: telemetry logging enabled at %s (every %d cycles)\n", dbPath, cfg.LogEvery)
	return nil
}

// validatePathForWrite cleans and absolutizes rawPath, and ensures its
// parent directory exists.
func (o *Orchestrator) validatePathForWrite(rawPath string) (string, error) {
	if strings.TrimSpace(rawPath) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	absPath, err := filepath.Abs(filepath.Clean(rawPath))
	if err != nil {
		return "", fmt.Errorf("could not determine absolute path for '%s': %w", rawPath, err)
	}
	parentDir := filepath.Dir(absPath)
	info, err := os.Stat(parentDir)
	if err != nil {
		return "", fmt.Errorf("parent directory '%s' does not exist: %w", parentDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("parent path '%s' is not a directory", parentDir)
	}
	return absPath, nil
}

// createEncephalon builds the geometry, encoder, strength factory, and
// demonstration sensors/actuators, and wires them into a fresh Encephalon.
func (o *Orchestrator) createEncephalon() error {
	e := o.AppCfg.Encephalon

	geo, err := geometry.NewBoxEcp(e.DesiredPlastic, e.NumSensory, e.NumActuator, e.NearbyCount)
	if err != nil {
		return fmt.Errorf("failed to build geometry: %w", err)
	}

	encode, err := buildEncoder(e.Encoder, e.EncoderParam)
	if err != nil {
		return err
	}

	strengthFactory, err := buildStrengthFactory(e.Strength, e.StrengthMax, e.StrengthWeaknessThreshold, e.StrengthStep)
	if err != nil {
		return err
	}

	sensors := make([]iface.Sensor, geo.NumSensory())
	rng := rand.New(rand.NewSource(o.AppCfg.Cli.Seed))
	for i := range sensors {
		sensors[i] = device.NewRandomSensor(fmt.Sprintf("sensor-%d", i), rng.Int63())
	}
	actuators := make([]iface.Actuator, geo.NumActuator())
	for i := range actuators {
		actuators[i] = device.NewLogActuator(fmt.Sprintf("actuator-%d", i))
	}

	enc, err := encephalon.New(
		geo, sensors, actuators,
		e.FireThreshold, e.EMAAlpha, strengthFactory,
		e.SynapticTypeThreshold, e.MaxPlasticSynapses,
		encode, nil, o.AppCfg.Cli.Seed,
	)
	if err != nil {
		return fmt.Errorf("failed to wire encephalon: %w", err)
	}
	o.Enc = enc

	fmt.Printf("encephalon: built with %d plastic, %d sensory, %d actuator neurons\n",
		geo.NumPlastic(), geo.NumSensory(), geo.NumActuator())
	return nil
}

// buildEncoder constructs an encoder.Func from the configured name and
// parameter.
func buildEncoder(name string, param float64) (encoder.Func, error) {
	switch name {
	case config.EncoderEMA:
		return encoder.EMA(param), nil
	case config.EncoderLinear:
		return encoder.Linear(param), nil
	case config.EncoderInverse:
		return encoder.Inverse, nil
	default:
		return nil, fmt.Errorf("unknown encoder %q", name)
	}
}

// buildStrengthFactory constructs a strength.Factory from the configured
// policy name and its parameters.
func buildStrengthFactory(name string, max, weaknessThreshold, step float64) (strength.Factory, error) {
	switch name {
	case config.StrengthSigmoid:
		return strength.NewSigmoidFactory(max, weaknessThreshold, step), nil
	case config.StrengthEM:
		return strength.NewEMFactory(max, weaknessThreshold, step), nil
	default:
		return nil, fmt.Errorf("unknown strength policy %q", name)
	}
}

// runLoop drives the encephalon for the configured number of cycles,
// logging telemetry every LogEvery cycles.
func (o *Orchestrator) runLoop() error {
	cycles := o.AppCfg.Cli.Cycles
	logEvery := o.AppCfg.Cli.LogEvery

	for i := 0; i < cycles; i++ {
		o.Enc.RunCycle()

		if (i+1)%10 == 0 || i == cycles-1 {
			fmt.Printf("cycle %d/%d\n", i+1, cycles)
		}

		if o.Logger != nil && logEvery > 0 && (i+1)%logEvery == 0 {
			snapshot := o.Enc.Snapshot()
			if err := o.Logger.LogCycle(common.CycleCount(i+1), snapshot); err != nil {
				return fmt.Errorf("failed to log telemetry at cycle %d: %w", i+1, err)
			}
		}
	}
	return nil
}

// CreateEncephalonForTest wraps createEncephalon for testing.
func (o *Orchestrator) CreateEncephalonForTest() error {
	return o.createEncephalon()
}

// InitializeLoggerForTest wraps initializeLogger for testing.
func (o *Orchestrator) InitializeLoggerForTest() error {
	return o.initializeLogger()
}

// RunLoopForTest wraps runLoop for testing.
func (o *Orchestrator) RunLoopForTest() error {
	return o.runLoop()
}
