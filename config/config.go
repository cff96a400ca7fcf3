// Package config provides types and functions for managing application
// configuration: the tunables the encephalon is constructed with, and the
// process-level CLI flags that drive a run. It handles loading defaults,
// parsing CLI flags, and validating the overall configuration.
package config

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// EncoderEMA selects the ema(alpha) sensory encoder.
	EncoderEMA = "ema"
	// EncoderLinear selects the linear(y0) sensory encoder.
	EncoderLinear = "linear"
	// EncoderInverse selects the inverse sensory encoder.
	EncoderInverse = "inverse"

	// StrengthSigmoid selects the sigmoid synaptic-strength policy.
	StrengthSigmoid = "sigmoid"
	// StrengthEM selects the exponential-moving-average synaptic-strength policy.
	StrengthEM = "em"
)

// SupportedEncoders lists all valid sensory encoder names.
var SupportedEncoders = []string{EncoderEMA, EncoderLinear, EncoderInverse}

// SupportedStrengths lists all valid synaptic-strength policy names.
var SupportedStrengths = []string{StrengthSigmoid, StrengthEM}

// EncephalonParams defines the parameters an Encephalon is constructed with
// (spec.md §6 "Configuration options"): the geometry shape, the firing and
// plasticity constants, and the pluggable encoder/strength policy choices.
type EncephalonParams struct {
	// Geometry parameters (desiredPlastic, numSensory, numActuator, nearbyCount).
	DesiredPlastic int `toml:"desired_plastic"`
	NumSensory     int `toml:"num_sensory"`
	NumActuator    int `toml:"num_actuator"`
	NearbyCount    int `toml:"nearby_count"`

	// FireThreshold is the charge above which a receiver fires.
	FireThreshold float64 `toml:"fire_threshold"`
	// EMAAlpha is the smoothing constant for every neuron's EMA, in (0,1).
	EMAAlpha float64 `toml:"ema_alpha"`
	// SynapticTypeThreshold is the EMA cut separating excitatory-sprouting
	// from inhibitory-sprouting.
	SynapticTypeThreshold float64 `toml:"synaptic_type_threshold"`
	// MaxPlasticSynapses is the per-transmitter plastic synapse cap.
	MaxPlasticSynapses int `toml:"max_plastic_synapses"`

	// Encoder selects the sensory encoder: "ema", "linear", or "inverse".
	Encoder string `toml:"encoder"`
	// EncoderParam is the single parameter the chosen encoder takes (alpha
	// for "ema", y0 for "linear"; ignored for "inverse").
	EncoderParam float64 `toml:"encoder_param"`

	// Strength selects the synaptic-strength policy: "sigmoid" or "em".
	Strength string `toml:"strength"`
	// StrengthMax is the maximum strength M every plastic synapse is bounded by.
	StrengthMax float64 `toml:"strength_max"`
	// StrengthWeaknessThreshold is the strength at or below which a plastic
	// synapse is pruned.
	StrengthWeaknessThreshold float64 `toml:"strength_weakness_threshold"`
	// StrengthStep is the per-event shift: delta for "sigmoid", alpha for "em".
	StrengthStep float64 `toml:"strength_step"`
}

// CLIConfig holds configuration parameters typically set or overridden via
// command-line flags: the process-level knobs around running an encephalon,
// as opposed to the encephalon's own construction parameters.
type CLIConfig struct {
	Seed     int64  `toml:"seed"`
	Cycles   int    `toml:"cycles"`
	DbPath   string `toml:"db_path"`
	LogEvery int    `toml:"log_every"`
}

// AppConfig is the top-level configuration structure, aggregating both
// EncephalonParams and CLIConfig.
type AppConfig struct {
	Encephalon EncephalonParams `toml:"encephalon"`
	Cli        CLIConfig        `toml:"cli"`
}

// DefaultEncephalonParams returns an EncephalonParams struct populated with
// sensible defaults for a small, immediately runnable encephalon.
func DefaultEncephalonParams() EncephalonParams {
	return EncephalonParams{
		DesiredPlastic: 512,
		NumSensory:     4,
		NumActuator:    4,
		NearbyCount:    27,

		FireThreshold:         0.5,
		EMAAlpha:              0.2,
		SynapticTypeThreshold: 0.5,
		MaxPlasticSynapses:    3,

		Encoder:      EncoderInverse,
		EncoderParam: 0.2,

		Strength:                  StrengthEM,
		StrengthMax:               1.0,
		StrengthWeaknessThreshold: 0.3,
		StrengthStep:              0.1,
	}
}

// DefaultCLIConfig returns a CLIConfig populated with sensible defaults.
func DefaultCLIConfig() CLIConfig {
	return CLIConfig{
		Seed:     0,
		Cycles:   1000,
		DbPath:   "encephalon_run.db",
		LogEvery: 1,
	}
}

// LoadCLIConfig populates a CLIConfig struct by parsing flags from args
// using the given FlagSet, starting from DefaultCLIConfig(). The args slice
// should not include the program name. If the "seed" flag is left at 0 after
// parsing, it's set from the current time.
func LoadCLIConfig(fSet *flag.FlagSet, args []string) (CLIConfig, error) {
	cfg := DefaultCLIConfig()

	fSet.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the sprouting RNG (0 uses the current time).")
	fSet.IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "Number of cycles to run.")
	fSet.StringVar(&cfg.DbPath, "dbPath", cfg.DbPath, "Path for the SQLite telemetry database file.")
	fSet.IntVar(&cfg.LogEvery, "logEvery", cfg.LogEvery, "Log a telemetry row every N cycles (0 disables telemetry).")

	if err := fSet.Parse(args); err != nil {
		return cfg, fmt.Errorf("error parsing flags: %w", err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.DbPath != "" {
		cfg.DbPath = filepath.Clean(cfg.DbPath)
	}

	return cfg, nil
}

// NewAppConfig builds an AppConfig from default EncephalonParams plus a
// CLIConfig parsed from args, and validates the result. It does not load a
// TOML file; that layering (defaults -> TOML -> flags) happens in the cmd
// package, ahead of calling Validate.
func NewAppConfig(args []string) (*AppConfig, error) {
	cli, err := LoadCLIConfig(flag.NewFlagSet("encephalon", flag.ContinueOnError), args)
	if err != nil {
		return nil, fmt.Errorf("failed to load CLI config: %w", err)
	}

	appCfg := &AppConfig{
		Encephalon: DefaultEncephalonParams(),
		Cli:        cli,
	}

	if err := appCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return appCfg, nil
}

// Validate checks the AppConfig for consistency and valid values across
// EncephalonParams and CLIConfig (spec.md §7 "Configuration errors").
func (ac *AppConfig) Validate() error {
	e := ac.Encephalon

	if e.DesiredPlastic <= 0 {
		return fmt.Errorf("desiredPlastic must be positive, got %d", e.DesiredPlastic)
	}
	if e.NumSensory < 0 {
		return fmt.Errorf("numSensory must be non-negative, got %d", e.NumSensory)
	}
	if e.NumActuator < 0 {
		return fmt.Errorf("numActuator must be non-negative, got %d", e.NumActuator)
	}
	if e.NearbyCount < 0 {
		return fmt.Errorf("nearbyCount must be non-negative, got %d", e.NearbyCount)
	}
	if e.FireThreshold <= 0 {
		return fmt.Errorf("fireThreshold must be positive, got %f", e.FireThreshold)
	}
	if e.EMAAlpha <= 0 || e.EMAAlpha >= 1 {
		return fmt.Errorf("emaAlpha must be in (0,1), got %f", e.EMAAlpha)
	}
	if e.SynapticTypeThreshold < 0 {
		return fmt.Errorf("synapticTypeThreshold must be non-negative, got %f", e.SynapticTypeThreshold)
	}
	if e.MaxPlasticSynapses <= 0 {
		return fmt.Errorf("maxPlasticSynapses must be positive, got %d", e.MaxPlasticSynapses)
	}

	encoderValid := false
	for _, enc := range SupportedEncoders {
		if e.Encoder == enc {
			encoderValid = true
			break
		}
	}
	if !encoderValid {
		return fmt.Errorf("invalid encoder '%s', supported encoders are: %s", e.Encoder, strings.Join(SupportedEncoders, ", "))
	}

	strengthValid := false
	for _, s := range SupportedStrengths {
		if e.Strength == s {
			strengthValid = true
			break
		}
	}
	if !strengthValid {
		return fmt.Errorf("invalid strength policy '%s', supported policies are: %s", e.Strength, strings.Join(SupportedStrengths, ", "))
	}
	if e.StrengthMax <= 0 {
		return fmt.Errorf("strengthMax must be positive, got %f", e.StrengthMax)
	}
	if e.StrengthWeaknessThreshold < 0 || e.StrengthWeaknessThreshold > e.StrengthMax {
		return fmt.Errorf("strengthWeaknessThreshold must be between 0 and strengthMax (%f), got %f", e.StrengthMax, e.StrengthWeaknessThreshold)
	}
	if e.StrengthStep <= 0 {
		return fmt.Errorf("strengthStep must be positive, got %f", e.StrengthStep)
	}

	if ac.Cli.Cycles < 0 {
		return fmt.Errorf("cycles must be non-negative, got %d", ac.Cli.Cycles)
	}
	if ac.Cli.LogEvery < 0 {
		return fmt.Errorf("logEvery must be non-negative, got %d", ac.Cli.LogEvery)
	}
	if ac.Cli.LogEvery > 0 && strings.TrimSpace(ac.Cli.DbPath) == "" {
		return fmt.Errorf("dbPath must be specified when logEvery > 0")
	}

	return nil
}
