package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure. It contains
// settings for the environment and the solving pipeline.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Solver contains all solving pipeline related configurations
	Solver struct {
		// Unknown is the name of the variable equations are solved for
		Unknown string `env:"SOLVER_UNKNOWN" env-default:"x" yaml:"unknown"`
		// InitialGuess is the starting point of the numeric iteration
		InitialGuess float64 `env:"SOLVER_INITIAL_GUESS" env-default:"1.0" yaml:"initialGuess"`
		// Tolerance is the numeric convergence criterion
		Tolerance float64 `env:"SOLVER_TOLERANCE" env-default:"1e-9" yaml:"tolerance"`
		// AcceptTolerance is the residual bound for accepting a numeric root
		AcceptTolerance float64 `env:"SOLVER_ACCEPT_TOLERANCE" env-default:"1e-6" yaml:"acceptTolerance"`
		// MaxIterations caps the numeric iteration count
		MaxIterations int `env:"SOLVER_MAX_ITERATIONS" env-default:"100" yaml:"maxIterations"`
		// Precision is the number of fractional digits shown for numeric roots
		Precision int `env:"SOLVER_PRECISION" env-default:"8" yaml:"precision"`
		// AlwaysNumeric runs the numeric stage even when an exact finite
		// solution set was already found
		AlwaysNumeric bool `env:"SOLVER_ALWAYS_NUMERIC" env-default:"false" yaml:"alwaysNumeric"`
	} `yaml:"solver"`
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. A missing config file is not an error: the configuration is then
// read from environment variables and defaults alone.
func Load(configPath string) (*Config, error) {
	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
