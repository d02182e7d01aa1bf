package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds the environment defaults of the persistent flags. Flags set
// on the command line win.
type envConfig struct {
	Locale    string  `env:"FAKEGEN_LOCALE"`
	Seed      *uint64 `env:"FAKEGEN_SEED"`
	DataDir   string  `env:"FAKEGEN_DATA_DIR"`
	DB        string  `env:"FAKEGEN_DB"`
	LogLevel  string  `env:"FAKEGEN_LOG_LEVEL"`
	LogFormat string  `env:"FAKEGEN_LOG_FORMAT"`
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
