package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// PlanPath is a single .hcl plan file or a directory of them.
	PlanPath string

	LogFormat string // "text" or "json"
	LogLevel  string // "debug", "info", "warn", "error"

	// WorkerLimit bounds concurrent probe execution. Zero means unbounded.
	WorkerLimit int
	// GraceSeconds is the timeout slack added to each task's duration.
	GraceSeconds int
	// HealthcheckPort serves an HTTP aliveness endpoint during a run.
	// Zero disables it.
	HealthcheckPort int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	if cfg.GraceSeconds < 0 {
		return nil, errors.New("GraceSeconds cannot be negative")
	}
	return &cfg, nil
}
