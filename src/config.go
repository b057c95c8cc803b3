package fvavg

// Config carries the handful of numeric knobs the engine needs. It is
// built programmatically by the CLI layer from pflag values; FVAvg has
// no file-based configuration format of its own.
type Config struct {
	// Intervals is K, the number of bins per phase (K+1 points).
	Intervals int
	// DefaultPeriod is a default sample period (seconds). Validate
	// rejects a non-positive value; no engine or ingest function reads
	// it (ConvertUnedited takes its period as an argument, and
	// ReadFormattedRecording derives one from the time column).
	DefaultPeriod float64
}

// DefaultConfig returns the engine's standard settings: 100 intervals,
// a 0.01s (100Hz) default sample period.
func DefaultConfig() Config {
	return Config{
		Intervals:     100,
		DefaultPeriod: 0.01,
	}
}

// Validate checks the parameters the engine actually depends on.
func (c Config) Validate() error {
	if c.Intervals <= 0 {
		return &ParameterError{Name: "Intervals", Value: float64(c.Intervals)}
	}
	if c.DefaultPeriod <= 0 {
		return &ParameterError{Name: "DefaultPeriod", Value: c.DefaultPeriod}
	}
	return nil
}
