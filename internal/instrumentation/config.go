package instrumentation

import (
	"os"
	"strconv"
)

// Config holds the configuration for OpenTelemetry instrumentation.
type Config struct {
	// ServiceName is the name of the service (default: daybrief)
	ServiceName string

	// ServiceVersion is the version of the service
	ServiceVersion string

	// Enabled determines if instrumentation is active (default: true)
	// Set to false via INSTRUMENTATION_ENABLED=false to disable metrics
	// and tracing
	Enabled bool

	// TraceStdout enables the stdout trace exporter. One pipeline run
	// produces a handful of spans, so stdout is enough for debugging;
	// there is no collector in this deployment.
	TraceStdout bool
}

// DefaultConfig returns the instrumentation configuration with values
// from the environment applied.
func DefaultConfig(version string) Config {
	cfg := Config{
		ServiceName:    "daybrief",
		ServiceVersion: version,
		Enabled:        true,
	}

	if v := os.Getenv("INSTRUMENTATION_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = enabled
		}
	}
	if v := os.Getenv("INSTRUMENTATION_TRACE_STDOUT"); v != "" {
		if stdout, err := strconv.ParseBool(v); err == nil {
			cfg.TraceStdout = stdout
		}
	}

	return cfg
}
