// Package observability provides OpenTelemetry-based tracing, metrics, and
// structured logging for the rbkeys commands.
package observability

import (
	"io"
	"log/slog"
)

// AppMode identifies the command the binary was launched with.
type AppMode string

const (
	// ModeRun is the command session mode (interactive or scripted).
	ModeRun AppMode = "run"
	// ModeDemo prints the demo tree.
	ModeDemo AppMode = "demo"
	// ModeBench runs the timed workload.
	ModeBench AppMode = "bench"
)

const (
	defaultServiceName        = "rbkeys"
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the version of the running binary.
	ServiceVersion string

	// Environment is the deployment environment (e.g. "dev", "ci").
	Environment string

	// Mode identifies how the binary was launched.
	Mode AppMode

	// OTLPEndpoint is the OTLP gRPC collector address (e.g. "localhost:4317").
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPHeaders are additional gRPC metadata headers for the OTLP exporters.
	OTLPHeaders map[string]string

	// OTLPInsecure disables TLS for the OTLP gRPC connection.
	OTLPInsecure bool

	// Prometheus registers a Prometheus reader and exposes its scrape
	// handler in Providers.MetricsHandler.
	Prometheus bool

	// SampleRatio is the trace sampling ratio. Zero samples everything.
	SampleRatio float64

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config for zero-config startup: text logs at info
// level and no telemetry export.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		Mode:               ModeRun,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
