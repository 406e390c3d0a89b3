package config

// Render defaults.
const (
	DefaultRenderFormat = "text"
	DefaultRenderColor  = ColorAuto
	DefaultRenderIndent = 6
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = LogFormatText
)

// Bench defaults.
const DefaultBenchSeed = 42

// DefaultBenchSizes are the tree sizes the bench command measures.
var DefaultBenchSizes = []int{1_000, 10_000, 100_000}

// DefaultBenchOrders are all supported key orders for the bench command.
var DefaultBenchOrders = []string{"shuffled", "sorted", "reversed"}
