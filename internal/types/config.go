package types

// RunMode is the deployment mode of the service
type RunMode string

const (
	ModeLocal RunMode = "local"
	ModeAPI   RunMode = "api"
)

// LogLevel is the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
