package domain

// LogLevel is the severity of a log line. The values match log/slog.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// Verbosity returns the minimum level written for the --verbose flag.
func Verbosity(verbose bool) LogLevel {
	if verbose {
		return LogLevelDebug
	}
	return LogLevelInfo
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch {
	case l < LogLevelInfo:
		return "debug"
	case l < LogLevelWarn:
		return "info"
	case l < LogLevelError:
		return "warn"
	}
	return "error"
}
