// Package logging defines the log levels used by geounion's executor.
package logging

const (
	// TraceLevel logs everything, including per-geometry events
	TraceLevel = iota
	// DebugLevel logs reduction and transfer internals
	DebugLevel
	// InfoLevel logs group lifecycle events
	InfoLevel
	// WarnLevel logs recoverable problems, such as ignored geometry errors
	WarnLevel
	// ErrorLevel logs failures which abort an aggregation group
	ErrorLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "TRACE"
	}
}
