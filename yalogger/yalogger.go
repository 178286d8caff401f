// Package yalogger is the structured logging facade used across GoYaRSA.
//
// Libraries accept a Logger and fall back to NewDiscardLogger when none is
// given, so nothing is printed unless the caller asks for it:
//
//	base := yalogger.NewBaseLogger(&yalogger.Config{Level: yalogger.InfoLevel})
//	log := base.NewLogger().WithRandomRequestID()
//	log.Infof("generating %d-bit key", 2048)
package yalogger

import "github.com/google/uuid"

// Config defines the configuration options for the logger.
//
// BaseLoggerType: The type of logger to use (e.g., Logrus).
// Level: The minimum log level to output (e.g., Info).
// FullTimestamp: Whether to include the full timestamp in log messages.
// DisableTimestamp: Whether to disable timestamps in log messages.
// TimestampFormat: The format to use for timestamps in log messages.
type Config struct {
	BaseLoggerType   BaseLoggerType
	Level            Level
	FullTimestamp    bool
	DisableTimestamp bool
	TimestampFormat  string
}

// BaseLogger creates Logger instances sharing one output and level.
type BaseLogger interface {
	NewLogger() Logger
}

// Logger defines a structured logging interface with key-value context.
// With* methods return a new Logger and never modify the receiver.
type Logger interface {
	// Info logs a message at the Info level.
	//
	// Example usage:
	//
	//   logger.Info("Key pair generated")
	Info(msg string)

	// Infof logs a formatted message at the Info level.
	//
	// Example usage:
	//
	//   logger.Infof("Modulus has %d bits", bits)
	Infof(format string, args ...any)

	Trace(msg string)
	Tracef(format string, args ...any)

	// Error logs a message at the Error level.
	Error(msg string)
	Errorf(format string, args ...any)

	Warn(msg string)
	Warnf(format string, args ...any)

	// Debug logs a message at the Debug level.
	//
	// Example usage:
	//
	//   logger.Debug("Prime candidate rejected")
	Debug(msg string)
	Debugf(format string, args ...any)

	// Fatal logs a message at the Fatal level and terminates the process.
	Fatal(msg string)
	Fatalf(format string, args ...any)

	// WithField returns a logger with a single field added to the context.
	//
	// Example usage:
	//
	//   logger.WithField("bits", 2048)
	WithField(key string, value any) Logger

	// WithFields returns a logger with multiple fields added to the context.
	WithFields(fields map[string]any) Logger

	// WithRequestUUID returns a logger carrying id as the request id.
	WithRequestUUID(id uuid.UUID) Logger

	// WithRandomRequestID returns a logger carrying a fresh random UUID as the
	// request id. Used to correlate all lines of one key generation.
	WithRandomRequestID() Logger

	// GetFields returns a copy of the current context fields.
	GetFields() map[string]any

	// GetField returns a single context field or nil.
	GetField(key string) any
}
