package yalogger

import "errors"

// Level mirrors the logrus level order so values convert directly.
type Level uint8

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

type BaseLoggerType uint8

const (
	Logrus BaseLoggerType = iota
)

const (
	KeyRequestID = "request_id"
	KeyComponent = "component"
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

var ErrInvalidLogLevel = errors.New("invalid log level")
