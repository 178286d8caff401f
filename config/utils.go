package config

import (
	"strings"

	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

// safetyCheck replaces a nil logger with a default base logger and says so.
func safetyCheck(log *yalogger.Logger) {
	if log == nil {
		return
	}

	if *log == nil {
		*log = yalogger.NewBaseLogger(nil).NewLogger()

		(*log).Warn("Logger is nil, using default logger")
	}
}

// toScreamingSnakeCase converts a string to SCREAMING_SNAKE_CASE.
// For example, "myVariableName" becomes "MY_VARIABLE_NAME" and acronyms stay
// whole: "HTTPResponse" becomes "HTTP_RESPONSE".
func toScreamingSnakeCase(s string) string {
	s = matchFirstCap.ReplaceAllString(s, "${1}_${2}")
	s = matchAllCap.ReplaceAllString(s, "${1}_${2}")

	return strings.ToUpper(s)
}
