// Package yaerrors provides the coded error type shared by every GoYaRSA package.
//
// An Error carries a numeric code (HTTP status semantics), the sentinel cause it
// was created from and a human readable traceback. Callers match on the cause:
//
//	_, err := yarsa.Decrypt(private, blob)
//	if errors.Is(err, yarsa.ErrInvalidCiphertextLength) {
//	    // handle
//	}
//
// Each layer that returns an Error upwards should Wrap it with its own context.
package yaerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

type Error interface {
	error
	Wrap(msg string) Error
	WrapWithLog(msg string, log yalogger.Logger) Error
	Code() int
	Unwrap() error
	UnwrapLastError() string
}

const (
	codeSeparate  = " | "
	errorSeparate = " -> "
)

type yaError struct {
	code      int
	cause     error
	traceback string
}

// FromError builds an Error around cause. The cause stays reachable through
// errors.Is / errors.As.
func FromError(code int, cause error, wrap string) Error {
	return &yaError{
		code:      code,
		cause:     cause,
		traceback: fmt.Sprintf("%s: %v", wrap, cause),
	}
}

// FromErrorWithLog is FromError that also reports the message at Error level.
func FromErrorWithLog(code int, cause error, wrap string, log yalogger.Logger) Error {
	err := FromError(code, cause, wrap)

	log.Error(err.Error())

	return err
}

// FromString builds an Error with an ad-hoc cause.
func FromString(code int, msg string) Error {
	return &yaError{
		code:      code,
		cause:     errors.New(msg), //nolint:err113
		traceback: msg,
	}
}

// FromStringWithLog is FromString that also reports the message at Error level.
func FromStringWithLog(code int, msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return FromString(code, msg)
}

func (e *yaError) Error() string {
	safetyCheck(&e)

	return fmt.Sprintf("%d%s%s", e.code, codeSeparate, e.traceback)
}

func (e *yaError) Unwrap() error {
	safetyCheck(&e)

	return e.cause
}

// UnwrapLastError returns the outermost message of the traceback.
func (e *yaError) UnwrapLastError() string {
	safetyCheck(&e)

	end := strings.Index(e.traceback, errorSeparate)
	if end == -1 {
		return e.traceback
	}

	return e.traceback[:end]
}

// Wrap prepends msg to the traceback and returns the same error.
func (e *yaError) Wrap(msg string) Error {
	safetyCheck(&e)

	e.traceback = msg + errorSeparate + e.traceback

	return e
}

func (e *yaError) WrapWithLog(msg string, log yalogger.Logger) Error {
	log.Error(msg)

	return e.Wrap(msg)
}

func (e *yaError) Code() int {
	safetyCheck(&e)

	return e.code
}

// safetyCheck replaces a nil receiver with the teapot error.
func safetyCheck(err **yaError) {
	if *err == nil {
		*err = &yaError{
			code:      http.StatusTeapot,
			cause:     ErrTeapot,
			traceback: ErrTeapot.Error(),
		}
	}
}
