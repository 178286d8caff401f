package yaerrors

import "errors"

// ErrTeapot is reported when a method is called on a nil Error. It keeps the
// traceback printable instead of dereferencing nil.
var ErrTeapot = errors.New("backend developer is a teapot")
