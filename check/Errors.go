// Package check implements the error taxonomy shared by every algorithm
// in the module and the validators that produce those errors.
//
// Three kinds of failure exist. A ConfigError reports an invalid
// hyperparameter or malformed input and is always returned before any
// iteration happens. An IndexError reports an out-of-range state,
// action, or arm index. ErrNonConvergence reports that an iteration cap
// was reached before a convergence threshold was met; it is a soft
// condition which most algorithms report through a Converged flag
// instead of an error.
package check

import (
	"errors"
	"fmt"
)

// ErrNonConvergence is reported when a sweep, iteration, or episode cap
// is reached before the convergence threshold is met.
var ErrNonConvergence = errors.New("iteration cap reached before convergence")

// ConfigError reports an invalid configuration value
type ConfigError struct {
	Param  string
	Value  interface{}
	Reason string
}

// Error satisfies the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s = %v: %s", e.Param, e.Value, e.Reason)
}

// IndexError reports an out-of-range index into a table, policy, or
// environment. Kind names what was indexed, e.g. "state" or "action".
type IndexError struct {
	Kind  string
	Index int
	Len   int
}

// Error satisfies the error interface
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Kind, e.Index,
		e.Len)
}

// Configf returns a new ConfigError
func Configf(param string, value interface{}, format string,
	args ...interface{}) error {
	return &ConfigError{Param: param, Value: value,
		Reason: fmt.Sprintf(format, args...)}
}

// IsConfig returns whether err is or wraps a ConfigError
func IsConfig(err error) bool {
	var c *ConfigError
	return errors.As(err, &c)
}

// IsIndex returns whether err is or wraps an IndexError
func IsIndex(err error) bool {
	var i *IndexError
	return errors.As(err, &i)
}

// IsNonConvergence returns whether err is or wraps ErrNonConvergence
func IsNonConvergence(err error) bool {
	return errors.Is(err, ErrNonConvergence)
}
