// Package errors classifies ontograph failures so callers can decide between retrying,
// reporting bad input and giving up.
package errors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/c360/ontograph/pkg/retry"
)

// ErrorClass says how a caller should react to an error
type ErrorClass int

const (
	// ErrorTransient may succeed if retried, such as a lock wait that expired
	ErrorTransient ErrorClass = iota
	// ErrorInvalid is caller misuse and never succeeds on retry
	ErrorInvalid
	// ErrorFatal means the data or graph is unusable, such as a released graph
	ErrorFatal
)

func (ec ErrorClass) String() string {
	switch ec {
	case ErrorTransient:
		return "transient"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	}
	return "unknown"
}

var (
	// ErrInvalidArgument reports malformed or out-of-range input to a helper.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingIdentity reports an anonymous reference that cannot be resolved, either
	// because its graph was released or because the label was never registered.
	ErrMissingIdentity = errors.New("missing anonymous identity")

	// ErrLockTimeout reports that a bounded wait for the access lock expired.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	ErrGraphClosed     = errors.New("graph closed")
	ErrInvalidData     = errors.New("invalid data format")
	ErrDataCorrupted   = errors.New("data corrupted")
	ErrParsingFailed   = errors.New("parsing failed")
	ErrUnsupportedKind = errors.New("unsupported kind")

	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrKeyNotFound        = errors.New("key not found")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// sentinels gives the class of unwrapped sentinel errors. A ClassifiedError anywhere in
// the chain takes precedence.
var sentinels = map[ErrorClass][]error{
	ErrorTransient: {ErrLockTimeout, ErrStorageUnavailable, context.DeadlineExceeded},
	ErrorInvalid:   {ErrInvalidArgument, ErrInvalidData, ErrParsingFailed, ErrUnsupportedKind},
	ErrorFatal:     {ErrMissingIdentity, ErrGraphClosed, ErrDataCorrupted, ErrInvalidConfig},
}

// ClassifiedError attaches a class and its origin to an error.
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

func is(err error, class ErrorClass) bool {
	if err == nil {
		return false
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == class
	}
	for _, s := range sentinels[class] {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}

func IsTransient(err error) bool { return is(err, ErrorTransient) }
func IsInvalid(err error) bool   { return is(err, ErrorInvalid) }
func IsFatal(err error) bool     { return is(err, ErrorFatal) }

func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
func IsMissingIdentity(err error) bool { return errors.Is(err, ErrMissingIdentity) }
func IsLockTimeout(err error) bool     { return errors.Is(err, ErrLockTimeout) }

// Classify returns the class of err. Sentinels are checked fatal first, then invalid;
// anything unrecognised counts as transient.
func Classify(err error) ErrorClass {
	var ce *ClassifiedError
	switch {
	case errors.As(err, &ce):
		return ce.Class
	case IsFatal(err):
		return ErrorFatal
	case IsInvalid(err):
		return ErrorInvalid
	}
	return ErrorTransient
}

// Wrap adds context in the form "component.method: action failed: err" without
// changing the class of err
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

func wrapAs(class ErrorClass, err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return &ClassifiedError{
		Class:     class,
		Err:       wrapped,
		Message:   wrapped.Error(),
		Component: component,
		Operation: method,
	}
}

func WrapTransient(err error, component, method, action string) error {
	return wrapAs(ErrorTransient, err, component, method, action)
}

func WrapInvalid(err error, component, method, action string) error {
	return wrapAs(ErrorInvalid, err, component, method, action)
}

func WrapFatal(err error, component, method, action string) error {
	return wrapAs(ErrorFatal, err, component, method, action)
}

// InvalidArgument builds a classified ErrInvalidArgument with a formatted detail.
func InvalidArgument(component, method, format string, args ...any) error {
	return WrapInvalid(fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)),
		component, method, "argument check")
}

// MissingIdentity builds a classified ErrMissingIdentity for the given blank label.
func MissingIdentity(component, method, label string) error {
	return WrapFatal(fmt.Errorf("%w: _:%s", ErrMissingIdentity, label), component, method, "identity lookup")
}

// LockTimeout builds a classified ErrLockTimeout for a wait bounded by timeout.
func LockTimeout(component, method string, timeout time.Duration) error {
	return WrapTransient(fmt.Errorf("%w after %v", ErrLockTimeout, timeout), component, method, "lock acquisition")
}

// RetryConfig is the configurable form of the backoff applied to transient errors.
// MaxRetries counts retries after the first attempt.
type RetryConfig struct {
	MaxRetries    int           `json:"max_retries" yaml:"max_retries"`
	InitialDelay  time.Duration `json:"initial_delay" yaml:"initial_delay"`
	MaxDelay      time.Duration `json:"max_delay" yaml:"max_delay"`
	BackoffFactor float64       `json:"backoff_factor" yaml:"backoff_factor"`
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  10 * time.Millisecond,
		MaxDelay:      500 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

// ToRetryConfig converts to the pkg/retry form, with jitter on
func (rc RetryConfig) ToRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:  rc.MaxRetries + 1,
		InitialDelay: rc.InitialDelay,
		MaxDelay:     rc.MaxDelay,
		Multiplier:   rc.BackoffFactor,
		AddJitter:    true,
	}
}
