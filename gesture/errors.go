package gesture

import (
	"errors"
	"fmt"
)

// ErrConfig is wrapped by every startup configuration failure.
var ErrConfig = errors.New("configuration error")

// ErrTimeout is returned by a SampleSource when no sample arrived in time.
var ErrTimeout = errors.New("sample timeout")

// ConfigError names the offending option.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
