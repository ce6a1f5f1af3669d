package pesim

import "fmt"

// ConfigError represents an invalid simulation parameter.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Reason)
}

// FitError represents a fit that could not be attempted on the given input.
type FitError struct {
	Name   string
	Reason string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("cannot fit %q: %s", e.Name, e.Reason)
}
