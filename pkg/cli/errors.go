package cli

import "fmt"

// ConfigError represents a configuration that could not be loaded or is
// invalid. It is fatal at startup.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}
	return fmt.Sprintf("config error in %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(source string, err error) *ConfigError {
	return &ConfigError{
		Source: source,
		Err:    err,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
