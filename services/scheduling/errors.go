package scheduling

import "fmt"

// ConfigError indicates a missing or invalid service profile. This is a
// deployment defect: fatal for the request and logged loudly.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewConfigError(msg string) error {
	return &ConfigError{
		Code:    "configurationError",
		Message: msg,
	}
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	_, ok := err.(*ConfigError)
	return ok
}
