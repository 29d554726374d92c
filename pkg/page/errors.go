package page

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks configuration errors: a required page-config
	// field is absent or the page kind is unknown.
	ErrInvalidConfig = errors.New("page: invalid config")
	// ErrMissingData marks data that lacks every key the config relies on.
	ErrMissingData = errors.New("page: missing data")
)

// ConfigError describes a page configuration problem.
type ConfigError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("page: invalid %s config: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("page: invalid %s config: %s: %s", e.Kind, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// DataError describes data that cannot back a page.
type DataError struct {
	Kind   Kind
	Keys   []string
	Reason string
}

func (e *DataError) Error() string {
	if len(e.Keys) == 0 {
		return fmt.Sprintf("page: %s data: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("page: %s data: %s (expected one of %v)", e.Kind, e.Reason, e.Keys)
}

// Unwrap lets errors.Is match ErrMissingData.
func (e *DataError) Unwrap() error {
	return ErrMissingData
}

func configErr(kind Kind, field, reason string) error {
	return &ConfigError{Kind: kind, Field: field, Reason: reason}
}

func dataErr(kind Kind, keys []string, reason string) error {
	return &DataError{Kind: kind, Keys: keys, Reason: reason}
}

func indexed(list string, i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, field)
}
