// Package simerr defines the typed, fatal error kinds the simulation core
// can raise. Every kind follows the teacher's MatchError shape: a small
// struct carrying the fields needed to diagnose it, with a constructor and
// an Error() string that prefixes the kind's name.
package simerr

import "fmt"

// ConfigurationError reports malformed input tables or configuration,
// surfaced before the kernel starts.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configurationError[%s]: %s", e.Field, e.Message)
}

func NewConfigurationError(field, message string) error {
	return &ConfigurationError{Field: field, Message: message}
}

// CapacityExhausted reports that a booker could not find any slot within
// the forward horizon — a fatal invariant violation, never retried.
type CapacityExhausted struct {
	Day        float64
	Clinic     int
	BookerKind string
}

func (e *CapacityExhausted) Error() string {
	return fmt.Sprintf("capacityExhausted: booker %s found no slot at or after day %.1f for clinic %d", e.BookerKind, e.Day, e.Clinic)
}

func NewCapacityExhausted(day float64, clinic int, bookerKind string) error {
	return &CapacityExhausted{Day: day, Clinic: clinic, BookerKind: bookerKind}
}

// UnknownPriority reports a priority value outside {1,2} reaching a branch
// that requires one — an internal bug, not a data-quality issue.
type UnknownPriority struct {
	Priority int
}

func (e *UnknownPriority) Error() string {
	return fmt.Sprintf("unknownPriority: %d", e.Priority)
}

func NewUnknownPriority(priority int) error {
	return &UnknownPriority{Priority: priority}
}

// DistributionDomainError reports a distribution constructed with
// out-of-domain parameters (e.g. a Lognormal with non-positive mean or
// stdev), rejected at construction.
type DistributionDomainError struct {
	Distribution string
	Message      string
}

func (e *DistributionDomainError) Error() string {
	return fmt.Sprintf("distributionDomainError[%s]: %s", e.Distribution, e.Message)
}

func NewDistributionDomainError(distribution, message string) error {
	return &DistributionDomainError{Distribution: distribution, Message: message}
}
