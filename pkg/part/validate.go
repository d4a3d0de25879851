package part

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding prevents drilling or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // no holes will be generated
	SeverityWarning                           // holes are generated, but check the input
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single problem with a descriptor.
type ValidationError struct {
	Field    string
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// Validate checks a descriptor and returns every finding. It never mutates d.
// Anything that makes Drillable false is an error because the pattern engine
// short-circuits on it; everything else is a warning.
func Validate(d Descriptor) []ValidationError {
	var errs []ValidationError

	errs = appendDimension(errs, "length", d.Length)
	errs = appendDimension(errs, "width", d.Width)
	if d.Thickness <= 0 {
		errs = append(errs, ValidationError{
			Field:    "thickness",
			Message:  fmt.Sprintf("thickness is %.4f, plunge depth falls back to hole depth", d.Thickness),
			Severity: SeverityWarning,
		})
	}
	if !d.Type.Valid() {
		errs = append(errs, ValidationError{
			Field:    "part_type",
			Message:  fmt.Sprintf("unknown part type %q, no holes are generated", d.Type),
			Severity: SeverityError,
		})
	}
	if !d.Origin.Valid() {
		errs = append(errs, ValidationError{
			Field:    "origin",
			Message:  fmt.Sprintf("unknown origin %q, treated as bottomLeft", d.Origin),
			Severity: SeverityWarning,
		})
	}
	switch d.RowConfig {
	case "", RowSingle, RowDouble:
	default:
		errs = append(errs, ValidationError{
			Field:    "row_config",
			Message:  fmt.Sprintf("unknown row config %q, treated as single", d.RowConfig),
			Severity: SeverityWarning,
		})
	}

	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func appendDimension(errs []ValidationError, field string, v float64) []ValidationError {
	var msg string
	switch {
	case math.IsNaN(v) || v <= 0:
		msg = fmt.Sprintf("%s is %.4f, must be positive", field, v)
	case v > MaxDimension:
		msg = fmt.Sprintf("%s is %.4f, must be at most %.0f", field, v, MaxDimension)
	default:
		return errs
	}
	return append(errs, ValidationError{Field: field, Message: msg, Severity: SeverityError})
}
