package patient

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrPatientExists   = errors.New("patient already exists")
)

// ValidationError describes a single field that failed a constraint.
type ValidationError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the field-level error list returned by NewPatient and
// PatientUpdate.Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// InvalidArgumentError is returned when a query parameter is outside its
// accepted set.
type InvalidArgumentError struct {
	Param   string   `json:"param"`
	Value   string   `json:"value"`
	Allowed []string `json:"allowed"`
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: select from %s", e.Param, e.Value, strings.Join(e.Allowed, ", "))
}
