package beam

import "fmt"

// DomainError is returned when the arc model is evaluated where the circle
// does not reach.
type DomainError struct {
	Z float64
	R float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("z = %g outside arc domain [%g, %g]", e.Z, -abs(e.R), abs(e.R))
}

// DegenerateError is returned when control points cannot constrain a fit.
type DegenerateError struct {
	Model  string
	Reason string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("degenerate input for %s fit: %s", e.Model, e.Reason)
}
