package cut

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDonor is wrapped by NoDonorError
	ErrNoDonor           = errors.New("no supporting element")
	ErrInputSize         = errors.New("input size does not match the field")
	ErrTooManyComponents = errors.New("too many field components")
	ErrMixedShapes       = errors.New("elements of different shapes")
)

// NoDonorError reports a degenerate DoF for which neither the two-ring nor
// the three-ring contains a fully active element. The pass stops there.
type NoDonorError struct {
	DoF int
	X   []float64
}

func (e *NoDonorError) Error() string {
	return fmt.Sprintf("no supporting element found for DoF %d at %v", e.DoF, e.X)
}

func (e *NoDonorError) Unwrap() error { return ErrNoDonor }
