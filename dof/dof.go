// Package dof holds the degrees of freedom of a finite element field, the
// per component status of each DoF and the linear constraints attached to
// constrained components.
package dof

import "fmt"

// Status of one component of a degree of freedom
type Status uint8

const (
	Active Status = iota
	Inactive
	Constrained
)

func (s Status) String() string {
	return [...]string{"Active", "Inactive", "Constrained"}[s]
}

// WeightedDoF is one term of a constraint: Weight times component Component
// of DoF DoF.
type WeightedDoF struct {
	DoF       int
	Component int
	Weight    float64
}

// Constraint expresses a component as Inhomogeneity + Σ Weight·u(DoF, Component)
type Constraint struct {
	Inhomogeneity float64
	Weights       []WeightedDoF
}

func (c *Constraint) AddWeightedDoF(dof, component int, weight float64) {
	c.Weights = append(c.Weights, WeightedDoF{DoF: dof, Component: component, Weight: weight})
}

// IsDirichlet reports whether the constraint fixes a value without reference
// to other DoFs
func (c *Constraint) IsDirichlet() bool { return len(c.Weights) == 0 }

// Value evaluates the constraint given the values of the referenced DoFs
func (c *Constraint) Value(u func(dof, component int) float64) (val float64) {
	val = c.Inhomogeneity
	for _, w := range c.Weights {
		val += w.Weight * u(w.DoF, w.Component)
	}
	return
}

// WeightSum is the sum of the weights, one for an interpolating partition of
// unity
func (c *Constraint) WeightSum() (sum float64) {
	for _, w := range c.Weights {
		sum += w.Weight
	}
	return
}

type DegreeOfFreedom struct {
	ID          int
	status      []Status
	constraints []*Constraint
}

// NewDegreeOfFreedom returns a DoF with all components Active
func NewDegreeOfFreedom(id, size int) *DegreeOfFreedom {
	return &DegreeOfFreedom{
		ID:          id,
		status:      make([]Status, size),
		constraints: make([]*Constraint, size),
	}
}

func (d *DegreeOfFreedom) Size() int                   { return len(d.status) }
func (d *DegreeOfFreedom) Status(comp int) Status      { return d.status[comp] }
func (d *DegreeOfFreedom) IsActive(comp int) bool      { return d.status[comp] == Active }
func (d *DegreeOfFreedom) IsConstrained(comp int) bool { return d.status[comp] == Constrained }

// IsFullyActive reports whether every component is Active
func (d *DegreeOfFreedom) IsFullyActive() bool {
	for _, s := range d.status {
		if s != Active {
			return false
		}
	}
	return true
}

// Activate and Deactivate leave a Constrained component untouched
func (d *DegreeOfFreedom) Activate(comp int) {
	if d.status[comp] != Constrained {
		d.status[comp] = Active
	}
}

func (d *DegreeOfFreedom) Deactivate(comp int) {
	if d.status[comp] != Constrained {
		d.status[comp] = Inactive
	}
}

// MakeConstraint marks the component Constrained and returns its constraint,
// creating it if absent
func (d *DegreeOfFreedom) MakeConstraint(comp int) *Constraint {
	if d.constraints[comp] == nil {
		d.constraints[comp] = &Constraint{}
	}
	d.status[comp] = Constrained
	return d.constraints[comp]
}

// Constraint returns the constraint of the component, nil unless Constrained
func (d *DegreeOfFreedom) Constraint(comp int) *Constraint {
	return d.constraints[comp]
}

// ConstrainValue fixes the component to val (Dirichlet). An existing
// constraint is replaced.
func (d *DegreeOfFreedom) ConstrainValue(comp int, val float64) {
	d.constraints[comp] = &Constraint{Inhomogeneity: val}
	d.status[comp] = Constrained
}

// ClearConstraint removes the constraint and reactivates the component
func (d *DegreeOfFreedom) ClearConstraint(comp int) {
	d.constraints[comp] = nil
	d.status[comp] = Active
}

func (d *DegreeOfFreedom) String() string {
	return fmt.Sprintf("DoF %d %v", d.ID, d.status)
}
