package cut

import (
	"github.com/notargets/gocut/dof"
)

// GenerateConstraint makes the masked components of DoF id the donor
// element's interpolant at xi: every donor DoF j adds (j, c, φ_j(xi)) to the
// constraint of component c. Weights are not renormalised.
func GenerateConstraint(f *dof.Field, id int, mask ComponentMask, donor int, xi []float64) {
	var (
		d     = f.DoFs[id]
		e     = f.Elements[donor]
		phi   = e.Basis.Evaluate(xi)
		comps = mask.Components()
	)
	for j, donorDoF := range e.DoFs {
		for _, c := range comps {
			d.MakeConstraint(c).AddWeightedDoF(donorDoF, c, phi[j])
		}
	}
}
