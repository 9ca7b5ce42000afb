package dof

import (
	"github.com/notargets/gocut/utils"
)

// Extension maps the free (Active) components to all components:
// u = E·u_free + G. Components are numbered dof*Components + component.
type Extension struct {
	E    utils.CSR
	G    utils.Vector
	Free utils.Index // global component index of every free unknown

	// Unresolved counts constraint terms whose donor is neither Active nor a
	// Dirichlet value; these are dropped, constraints are expanded one level
	Unresolved int
}

// ExtensionOperator assembles the constraint operator of the field.
// Inactive components map to zero.
func (f *Field) ExtensionOperator() (ext Extension) {
	var (
		nc      = f.Components
		nTotal  = len(f.DoFs) * nc
		freeIdx = make([]int, nTotal)
	)
	for i := range freeIdx {
		freeIdx[i] = -1
	}
	for _, d := range f.DoFs {
		for c := 0; c < nc; c++ {
			if d.IsActive(c) {
				gi := d.ID*nc + c
				freeIdx[gi] = len(ext.Free)
				ext.Free = append(ext.Free, gi)
			}
		}
	}
	E := utils.NewDOK(nTotal, max(len(ext.Free), 1))
	ext.G = utils.NewVector(nTotal)
	g := ext.G.Data()
	for _, d := range f.DoFs {
		for c := 0; c < nc; c++ {
			gi := d.ID*nc + c
			switch d.Status(c) {
			case Active:
				E.Set(gi, freeIdx[gi], 1)
			case Constrained:
				con := d.Constraint(c)
				g[gi] += con.Inhomogeneity
				for _, w := range con.Weights {
					var (
						donor = f.DoFs[w.DoF]
						gj    = w.DoF*nc + w.Component
					)
					switch {
					case donor.IsActive(w.Component):
						E.Accumulate(gi, freeIdx[gj], w.Weight)
					case donor.IsConstrained(w.Component) && donor.Constraint(w.Component).IsDirichlet():
						g[gi] += w.Weight * donor.Constraint(w.Component).Inhomogeneity
					default:
						ext.Unresolved++
					}
				}
			}
		}
	}
	E.SetReadOnly("E")
	ext.E = E.ToCSR()
	return
}

// Expand returns E·uFree + G
func (ext Extension) Expand(uFree utils.Vector) utils.Vector {
	if len(ext.Free) == 0 {
		return ext.G.Copy()
	}
	return ext.E.MulVec(uFree).Add(ext.G)
}
