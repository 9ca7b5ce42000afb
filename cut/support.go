package cut

import (
	"fmt"
	"runtime"

	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/utils"
)

// SupportMeasures estimates, per DoF, the reference measure of its support
// inside the level set. Each element contributes its inside fraction of
// n^dim sample points times its reference measure to each of its DoFs.
// Elements are sampled in parallel, the sums are formed in element order.
func SupportMeasures(geom Geometry, f *dof.Field, ls LevelSet, n int) (measures []float64, err error) {
	if n < 1 {
		err = fmt.Errorf("need at least one sample per direction, have %d", n)
		return
	}
	var (
		contributions = make([]float64, len(f.Elements))
		pm            = utils.NewPartitionMap(runtime.NumCPU(), len(f.Elements))
	)
	pm.ParallelFor(func(_, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			contributions[k] = insideMeasure(geom, f.Elements[k].ID, ls, n)
		}
	})

	measures = make([]float64, len(f.DoFs))
	for k, e := range f.Elements {
		if contributions[k] == 0 {
			continue
		}
		var seen utils.Index
		for _, id := range e.DoFs {
			if seen.Contains(id) {
				continue
			}
			seen = append(seen, id)
			measures[id] += contributions[k]
		}
	}
	return
}

// insideMeasure is the reference measure of the element scaled by the
// fraction of its sample points inside ls
func insideMeasure(geom Geometry, elem int, ls LevelSet, n int) float64 {
	var (
		s      = geom.ElementShape(elem)
		pts    = s.SamplePoints(n)
		inside int
	)
	for _, xi := range pts {
		if Inside(ls, geom.Position(elem, xi)) {
			inside++
		}
	}
	switch inside {
	case 0:
		return 0
	case len(pts):
		return s.RefMeasure()
	}
	return s.RefMeasure() * float64(inside) / float64(len(pts))
}
