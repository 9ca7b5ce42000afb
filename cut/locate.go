package cut

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/notargets/gocut/utils"
	"gonum.org/v1/gonum/floats"
)

// Outcome of a Newton inversion
type Outcome int

const (
	Converged Outcome = iota
	Exhausted
)

func (o Outcome) String() string {
	return [...]string{"Converged", "Exhausted"}[o]
}

// Location is the result of inverting an element's geometry map at a point
type Location struct {
	Xi         []float64
	Outcome    Outcome
	Iterations int     // Newton updates applied
	Residual   float64 // |x - X(Xi)|
}

// PointLocator inverts geometry maps with a Newton iteration. The target is
// in general outside the element, so the result is an extrapolation.
type PointLocator struct {
	Geometry      Geometry
	Tolerance     float64
	MaxIterations int
	Logger        *log.Logger
}

// Locate starts from the reference centroid of the element
func (pl PointLocator) Locate(elem int, x []float64) (Location, error) {
	return pl.LocateFrom(elem, x, pl.Geometry.ElementShape(elem).Centroid())
}

// LocateFrom runs at most MaxIterations Newton steps xi += Gᵀ(x - X(xi)),
// G being the contravariant basis. When the iterations run out the last xi
// is returned as Exhausted and a warning is logged.
func (pl PointLocator) LocateFrom(elem int, x, xi0 []float64) (loc Location, err error) {
	var (
		xi  = append([]float64{}, xi0...)
		r   = make([]float64, len(x))
		res float64
	)
	residual := func() float64 {
		floats.SubTo(r, x, pl.Geometry.Position(elem, xi))
		return floats.Norm(r, 2)
	}
	for iter := 0; iter < pl.MaxIterations; iter++ {
		if res = residual(); res < pl.Tolerance {
			loc = Location{Xi: xi, Outcome: Converged, Iterations: iter, Residual: res}
			return
		}
		var G utils.Matrix
		if G, err = pl.Geometry.ContravariantBasis(elem, xi); err != nil {
			err = fmt.Errorf("newton step %d in element %d: %w", iter, elem, err)
			return
		}
		floats.Add(xi, G.Transpose().MulVec(utils.NewVector(len(r), r)).Data())
	}
	loc = Location{Xi: xi, Outcome: Exhausted, Iterations: pl.MaxIterations, Residual: residual()}
	pl.logger().Warn("reached maximal number of iterations",
		"point", x, "element", elem, "residual", loc.Residual)
	return
}

func (pl PointLocator) logger() *log.Logger {
	if pl.Logger == nil {
		return log.Default()
	}
	return pl.Logger
}
