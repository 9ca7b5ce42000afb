// Package cut stabilises the basis of a field on a cut mesh. DoFs whose
// support barely intersects the physical domain are deactivated and, when
// their support measure is not negligible, constrained to the interpolant
// of a nearby fully active element.
package cut

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

// Geometry is the geometric mesh as seen by the stabilisation: element ids
// match the field elements.
type Geometry interface {
	ElementShape(elem int) shape.Shape
	Position(elem int, xi []float64) []float64
	ContravariantBasis(elem int, xi []float64) (utils.Matrix, error)
}

const (
	DefaultTolerance     = 1.e-8
	DefaultMaxIterations = 10
	DefaultFactor        = 1.0
	DefaultLower         = utils.MinNormalFloat64
)

type options struct {
	tolerance float64
	maxIter   int
	factor    float64
	lower     float64
	logger    *log.Logger
}

type Option func(*options)

func WithTolerance(tol float64) Option { return func(o *options) { o.tolerance = tol } }

func WithMaxIterations(n int) Option { return func(o *options) { o.maxIter = n } }

func WithUpperThresholdFactor(factor float64) Option { return func(o *options) { o.factor = factor } }

func WithLowerThreshold(lower float64) Option { return func(o *options) { o.lower = lower } }

func WithLogger(logger *log.Logger) Option { return func(o *options) { o.logger = logger } }

// Entry records how one degenerate DoF was constrained
type Entry struct {
	DoF       int
	Mask      ComponentMask
	X         []float64
	Donor     int
	ThreeRing bool
	Location  Location
}

// Report summarises a stabilisation pass
type Report struct {
	Thresholds    Thresholds
	Tolerance     float64
	MaxIterations int
	RefMeasure    float64

	Entries            []Entry // in classification order
	ThreeRingFallbacks int
	Exhausted          int
	Counts             map[dof.Status]int // component statuses after the pass
}

// Degenerate returns the number of degenerate components
func (r *Report) Degenerate() (n int) {
	for _, e := range r.Entries {
		n += e.Mask.Count()
	}
	return
}

// StabiliseBasis runs one stabilisation pass over the field, mutating DoF
// statuses and attaching constraints. supportMeasures and locations are
// indexed by DoF id. A *NoDonorError stops the pass; constraints created for
// earlier entries remain.
func StabiliseBasis(geom Geometry, f *dof.Field, supportMeasures []float64,
	locations []dof.Location, opts ...Option) (rep *Report, err error) {
	o := options{
		tolerance: DefaultTolerance,
		maxIter:   DefaultMaxIterations,
		factor:    DefaultFactor,
		lower:     DefaultLower,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	var refShape shape.Shape
	if refShape, err = validate(geom, f, supportMeasures, locations); err != nil {
		return
	}
	rep = &Report{
		Tolerance:     o.tolerance,
		MaxIterations: o.maxIter,
	}
	if len(f.Elements) == 0 {
		rep.Counts = f.StatusCount()
		return
	}
	rep.RefMeasure = refShape.RefMeasure()
	rep.Thresholds = NewThresholds(rep.RefMeasure, o.factor, o.lower)

	var (
		ix      = NewIncidenceIndex(f)
		list    = Classify(f, ix, supportMeasures, rep.Thresholds)
		search  = &RingSearch{Geometry: geom, Field: f, Index: ix}
		locator = PointLocator{Geometry: geom, Tolerance: o.tolerance, MaxIterations: o.maxIter, Logger: o.logger}
	)
	o.logger.Debug("classified", "degenerate", len(list),
		"lower", rep.Thresholds.Lower, "upper", rep.Thresholds.Upper)

	for _, dg := range list {
		loc := locations[dg.DoF]
		entry := Entry{
			DoF:  dg.DoF,
			Mask: dg.Mask,
			X:    geom.Position(loc.Element, loc.Xi),
		}
		if entry.Donor, entry.ThreeRing, err = search.Find(dg.DoF, entry.X); err != nil {
			o.logger.Error("stabilisation failed", "dof", dg.DoF, "x", entry.X)
			rep.Counts = f.StatusCount()
			return
		}
		if entry.ThreeRing {
			rep.ThreeRingFallbacks++
		}
		if entry.Location, err = locator.Locate(entry.Donor, entry.X); err != nil {
			err = fmt.Errorf("locating DoF %d in element %d: %w", dg.DoF, entry.Donor, err)
			rep.Counts = f.StatusCount()
			return
		}
		if entry.Location.Outcome == Exhausted {
			rep.Exhausted++
		}
		GenerateConstraint(f, dg.DoF, dg.Mask, entry.Donor, entry.Location.Xi)
		o.logger.Debug("constrained", "dof", dg.DoF, "donor", entry.Donor,
			"threeRing", entry.ThreeRing, "xi", entry.Location.Xi)
		rep.Entries = append(rep.Entries, entry)
	}
	rep.Counts = f.StatusCount()
	o.logger.Info("stabilised basis", "constrained", len(rep.Entries),
		"components", rep.Degenerate(), "threeRing", rep.ThreeRingFallbacks, "exhausted", rep.Exhausted)
	return
}

func validate(geom Geometry, f *dof.Field, measures []float64, locations []dof.Location) (s shape.Shape, err error) {
	if err = f.Validate(); err != nil {
		return
	}
	if f.Components > MaxComponents {
		err = fmt.Errorf("%w: field has %d, at most %d", ErrTooManyComponents, f.Components, MaxComponents)
		return
	}
	if len(measures) != len(f.DoFs) {
		err = fmt.Errorf("%w: %d support measures for %d DoFs", ErrInputSize, len(measures), len(f.DoFs))
		return
	}
	if len(locations) != len(f.DoFs) {
		err = fmt.Errorf("%w: %d locations for %d DoFs", ErrInputSize, len(locations), len(f.DoFs))
		return
	}
	for id, loc := range locations {
		if loc.Element < 0 || loc.Element >= len(f.Elements) {
			err = fmt.Errorf("%w: DoF %d located in element %d, field has %d",
				ErrInputSize, id, loc.Element, len(f.Elements))
			return
		}
	}
	for k := range f.Elements {
		if k == 0 {
			s = geom.ElementShape(0)
			continue
		}
		if t := geom.ElementShape(k); t != s {
			err = fmt.Errorf("%w: element %d is a %s, element 0 is a %s", ErrMixedShapes, k, t, s)
			return
		}
	}
	return
}
