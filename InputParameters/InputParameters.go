package InputParameters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/shape"
)

// MeshParameters either name a mesh file or describe a structured box
type MeshParameters struct {
	File      string    `yaml:"File" toml:"File"`
	Shape     string    `yaml:"Shape" toml:"Shape"`
	Divisions []int     `yaml:"Divisions" toml:"Divisions"`
	Lower     []float64 `yaml:"Lower" toml:"Lower"`
	Upper     []float64 `yaml:"Upper" toml:"Upper"`
}

// GeometryParameters describe one implicit body: Sphere (Center, Radius),
// HalfSpace (Center, Normal) or Cylinder (Center, Axis, Radius). Complement
// swaps inside and outside.
type GeometryParameters struct {
	Type       string    `yaml:"Type" toml:"Type"`
	Center     []float64 `yaml:"Center" toml:"Center"`
	Radius     float64   `yaml:"Radius" toml:"Radius"`
	Normal     []float64 `yaml:"Normal" toml:"Normal"`
	Axis       []float64 `yaml:"Axis" toml:"Axis"`
	Complement bool      `yaml:"Complement" toml:"Complement"`
}

// DirichletParameters fix Components (all when empty) on a mesh boundary
type DirichletParameters struct {
	Boundary   string  `yaml:"Boundary" toml:"Boundary"`
	Components []int   `yaml:"Components" toml:"Components"`
	Value      float64 `yaml:"Value" toml:"Value"`
}

// Parameters obtained from the YAML or TOML input file
type StabiliseParameters struct {
	Title                string                `yaml:"Title" toml:"Title"`
	Mesh                 MeshParameters        `yaml:"Mesh" toml:"Mesh"`
	PolynomialOrder      int                   `yaml:"PolynomialOrder" toml:"PolynomialOrder"`
	Components           int                   `yaml:"Components" toml:"Components"`
	Geometry             []GeometryParameters  `yaml:"Geometry" toml:"Geometry"` // Intersected
	Samples              int                   `yaml:"Samples" toml:"Samples"`
	Tolerance            float64               `yaml:"Tolerance" toml:"Tolerance"`
	MaxIterations        *int                  `yaml:"MaxIterations" toml:"MaxIterations"`
	UpperThresholdFactor float64               `yaml:"UpperThresholdFactor" toml:"UpperThresholdFactor"`
	LowerThreshold       float64               `yaml:"LowerThreshold" toml:"LowerThreshold"`
	Dirichlet            []DirichletParameters `yaml:"Dirichlet" toml:"Dirichlet"`
	Output               string                `yaml:"Output" toml:"Output"`
}

func (ip *StabiliseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *StabiliseParameters) ParseTOML(data []byte) error {
	_, err := toml.Decode(string(data), ip)
	return err
}

// ReadFile parses a .toml file as TOML and anything else as YAML, then
// applies defaults and validates.
func ReadFile(path string) (ip *StabiliseParameters, err error) {
	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &StabiliseParameters{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = ip.ParseTOML(data)
	} else {
		err = ip.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	ip.SetDefaults()
	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}

// SetDefaults fills unset values with the stabilisation defaults
func (ip *StabiliseParameters) SetDefaults() {
	if ip.PolynomialOrder == 0 {
		ip.PolynomialOrder = 1
	}
	if ip.Components == 0 {
		ip.Components = 1
	}
	if ip.Samples == 0 {
		ip.Samples = 8
	}
	if ip.Tolerance == 0 {
		ip.Tolerance = cut.DefaultTolerance
	}
	if ip.MaxIterations == nil {
		n := cut.DefaultMaxIterations
		ip.MaxIterations = &n
	}
	if ip.UpperThresholdFactor == 0 {
		ip.UpperThresholdFactor = cut.DefaultFactor
	}
	if ip.LowerThreshold == 0 {
		ip.LowerThreshold = cut.DefaultLower
	}
	if ip.Mesh.File == "" && ip.Mesh.Shape != "" {
		if s, err := shape.NewShape(ip.Mesh.Shape); err == nil {
			if len(ip.Mesh.Lower) == 0 {
				ip.Mesh.Lower = make([]float64, s.Dim())
			}
			if len(ip.Mesh.Upper) == 0 {
				ip.Mesh.Upper = make([]float64, s.Dim())
				for d := range ip.Mesh.Upper {
					ip.Mesh.Upper[d] = 1
				}
			}
		}
	}
}

func (ip *StabiliseParameters) Validate() error {
	if ip.Mesh.File == "" {
		if _, err := shape.NewShape(ip.Mesh.Shape); err != nil {
			return fmt.Errorf("mesh needs a File or a Shape: %w", err)
		}
	}
	if len(ip.Geometry) == 0 {
		return fmt.Errorf("no Geometry given")
	}
	if ip.Tolerance < 0 || *ip.MaxIterations < 0 || ip.LowerThreshold < 0 {
		return fmt.Errorf("Tolerance, MaxIterations and LowerThreshold must not be negative")
	}
	if ip.Components < 1 || ip.Components > cut.MaxComponents {
		return fmt.Errorf("Components must be in [1,%d], have %d", cut.MaxComponents, ip.Components)
	}
	for _, g := range ip.Geometry {
		if _, err := g.LevelSet(); err != nil {
			return err
		}
	}
	return nil
}

// LevelSet builds the implicit geometry described by g
func (g GeometryParameters) LevelSet() (ls cut.LevelSet, err error) {
	switch strings.ToLower(g.Type) {
	case "sphere", "circle", "ball":
		if g.Radius <= 0 || len(g.Center) == 0 {
			return nil, fmt.Errorf("sphere needs a Center and a positive Radius")
		}
		ls = cut.Sphere{Center: g.Center, Radius: g.Radius}
	case "halfspace", "plane":
		if len(g.Normal) == 0 || len(g.Normal) != len(g.Center) {
			return nil, fmt.Errorf("halfspace needs a Center and a Normal of the same length")
		}
		ls = cut.HalfSpace{Point: g.Center, Normal: g.Normal}
	case "cylinder":
		if g.Radius <= 0 || len(g.Center) == 0 {
			return nil, fmt.Errorf("cylinder needs a Center and a positive Radius")
		}
		if len(g.Center) == 3 && len(g.Axis) != 3 {
			return nil, fmt.Errorf("cylinder in three dimensions needs an Axis")
		}
		ls = cut.Cylinder{Point: g.Center, Axis: g.Axis, Radius: g.Radius}
	default:
		return nil, fmt.Errorf("unknown geometry type %q", g.Type)
	}
	if g.Complement {
		ls = cut.Complement{LevelSet: ls}
	}
	return
}

// LevelSet intersects all geometries
func (ip *StabiliseParameters) LevelSet() (cut.LevelSet, error) {
	var body cut.Intersection
	for _, g := range ip.Geometry {
		ls, err := g.LevelSet()
		if err != nil {
			return nil, err
		}
		body = append(body, ls)
	}
	if len(body) == 1 {
		return body[0], nil
	}
	return body, nil
}

// Options translates the numerical parameters for cut.StabiliseBasis
func (ip *StabiliseParameters) Options() []cut.Option {
	return []cut.Option{
		cut.WithTolerance(ip.Tolerance),
		cut.WithMaxIterations(*ip.MaxIterations),
		cut.WithUpperThresholdFactor(ip.UpperThresholdFactor),
		cut.WithLowerThreshold(ip.LowerThreshold),
	}
}

func (ip *StabiliseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	if ip.Mesh.File != "" {
		fmt.Printf("[%s]\t\t= Mesh File\n", ip.Mesh.File)
	} else {
		fmt.Printf("[%s %v]\t\t= Mesh Shape, Divisions\n", ip.Mesh.Shape, ip.Mesh.Divisions)
	}
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ip.PolynomialOrder)
	fmt.Printf("[%d]\t\t\t\t= Components\n", ip.Components)
	fmt.Printf("[%d]\t\t\t\t= Samples\n", ip.Samples)
	fmt.Printf("%8.3g\t\t= Tolerance\n", ip.Tolerance)
	if ip.MaxIterations != nil {
		fmt.Printf("[%d]\t\t\t\t= MaxIterations\n", *ip.MaxIterations)
	}
	fmt.Printf("%8.5f\t\t= UpperThresholdFactor\n", ip.UpperThresholdFactor)
	fmt.Printf("%8.3g\t\t= LowerThreshold\n", ip.LowerThreshold)
	for i, g := range ip.Geometry {
		fmt.Printf("Geometry[%d] = %s %v\n", i, g.Type, g)
	}
	bcs := append([]DirichletParameters{}, ip.Dirichlet...)
	sort.Slice(bcs, func(i, j int) bool { return bcs[i].Boundary < bcs[j].Boundary })
	for _, bc := range bcs {
		fmt.Printf("Dirichlet[%s] = %v on %v\n", bc.Boundary, bc.Value, bc.Components)
	}
}
