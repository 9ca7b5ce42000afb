/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/notargets/gocut/InputParameters"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/store"
	"github.com/notargets/gocut/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StabiliseCmd represents the stabilise command
var StabiliseCmd = &cobra.Command{
	Use:   "stabilise",
	Short: "Stabilise the basis of a field on a cut mesh",
	Long: `
Reads an input parameters file (YAML, or TOML with a .toml extension), builds
the mesh, the Lagrange field and the implicit geometry, and runs one basis
stabilisation pass. With an Output database the resulting constraints are
stored in SQLite.

gocut stabilise -I input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			ip  *InputParameters.StabiliseParameters
		)
		inputFile, _ := cmd.Flags().GetString("inputConditionsFile")
		if len(inputFile) == 0 {
			fmt.Printf("error: must supply an input parameters file (-I, --inputConditionsFile)\n")
			fmt.Printf("Example File:%s\n", exampleInput)
			os.Exit(1)
		}
		if inputFile, err = homedir.Expand(inputFile); err != nil {
			logger.Fatal("input file", "err", err)
		}
		if ip, err = InputParameters.ReadFile(inputFile); err != nil {
			logger.Fatal("reading input", "err", err)
		}
		if out := viper.GetString("output"); out != "" {
			ip.Output = out
		}
		if ip.Output, err = homedir.Expand(ip.Output); err != nil {
			logger.Fatal("output", "err", err)
		}
		if verbose {
			ip.Print()
		}
		run := func() error {
			_, err := RunStabilise(ip, logger, os.Stdout)
			return err
		}
		if count, _ := cmd.Flags().GetBool("perf"); count {
			var instructions uint64
			instructions, err = countInstructions(run)
			if err == nil {
				logger.Info("performance", "instructions", instructions)
			}
		} else {
			err = run()
		}
		var noDonor *cut.NoDonorError
		switch {
		case errors.As(err, &noDonor):
			logger.Error("no donor", "dof", noDonor.DoF, "x", noDonor.X)
			os.Exit(1)
		case err != nil:
			logger.Fatal("stabilise", "err", err)
		}
	},
}

const exampleInput = `
########################################
Title: "Cut square"
Mesh:
  Shape: Triangle
  Divisions: [8, 8]
PolynomialOrder: 1
Components: 1
Geometry:
  - Type: Sphere
    Center: [0.5, 0.5]
    Radius: 0.37
Dirichlet:
  - Boundary: xmin
    Value: 0
Output: runs.db
########################################
`

func init() {
	rootCmd.AddCommand(StabiliseCmd)
	StabiliseCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or TOML file for input parameters like:\n\t- Mesh\n\t- Geometry\n\t- Tolerance")
	StabiliseCmd.Flags().StringP("output", "o", "", "SQLite database receiving the run, overrides Output")
	StabiliseCmd.Flags().Bool("perf", false, "count retired CPU instructions of the run (linux)")
	if err := viper.BindPFlag("output", StabiliseCmd.Flags().Lookup("output")); err != nil {
		panic(err)
	}
}

// BuildMesh reads the mesh file or generates the structured box
func BuildMesh(mp InputParameters.MeshParameters) (*mesh.Mesh, error) {
	if mp.File != "" {
		file, err := homedir.Expand(mp.File)
		if err != nil {
			return nil, err
		}
		return mesh.ReadMeshFile(file)
	}
	s, err := shape.NewShape(mp.Shape)
	if err != nil {
		return nil, err
	}
	return mesh.NewStructuredMesh(s, mp.Divisions, mp.Lower, mp.Upper)
}

// RunStabilise runs a complete stabilisation from parsed input parameters
// and writes a summary to w.
func RunStabilise(ip *InputParameters.StabiliseParameters, logger *log.Logger, w io.Writer) (rep *cut.Report, err error) {
	var (
		m        *mesh.Mesh
		f        *dof.Field
		ls       cut.LevelSet
		measures []float64
		locs     []dof.Location
	)
	if m, err = BuildMesh(ip.Mesh); err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	if f, err = dof.NewLagrangeField(m, ip.PolynomialOrder, ip.Components); err != nil {
		return
	}
	logger.Debug("field", "elements", len(f.Elements), "dofs", f.NumDoFs(), "components", f.Components)
	if ls, err = ip.LevelSet(); err != nil {
		return
	}
	if measures, err = cut.SupportMeasures(m, f, ls, ip.Samples); err != nil {
		return
	}
	for _, bc := range ip.Dirichlet {
		var dofs utils.Index
		if dofs, err = f.BoundaryDoFs(m, bc.Boundary); err != nil {
			return
		}
		if err = f.ConstrainBoundary(dofs, bc.Value, bc.Components...); err != nil {
			return
		}
		logger.Debug("dirichlet", "boundary", bc.Boundary, "dofs", len(dofs), "value", bc.Value)
	}
	if locs, err = f.Locations(); err != nil {
		return
	}
	opts := append(ip.Options(), cut.WithLogger(logger))
	if rep, err = cut.StabiliseBasis(m, f, measures, locs, opts...); err != nil {
		return
	}
	ext := f.ExtensionOperator()
	if ext.Unresolved > 0 {
		logger.Warn("constraints referencing constrained DoFs", "count", ext.Unresolved)
	}
	PrintReport(w, ip.Title, rep, len(ext.Free))
	logger.Debug("memory", "usage", utils.GetMemUsage())

	if ip.Output != "" {
		var (
			db *store.Store
			id string
		)
		if db, err = store.Open(ip.Output); err != nil {
			return
		}
		defer db.Close()
		if id, err = db.SaveRun(ip.Title, rep, f); err != nil {
			return
		}
		logger.Info("saved run", "id", id, "db", ip.Output)
	}
	return
}

func PrintReport(w io.Writer, title string, rep *cut.Report, free int) {
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "  Thresholds: lower %.3g, upper %.6g\n", rep.Thresholds.Lower, rep.Thresholds.Upper)
	fmt.Fprintf(w, "  Active: %d, Inactive: %d, Constrained: %d\n",
		rep.Counts[dof.Active], rep.Counts[dof.Inactive], rep.Counts[dof.Constrained])
	fmt.Fprintf(w, "  Degenerate DoFs: %d (%d components)\n", len(rep.Entries), rep.Degenerate())
	fmt.Fprintf(w, "  Three-ring donors: %d\n", rep.ThreeRingFallbacks)
	fmt.Fprintf(w, "  Exhausted point locations: %d\n", rep.Exhausted)
	fmt.Fprintf(w, "  Free unknowns: %d\n", free)
}
