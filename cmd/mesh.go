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
	"fmt"
	"os"

	"github.com/notargets/gocut/InputParameters"
	"github.com/spf13/cobra"
)

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Read or generate a mesh and print its statistics",
	Long: `
Reads an SU2 (.su2) or SMF (.smf) mesh file, or generates a structured box
mesh, and prints its size, boundaries and element quality.

gocut mesh -F grid.su2
gocut mesh --shape Tet --divisions 4,4,4`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			mp  InputParameters.MeshParameters
			err error
		)
		mp.File, _ = cmd.Flags().GetString("gridFile")
		mp.Shape, _ = cmd.Flags().GetString("shape")
		mp.Divisions, _ = cmd.Flags().GetIntSlice("divisions")
		mp.Lower, _ = cmd.Flags().GetFloat64Slice("lower")
		mp.Upper, _ = cmd.Flags().GetFloat64Slice("upper")
		if mp.File == "" && mp.Shape == "" {
			fmt.Printf("error: must supply a grid file (-F, --gridFile) or a shape (--shape)\n")
			os.Exit(1)
		}
		ip := &InputParameters.StabiliseParameters{Mesh: mp}
		ip.SetDefaults()
		m, err := BuildMesh(ip.Mesh)
		if err != nil {
			logger.Fatal("mesh", "err", err)
		}
		m.PrintStatistics(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) or SMF (.smf) format")
	MeshCmd.Flags().String("shape", "", "element shape of a generated box mesh: Line, Triangle, Quad, Tet or Hex")
	MeshCmd.Flags().IntSlice("divisions", nil, "number of cells along each direction")
	MeshCmd.Flags().Float64Slice("lower", nil, "lower corner of the box (default origin)")
	MeshCmd.Flags().Float64Slice("upper", nil, "upper corner of the box (default unit box)")
}
