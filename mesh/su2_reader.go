package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSU2(file)
}

// ParseSU2 reads the NDIME, NPOIN, NELEM and NMARK sections. Volume elements
// must match NDIME; marker elements only contribute their vertices to the
// named boundary.
func ParseSU2(r io.Reader) (*Mesh, error) {
	var (
		scanner = bufio.NewScanner(r)
		mesh    *Mesh
		ndime   int
		nelem   = -1
	)

	next := func(section string) (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return line, nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unexpected end of file in %s section", section)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments
		if strings.HasPrefix(line, "%") || line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NDIME="):
			var err error
			if ndime, err = su2Count(line, "NDIME="); err != nil {
				return nil, err
			}
			if ndime < 1 || ndime > 3 {
				return nil, fmt.Errorf("unsupported dimension NDIME=%d", ndime)
			}
			mesh = NewMesh(ndime)

		case strings.HasPrefix(line, "NELEM="):
			if mesh == nil {
				return nil, fmt.Errorf("NELEM section before NDIME")
			}
			var err error
			if nelem, err = su2Count(line, "NELEM="); err != nil {
				return nil, err
			}
			for i := 0; i < nelem; i++ {
				if line, err = next("NELEM"); err != nil {
					return nil, err
				}
				s, verts, err := parseSU2Element(line)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				if s.Dim() != ndime {
					return nil, fmt.Errorf("element %d is a %s in a mesh with NDIME=%d", i, s, ndime)
				}
				mesh.AddElement(s, verts, 0)
			}

		case strings.HasPrefix(line, "NPOIN="):
			if mesh == nil {
				return nil, fmt.Errorf("NPOIN section before NDIME")
			}
			npoin, err := su2Count(line, "NPOIN=")
			if err != nil {
				return nil, err
			}
			mesh.Vertices = make([][]float64, npoin)
			for i := 0; i < npoin; i++ {
				if line, err = next("NPOIN"); err != nil {
					return nil, err
				}
				fields := strings.Fields(line)
				if len(fields) < ndime {
					return nil, fmt.Errorf("point %d has %d coordinates, need %d", i, len(fields), ndime)
				}
				coords := make([]float64, ndime)
				for j := range coords {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("point %d: %w", i, err)
					}
				}
				ptID := i
				if len(fields) > ndime {
					if ptID, err = strconv.Atoi(fields[len(fields)-1]); err != nil {
						return nil, fmt.Errorf("point %d: %w", i, err)
					}
				}
				if ptID < 0 || ptID >= npoin {
					return nil, fmt.Errorf("point id %d out of range [0,%d)", ptID, npoin)
				}
				mesh.Vertices[ptID] = coords
			}

		case strings.HasPrefix(line, "NMARK="):
			if mesh == nil {
				return nil, fmt.Errorf("NMARK section before NDIME")
			}
			nmark, err := su2Count(line, "NMARK=")
			if err != nil {
				return nil, err
			}
			for i := 0; i < nmark; i++ {
				if line, err = next("NMARK"); err != nil {
					return nil, err
				}
				if !strings.HasPrefix(line, "MARKER_TAG=") {
					return nil, fmt.Errorf("expected MARKER_TAG, got %q", line)
				}
				tagName := strings.TrimSpace(strings.TrimPrefix(line, "MARKER_TAG="))
				if line, err = next("NMARK"); err != nil {
					return nil, err
				}
				nMarkerElems, err := su2Count(line, "MARKER_ELEMS=")
				if err != nil {
					return nil, err
				}
				var verts utils.Index
				for j := 0; j < nMarkerElems; j++ {
					if line, err = next("MARKER_ELEMS"); err != nil {
						return nil, err
					}
					fields := strings.Fields(line)
					for _, f := range fields[1:] {
						v, err := strconv.Atoi(f)
						if err != nil {
							return nil, fmt.Errorf("marker %s: %w", tagName, err)
						}
						verts = append(verts, v)
					}
				}
				mesh.Boundaries[tagName] = verts.Unique()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if mesh == nil {
		return nil, fmt.Errorf("missing NDIME section")
	}
	if nelem < 0 {
		return nil, fmt.Errorf("missing NELEM section")
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.BuildConnectivity()

	return mesh, nil
}

func su2Count(line, key string) (n int, err error) {
	if n, err = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, key))); err != nil {
		err = fmt.Errorf("malformed %s line %q: %w", strings.TrimSuffix(key, "="), line, err)
		return
	}
	if n < 0 {
		err = fmt.Errorf("negative count in %q", line)
	}
	return
}

// parseSU2Element reads "type v0 v1 ... [id]"
func parseSU2Element(line string) (s shape.Shape, verts []int, err error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		err = fmt.Errorf("malformed element line %q", line)
		return
	}
	su2Type, err := strconv.Atoi(fields[0])
	if err != nil {
		return
	}
	if s, err = su2Shape(su2Type); err != nil {
		return
	}
	numNodes := s.NumVertices()
	if len(fields) < numNodes+1 {
		err = fmt.Errorf("%s needs %d vertices in %q", s, numNodes, line)
		return
	}
	verts = make([]int, numNodes)
	for j := range verts {
		if verts[j], err = strconv.Atoi(fields[1+j]); err != nil {
			return
		}
	}
	return
}

// su2Shape maps SU2 (VTK) element type codes
func su2Shape(su2Type int) (shape.Shape, error) {
	switch su2Type {
	case 3:
		return shape.Line, nil
	case 5:
		return shape.Triangle, nil
	case 9:
		return shape.Quad, nil
	case 10:
		return shape.Tet, nil
	case 12:
		return shape.Hex, nil
	}
	return 0, fmt.Errorf("unsupported SU2 element type %d", su2Type)
}
