package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/gocut/shape"
)

// smfHeader collects the '!' lines of an SMF file
type smfHeader struct {
	shape            shape.Shape
	numPoints        int
	externalNodes    string
	externalElements string
}

// ReadSMF reads a simple mesh format file:
//
//	# comment
//	! elementShape triangle
//	! elementNumPoints 3
//	nNodes nElements
//	x y [z]          (nNodes lines)
//	v0 v1 ...        (nElements lines, zero based)
//
// The header may redirect nodes or elements to another file with
// "! externalNodes FILE" and "! externalElements FILE", relative to the
// directory of filename.
func ReadSMF(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	open := func(name string) (io.ReadCloser, error) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(filename), name)
		}
		return os.Open(name)
	}
	return parseSMF(file, open)
}

// ParseSMF reads an SMF stream without external node or element files
func ParseSMF(r io.Reader) (*Mesh, error) {
	return parseSMF(r, func(name string) (io.ReadCloser, error) {
		return nil, fmt.Errorf("external file %q not supported when parsing a stream", name)
	})
}

func parseSMF(r io.Reader, open func(string) (io.ReadCloser, error)) (mesh *Mesh, err error) {
	var (
		scanner            = bufio.NewScanner(r)
		hdr                smfHeader
		foundShape, foundN bool
		nNodes, nElements  int
		line               string
	)
	// Header and comments
	for {
		if !scanner.Scan() {
			if err = scanner.Err(); err == nil {
				err = fmt.Errorf("smf file ends before the node and element counts")
			}
			return
		}
		line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "!") {
			break
		}
		fields := strings.Fields(strings.TrimPrefix(line, "!"))
		if len(fields) < 2 {
			err = fmt.Errorf("malformed smf header line %q", line)
			return
		}
		switch {
		case strings.Contains(fields[0], "elementShape"):
			if hdr.shape, err = shape.NewShape(fields[1]); err != nil {
				return
			}
			foundShape = true
		case strings.Contains(fields[0], "elementNumPoints"):
			if hdr.numPoints, err = strconv.Atoi(fields[1]); err != nil {
				return
			}
			foundN = true
		case strings.Contains(fields[0], "externalNodes"):
			hdr.externalNodes = fields[1]
		case strings.Contains(fields[0], "externalElements"):
			hdr.externalElements = fields[1]
		}
	}
	if !foundShape || !foundN {
		err = fmt.Errorf("smf header needs elementShape and elementNumPoints")
		return
	}
	if hdr.numPoints != hdr.shape.NumVertices() {
		err = fmt.Errorf("smf element %s with %d points is not supported, need %d",
			hdr.shape, hdr.numPoints, hdr.shape.NumVertices())
		return
	}
	if _, err = fmt.Sscan(line, &nNodes, &nElements); err != nil {
		err = fmt.Errorf("malformed smf counts line %q: %w", line, err)
		return
	}

	nodeScanner, elemScanner := scanner, scanner
	if hdr.externalNodes != "" {
		var f io.ReadCloser
		if f, err = open(hdr.externalNodes); err != nil {
			return
		}
		defer f.Close()
		nodeScanner = bufio.NewScanner(f)
	}
	var vertices [][]float64
	if vertices, err = readSMFNodes(nodeScanner, nNodes); err != nil {
		return
	}
	dim := hdr.shape.Dim()
	if nNodes > 0 {
		dim = len(vertices[0])
	}
	mesh = NewMesh(dim)
	mesh.Vertices = vertices

	if hdr.externalElements != "" {
		var f io.ReadCloser
		if f, err = open(hdr.externalElements); err != nil {
			return nil, err
		}
		defer f.Close()
		elemScanner = bufio.NewScanner(f)
	}
	for k := 0; k < nElements; k++ {
		if line, err = nextDataLine(elemScanner); err != nil {
			return nil, fmt.Errorf("smf element %d: %w", k, err)
		}
		fields := strings.Fields(line)
		if len(fields) < hdr.numPoints {
			return nil, fmt.Errorf("smf element %d has %d vertices, need %d", k, len(fields), hdr.numPoints)
		}
		verts := make([]int, hdr.numPoints)
		for j := range verts {
			if verts[j], err = strconv.Atoi(fields[j]); err != nil {
				return nil, fmt.Errorf("smf element %d: %w", k, err)
			}
		}
		mesh.AddElement(hdr.shape, verts, 0)
	}
	if err = mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.BuildConnectivity()
	return
}

func readSMFNodes(scanner *bufio.Scanner, n int) (vertices [][]float64, err error) {
	var line string
	vertices = make([][]float64, n)
	for i := 0; i < n; i++ {
		if line, err = nextDataLine(scanner); err != nil {
			return nil, fmt.Errorf("smf node %d: %w", i, err)
		}
		fields := strings.Fields(line)
		if i > 0 && len(fields) < len(vertices[0]) {
			return nil, fmt.Errorf("smf node %d has %d coordinates, need %d", i, len(fields), len(vertices[0]))
		}
		if len(fields) > 3 {
			fields = fields[:3]
		}
		if i > 0 {
			fields = fields[:len(vertices[0])]
		}
		coords := make([]float64, len(fields))
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return nil, fmt.Errorf("smf node %d: %w", i, err)
			}
		}
		vertices[i] = coords
	}
	return
}

func nextDataLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
