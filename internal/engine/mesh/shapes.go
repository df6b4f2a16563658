package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Sphere builds a UV sphere centered at the origin. slices splits the
// longitude, stacks the latitude. Triangles wind counter-clockwise seen from
// outside.
func Sphere(radius float32, slices, stacks int) (*Geometry, error) {
	if slices < 3 || stacks < 2 {
		return nil, fmt.Errorf("sphere needs at least 3 slices and 2 stacks, got %d/%d", slices, stacks)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}

	vertices := make([]Vertex, 0, (slices+1)*(stacks+1))
	for stack := 0; stack <= stacks; stack++ {
		v := float32(stack) / float32(stacks)
		phi := v * math32.Pi // 0 at the north pole
		sinPhi, cosPhi := math32.Sincos(phi)

		for slice := 0; slice <= slices; slice++ {
			u := float32(slice) / float32(slices)
			theta := u * 2 * math32.Pi
			sinTheta, cosTheta := math32.Sincos(theta)

			n := [3]float32{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			vertices = append(vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	ring := uint32(slices + 1)
	indices := make([]uint32, 0, slices*stacks*6)
	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			a := uint32(stack)*ring + uint32(slice)
			b := a + ring
			// Degenerate pole triangles are skipped.
			if stack != 0 {
				indices = append(indices, a, a+1, b)
			}
			if stack != stacks-1 {
				indices = append(indices, a+1, b+1, b)
			}
		}
	}

	return &Geometry{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   computeBounds(vertices),
	}, nil
}

// Plane builds a square in the XZ plane facing +Y, subdivided into
// divisions x divisions quads so per-vertex effects stay smooth.
func Plane(size float32, divisions int) (*Geometry, error) {
	if divisions < 1 {
		return nil, fmt.Errorf("plane needs at least one division, got %d", divisions)
	}
	if size <= 0 {
		return nil, fmt.Errorf("plane size must be positive, got %v", size)
	}

	half := size / 2
	step := size / float32(divisions)
	row := uint32(divisions + 1)

	vertices := make([]Vertex, 0, int(row*row))
	for z := 0; z <= divisions; z++ {
		for x := 0; x <= divisions; x++ {
			vertices = append(vertices, Vertex{
				Position: [3]float32{-half + float32(x)*step, 0, -half + float32(z)*step},
				Normal:   [3]float32{0, 1, 0},
				TexCoord: [2]float32{float32(x) / float32(divisions), float32(z) / float32(divisions)},
			})
		}
	}

	indices := make([]uint32, 0, divisions*divisions*6)
	for z := 0; z < divisions; z++ {
		for x := 0; x < divisions; x++ {
			a := uint32(z)*row + uint32(x)
			b := a + row
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return &Geometry{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   computeBounds(vertices),
	}, nil
}

// Build generates the geometry for kind. size is the sphere radius or the
// plane edge length; detail is the sphere slice count (stacks = detail/2) or
// the plane subdivision count.
func Build(kind Kind, size float32, detail int) (*Geometry, error) {
	switch kind {
	case KindSphere:
		return Sphere(size, detail, max(detail/2, 2))
	case KindPlane:
		return Plane(size, detail)
	default:
		return nil, fmt.Errorf("unknown mesh kind %q", kind)
	}
}
