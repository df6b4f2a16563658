// Package mesh generates the scene geometry.
package mesh

import "github.com/Faultbox/spotlight/pkg/math"

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
// The layout matches the GL vertex attributes 0, 1 and 2.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Pos returns the position as a vector.
func (v Vertex) Pos() math.Vec3 {
	return math.Vec3{X: v.Position[0], Y: v.Position[1], Z: v.Position[2]}
}

// Norm returns the normal as a vector.
func (v Vertex) Norm() math.Vec3 {
	return math.Vec3{X: v.Normal[0], Y: v.Normal[1], Z: v.Normal[2]}
}

// UV returns the texture coordinate as a vector.
func (v Vertex) UV() math.Vec2 {
	return math.Vec2{X: v.TexCoord[0], Y: v.TexCoord[1]}
}

// Geometry holds indexed triangles ready for upload.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int32 {
	return int32(len(g.Indices))
}

// Bounds holds the axis-aligned bounding box of the geometry.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}

// Kind names a generated shape.
type Kind string

const (
	KindSphere Kind = "sphere"
	KindPlane  Kind = "plane"
)
