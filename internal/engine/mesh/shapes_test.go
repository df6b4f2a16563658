package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereCounts(t *testing.T) {
	g, err := Sphere(2, 16, 8)
	require.NoError(t, err)

	assert.Len(t, g.Vertices, 17*9)
	// Pole rows contribute one triangle per slice instead of two.
	assert.Equal(t, int32(6*16*7), g.IndexCount())
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), len(g.Vertices))
	}
}

func TestSphereNormals(t *testing.T) {
	g, err := Sphere(3, 12, 6)
	require.NoError(t, err)

	for _, v := range g.Vertices {
		n := v.Norm()
		assert.InDelta(t, 1, n.Length(), 1e-5)
		assert.InDelta(t, 3, v.Pos().Length(), 1e-4)
		// Normals point outward.
		assert.Greater(t, n.Dot(v.Pos()), float32(0))
	}

	assert.InDelta(t, -3, g.Bounds.Min[1], 1e-5)
	assert.InDelta(t, 3, g.Bounds.Max[1], 1e-5)
}

func TestSphereWindingFacesOutward(t *testing.T) {
	g, err := Sphere(1, 8, 4)
	require.NoError(t, err)

	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Pos()
		b := g.Vertices[g.Indices[i+1]].Pos()
		c := g.Vertices[g.Indices[i+2]].Pos()
		face := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Scale(1.0 / 3)
		assert.Greater(t, face.Dot(center), float32(0), "triangle %d winds inward", i/3)
	}
}

func TestSphereRejectsBadInput(t *testing.T) {
	_, err := Sphere(1, 2, 8)
	assert.Error(t, err)
	_, err = Sphere(1, 8, 1)
	assert.Error(t, err)
	_, err = Sphere(0, 8, 4)
	assert.Error(t, err)
}

func TestPlane(t *testing.T) {
	g, err := Plane(10, 4)
	require.NoError(t, err)

	assert.Len(t, g.Vertices, 25)
	assert.Equal(t, int32(4*4*6), g.IndexCount())
	assert.Equal(t, [3]float32{-5, 0, -5}, g.Bounds.Min)
	assert.Equal(t, [3]float32{5, 0, 5}, g.Bounds.Max)

	for i := 0; i < len(g.Indices); i += 3 {
		a := g.Vertices[g.Indices[i]].Pos()
		b := g.Vertices[g.Indices[i+1]].Pos()
		c := g.Vertices[g.Indices[i+2]].Pos()
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Y, float32(0), "triangle %d faces down", i/3)
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(KindSphere, 5, 32)
	require.NoError(t, err)
	assert.Len(t, g.Vertices, 33*17)

	g, err = Build(KindPlane, 20, 2)
	require.NoError(t, err)
	assert.Len(t, g.Vertices, 9)

	_, err = Build("torus", 1, 8)
	assert.Error(t, err)
}
