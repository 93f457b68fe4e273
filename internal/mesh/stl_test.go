package mesh

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiTetra = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid tetra
`

func TestDecodeASCII(t *testing.T) {
	m, err := Decode([]byte(asciiTetra))
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())

	tri := m.Triangles()[0]
	assert.Equal(t, geometry.Vec3{Z: -1}, tri.Normal)
	assert.Equal(t, geometry.Vec3{X: 1}, tri.B)
}

func TestDecodeBinary(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	binary.Write(&buf, binary.LittleEndian, uint32(1))

	writeVec := func(x, y, z float32) {
		for _, v := range []float32{x, y, z} {
			binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
		}
	}
	writeVec(0, 0, 1)  // normal
	writeVec(0, 0, 0)  // a
	writeVec(10, 0, 0) // b
	writeVec(0, 10, 0) // c
	binary.Write(&buf, binary.LittleEndian, uint16(0))

	m, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, m.TriangleCount())

	tri := m.Triangles()[0]
	assert.Equal(t, geometry.Vec3{Z: 1}, tri.Normal)
	assert.Equal(t, geometry.Vec3{X: 10}, tri.B)

	min, max := m.Bounds()
	assert.Equal(t, geometry.Vec3{}, min)
	assert.Equal(t, geometry.Vec3{X: 10, Y: 10}, max)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not a mesh at all")},
		{"solid without facets", []byte("solid empty\nendsolid empty\n")},
		{"truncated facet", []byte("solid bad\nfacet normal 0 0\nendfacet\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			assert.Error(t, err)
		})
	}
}
