// Package mesh decodes STL part files into scene mesh objects. Both the
// binary and the ASCII flavor of the format are supported.
package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KevinKickass/OpenToolpathViewer/internal/geometry"
	"github.com/KevinKickass/OpenToolpathViewer/internal/scene"
)

const (
	binaryHeaderSize   = 80
	binaryTriangleSize = 50 // normal + 3 vertices (12 floats) + attribute count
)

// Decode turns raw STL bytes into a mesh. The flavor is detected from
// the content: a file whose size matches the binary layout is decoded
// as binary, anything starting with "solid" as ASCII.
func Decode(data []byte) (*scene.Mesh, error) {
	if isBinary(data) {
		return decodeBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return decodeASCII(data)
	}
	return nil, fmt.Errorf("not an STL file")
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	expected := binaryHeaderSize + 4 + int(count)*binaryTriangleSize
	return len(data) == expected && count > 0
}

func decodeBinary(data []byte) (*scene.Mesh, error) {
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	triangles := make([]scene.Triangle, 0, count)

	offset := binaryHeaderSize + 4
	for i := uint32(0); i < count; i++ {
		record := data[offset : offset+binaryTriangleSize]
		triangles = append(triangles, scene.Triangle{
			Normal: readVec3(record[0:]),
			A:      readVec3(record[12:]),
			B:      readVec3(record[24:]),
			C:      readVec3(record[36:]),
		})
		offset += binaryTriangleSize
	}

	return scene.NewMesh(triangles), nil
}

func readVec3(b []byte) geometry.Vec3 {
	return geometry.Vec3{
		X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))),
		Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
	}
}

func decodeASCII(data []byte) (*scene.Mesh, error) {
	var triangles []scene.Triangle
	var normal geometry.Vec3
	var corners []geometry.Vec3

	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "facet":
			// "facet normal nx ny nz"
			if len(fields) != 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", line)
			}
			v, err := parseVec3(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			normal = v
			corners = corners[:0]
		case "vertex":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", line)
			}
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			corners = append(corners, v)
		case "endfacet":
			if len(corners) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", line, len(corners))
			}
			triangles = append(triangles, scene.Triangle{
				Normal: normal,
				A:      corners[0],
				B:      corners[1],
				C:      corners[2],
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read STL: %w", err)
	}

	if len(triangles) == 0 {
		return nil, fmt.Errorf("STL contains no triangles")
	}
	return scene.NewMesh(triangles), nil
}

func parseVec3(fields []string) (geometry.Vec3, error) {
	var out [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return geometry.Vec3{}, fmt.Errorf("bad coordinate %q", field)
		}
		out[i] = v
	}
	return geometry.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
