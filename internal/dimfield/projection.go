package dimfield

import "math"

// Point3 is a projected vertex in rendering space.
type Point3 struct {
	X, Y, Z Real
}

// projectVertices perspective-projects every lattice vertex into 3D. The
// depth axis is the lattice's last coordinate; its value plus the depth
// translation forms the perspective divisor, floored at a small epsilon so
// a vertex sitting on the camera plane cannot blow up the scale. Axes past
// the third are dropped; missing axes stay 0.
func projectVertices(l *lattice, ps *ParameterSet) []Point3 {
	out := make([]Point3, l.count)
	depth := l.dim - 1
	for i := 0; i < l.count; i++ {
		v := l.vertex(i)
		den := math.Max(epsDenom, v[depth]+ps.Translation)
		scale := ps.FocalLength / den
		var p Point3
		if l.dim > 0 {
			p.X = v[0] * scale
		}
		if l.dim > 1 {
			p.Y = v[1] * scale
		}
		if l.dim > 2 {
			p.Z = v[2] * scale
		}
		out[i] = p
	}
	return out
}
