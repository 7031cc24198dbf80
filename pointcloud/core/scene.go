package core

import "github.com/go-gl/mathgl/mgl32"

type DrawMode int

const (
	DrawPoints DrawMode = iota
)

const DefaultMeshDepth = -500

// Mesh is a drawable node. Version changes every time the geometry is replaced
// so renderers know when to upload again.
type Mesh struct {
	*Node
	Mode     DrawMode
	Geometry ParticleAttributes
	Version  uint64
}

func (m *Mesh) SetGeometry(g ParticleAttributes) {
	m.Geometry = g
	m.Version++
}

type Scene struct {
	Root      *Node
	Particles *Mesh

	meshes map[*Node]*Mesh
}

// NewScene parents a point mesh holding geometry to a fresh root, pushed back to DefaultMeshDepth.
func NewScene(geometry ParticleAttributes) *Scene {
	root := NewNode("scene")
	mesh := &Mesh{Node: NewNode("particles"), Mode: DrawPoints}
	mesh.Position = mgl32.Vec3{0, 0, DefaultMeshDepth}
	mesh.SetGeometry(geometry)

	s := &Scene{
		Root:      root,
		Particles: mesh,
		meshes:    make(map[*Node]*Mesh),
	}
	s.Add(mesh, root)
	return s
}

// Add attaches m under parent.
func (s *Scene) Add(m *Mesh, parent *Node) {
	m.SetParent(parent)
	s.meshes[m.Node] = m
}

// Meshes lists the meshes reachable from Root, depth first.
func (s *Scene) Meshes() []*Mesh {
	var out []*Mesh
	s.Root.Traverse(func(n *Node) bool {
		if m, ok := s.meshes[n]; ok {
			out = append(out, m)
		}
		return true
	})
	return out
}

func (s *Scene) ModelView(cam *Camera) mgl32.Mat4 {
	return cam.View().Mul4(s.Particles.WorldMatrix())
}
