package core

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Node is a transform container. World transforms compose parent first.
type Node struct {
	ID       uuid.UUID
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		ID:       uuid.New(),
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetParent detaches n from its current parent first. A nil parent makes n a root.
func (n *Node) SetParent(parent *Node) {
	if n.parent == parent {
		return
	}
	if n.parent != nil {
		siblings := n.parent.children
		if i := slices.Index(siblings, n); i >= 0 {
			n.parent.children = slices.Delete(siblings, i, i+1)
		}
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}
}

// LocalMatrix is T * R * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	scale := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return translate.Mul4(n.Rotation.Mat4()).Mul4(scale)
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Traverse visits n and its descendants depth first until fn returns false.
func (n *Node) Traverse(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Traverse(fn) {
			return false
		}
	}
	return true
}
