package model

// Vec3 is a position, rotation (euler degrees) or scale in scene space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Uniform returns a Vec3 with all components set to v
func Uniform(v float64) Vec3 {
	return Vec3{X: v, Y: v, Z: v}
}

// Transform is a fixed local placement for an instantiated scene node
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// DefaultTransform returns an identity placement at the origin
func DefaultTransform() Transform {
	return Transform{Scale: Uniform(1)}
}

// SceneNode is an instantiated asset placed in the showroom scene
type SceneNode struct {
	Name      string      `json:"name"`
	Kind      AssetKind   `json:"kind"`
	Transform Transform   `json:"transform"`
	Children  []*SceneNode `json:"children,omitempty"`

	// Camera is the camera node this node renders through.
	// Only set on the tour UI node, pointing at the player rig's camera child.
	Camera *SceneNode `json:"-"`
}

// Child returns the direct child with the given name, or nil
func (n *SceneNode) Child(name string) *SceneNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Scene is the fully built showroom: all four nodes are non-nil after a
// successful build
type Scene struct {
	Room   *SceneNode `json:"room"`
	UI     *SceneNode `json:"ui"`
	Player *SceneNode `json:"player"`
	Model  *SceneNode `json:"model"`
}
