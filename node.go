package showcase

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// nodeIDCounter is a plain counter (no atomic, the stage is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all
// node types.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during the update walk
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Sprite fields (NodeTypeSprite)
	Image *ebiten.Image
	Color Color

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Hit testing
	HitShape HitShape

	// Metadata
	UserData any

	// Per-node callbacks (nil by default)
	OnClick  func(ClickContext)
	OnUpdate func(dt float64)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that draws img. A nil img draws WhitePixel,
// so a sprite sized with SetSize and tinted with Color is a solid rectangle.
func NewSprite(name string, img *ebiten.Image) *Node {
	if img == nil {
		img = WhitePixel
	}
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font *Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("showcase: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("showcase: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("showcase: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// RemoveChildrenExcept detaches every child that is not in keep, preserving
// the order of the kept ones. Removed children are returned and NOT disposed.
func (n *Node) RemoveChildrenExcept(keep ...*Node) []*Node {
	var removed []*Node
	kept := n.children[:0]
	for _, child := range n.children {
		if containsNode(keep, child) {
			kept = append(kept, child)
			continue
		}
		child.Parent = nil
		markSubtreeDirty(child)
		removed = append(removed, child)
	}
	for i := len(kept); i < len(n.children); i++ {
		n.children[i] = nil
	}
	n.children = kept
	return removed
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// LastChild returns the topmost child, or nil when there are none.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// --- Size ---

// SetSize scales a sprite so that it draws w×h pixels in its parent's space.
// Text and container nodes are unaffected.
func (n *Node) SetSize(w, h float64) {
	if n.Type != NodeTypeSprite || n.Image == nil {
		return
	}
	b := n.Image.Bounds()
	n.ScaleX = w / float64(b.Dx())
	n.ScaleY = h / float64(b.Dy())
	n.transformDirty = true
}

// SetAnchor places the pivot at the given fraction of the node's unscaled
// content size (0.5, 0.5 centres it on its position).
func (n *Node) SetAnchor(ax, ay float64) {
	w, h := n.contentSize()
	n.PivotX = w * ax
	n.PivotY = h * ay
	n.transformDirty = true
}

// Size returns the node's drawn width and height in its parent's space,
// i.e. the content size multiplied by the node's own scale.
func (n *Node) Size() (w, h float64) {
	cw, ch := n.contentSize()
	return cw * abs(n.ScaleX), ch * abs(n.ScaleY)
}

// Bounds returns the node's axis-aligned box in its parent's space, ignoring
// rotation.
func (n *Node) Bounds() Rect {
	w, h := n.Size()
	return Rect{
		X:      n.X - n.PivotX*abs(n.ScaleX),
		Y:      n.Y - n.PivotY*abs(n.ScaleY),
		Width:  w,
		Height: h,
	}
}

// contentSize returns the unscaled size of the node's own visual.
func (n *Node) contentSize() (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.Image == nil {
			return 0, 0
		}
		b := n.Image.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	case NodeTypeText:
		if n.TextBlock == nil {
			return 0, 0
		}
		return n.TextBlock.Measure()
	}
	return 0, 0
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.HitShape = nil
	n.Image = nil
	n.TextBlock = nil
	n.UserData = nil
	n.OnClick = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

func containsNode(list []*Node, n *Node) bool {
	for _, c := range list {
		if c == n {
			return true
		}
	}
	return false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
