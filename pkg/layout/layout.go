// Package layout resolves a slide's box tree into absolute geometry.
//
// Resolution is a two-pass algorithm. The measure pass walks the tree
// bottom-up computing intrinsic (content-driven) sizes: leaves ask the
// measurement collaborator for their natural size, auto containers
// aggregate children along their flow axis. The arrange pass walks
// top-down from the root's fixed view size, resolving fraction sizes
// against the space left by fixed and auto siblings and positioning
// children by the container's alignment.
//
// Resolve is a pure function of (tree, view size, measurer): it mutates
// nothing, and every call produces a fresh immutable [Geometry] snapshot,
// so concurrent or repeated passes over the same tree are safe.
package layout

import (
	"fmt"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// ContentMeasurer supplies natural sizes for content leaves. Must be
// deterministic for identical content and style inputs.
type ContentMeasurer interface {
	Measure(c box.Content, st style.Style) (geometry.Size, error)
}

// LayoutError reports a resolver-detected contract violation, such as a
// fraction size outside (0, 1]. It aborts the layout pass for the
// affected slide only.
type LayoutError struct {
	// Box is the identifier of the offending box.
	Box string
	// Axis names the dimension ("width" or "height").
	Axis string
	// Fraction is the rejected proportion.
	Fraction float64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout: box %q %s fraction %v outside (0, 1]", e.Box, e.Axis, e.Fraction)
}

// Geometry is the resolved output of one layout pass: an absolute
// rectangle and effective style per box, plus per-container overflow
// flags. It is immutable; downstream consumers read it only.
type Geometry struct {
	view     geometry.Size
	rects    map[string]geometry.Rect
	styles   map[string]style.Style
	overflow map[string]bool
}

// View returns the view size the pass was resolved against.
func (g *Geometry) View() geometry.Size { return g.view }

// Rect returns the absolute rectangle of a box.
func (g *Geometry) Rect(id string) (geometry.Rect, bool) {
	r, ok := g.rects[id]
	return r, ok
}

// Style returns the cascaded effective style of a box.
func (g *Geometry) Style(id string) (style.Style, bool) {
	s, ok := g.styles[id]
	return s, ok
}

// Overflowed reports whether the children of the given container
// exceeded its available main-axis space. Overflow is a caller-visible
// condition, not an error: layout completes and nothing is clipped or
// shrunk.
func (g *Geometry) Overflowed(id string) bool {
	return g.overflow[id]
}

func (r *resolver) init(root *box.Box, view geometry.Size) {
	r.view = view
	r.rects = make(map[string]geometry.Rect)
	r.styles = make(map[string]style.Style)
	r.intrinsic = make(map[string]geometry.Size)
	r.overflow = make(map[string]bool)
	r.root = root
}

// Resolve computes absolute geometry for every box in the tree. The
// returned Geometry is a fresh snapshot; an in-flight older pass can be
// discarded without affecting it.
func Resolve(root *box.Box, view geometry.Size, m ContentMeasurer) (*Geometry, error) {
	r := &resolver{measurer: m}
	r.init(root, view)

	if err := r.cascade(root, nil); err != nil {
		return nil, err
	}
	if _, err := r.measure(root); err != nil {
		return nil, err
	}
	r.arrange(root, geometry.RectFromLTWH(0, 0, view.Width, view.Height))

	return &Geometry{
		view:     view,
		rects:    r.rects,
		styles:   r.styles,
		overflow: r.overflow,
	}, nil
}

type resolver struct {
	measurer  ContentMeasurer
	root      *box.Box
	view      geometry.Size
	rects     map[string]geometry.Rect
	styles    map[string]style.Style
	intrinsic map[string]geometry.Size
	overflow  map[string]bool
}

// cascade annotates every box with its effective style, resolving each
// property against the ancestor override chain.
func (r *resolver) cascade(b *box.Box, chain []style.Properties) error {
	chain = append(chain, b.Props())
	st, err := style.Cascade(b.ID(), chain)
	if err != nil {
		return err
	}
	r.styles[b.ID()] = st
	for _, child := range b.Children() {
		if err := r.cascade(child, chain); err != nil {
			return err
		}
	}
	return nil
}

// Axis helpers: fold a size into (main, cross) components for a flow axis.

func mainOf(axis box.Axis, s geometry.Size) float64 {
	if axis == box.AxisHorizontal {
		return s.Width
	}
	return s.Height
}

func crossOf(axis box.Axis, s geometry.Size) float64 {
	if axis == box.AxisHorizontal {
		return s.Height
	}
	return s.Width
}

func sizeOf(axis box.Axis, main, cross float64) geometry.Size {
	if axis == box.AxisHorizontal {
		return geometry.Size{Width: main, Height: cross}
	}
	return geometry.Size{Width: cross, Height: main}
}
