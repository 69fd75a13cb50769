// Package box implements the in-memory model of a slide: a tree of
// rectangular boxes with styling overrides and content leaves.
//
// Trees are built through the construction API ([NewRoot], [Box.NewChild]
// and the content options) which rejects structural violations
// immediately. Once built, a tree is read-only: the style cascade and the
// layout resolver only traverse it, and a deck may be re-rendered any
// number of times against the same tree.
package box

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-deck/deck/pkg/style"
)

// Axis is the flow direction of a container's children.
type Axis int

const (
	// AxisVertical stacks children top to bottom (the default).
	AxisVertical Axis = iota
	// AxisHorizontal places children left to right.
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Alignment positions a stacked child along one axis of its parent.
type Alignment int

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// String returns a human-readable representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// SizeMode distinguishes the three sizing strategies of a box axis.
type SizeMode int

const (
	// SizeAuto derives the size from content or children (the default).
	SizeAuto SizeMode = iota
	// SizeFixed uses an absolute length.
	SizeFixed
	// SizeFraction uses a proportion of the parent's available size.
	SizeFraction
)

// SizeSpec declares how one axis of a box is sized.
type SizeSpec struct {
	Mode  SizeMode
	Value float64 // length for SizeFixed, proportion in (0, 1] for SizeFraction
}

// Auto returns an auto (content-driven) size spec.
func Auto() SizeSpec { return SizeSpec{Mode: SizeAuto} }

// Fixed returns a fixed-length size spec.
func Fixed(v float64) SizeSpec { return SizeSpec{Mode: SizeFixed, Value: v} }

// Fraction returns a fraction-of-parent size spec. The layout resolver
// rejects fractions outside (0, 1].
func Fraction(f float64) SizeSpec { return SizeSpec{Mode: SizeFraction, Value: f} }

// String returns a human-readable representation of the size spec.
func (s SizeSpec) String() string {
	switch s.Mode {
	case SizeAuto:
		return "auto"
	case SizeFixed:
		return strconv.FormatFloat(s.Value, 'g', -1, 64)
	case SizeFraction:
		return strconv.FormatFloat(s.Value*100, 'g', -1, 64) + "%"
	default:
		return fmt.Sprintf("SizeSpec(%d)", int(s.Mode))
	}
}

// ParseSizeSpec parses a declarative size: "auto" (or empty), a plain
// number ("120"), or a percentage ("50%").
func ParseSizeSpec(s string) (SizeSpec, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return Auto(), nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return SizeSpec{}, fmt.Errorf("size %q: %w", s, err)
		}
		return Fraction(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return SizeSpec{}, fmt.Errorf("size %q: %w", s, err)
	}
	if v < 0 {
		return SizeSpec{}, fmt.Errorf("size %q: negative length", s)
	}
	return Fixed(v), nil
}

// Box is a node in the slide tree: either a container with ordered
// children or a leaf with a content item, never both.
type Box struct {
	id   string
	name string

	axis          Axis
	width, height SizeSpec

	// Stacked boxes are taken out of the parent's flow and positioned
	// independently by their own alignment, overlapping flow siblings.
	stacked        bool
	alignX, alignY Alignment

	// Show-step range: the box paints only for steps in [stepFrom,
	// stepTo]. stepTo == 0 means open-ended. Steps never affect layout.
	stepFrom, stepTo int

	props    style.Properties
	content  Content
	children []*Box
	parent   *Box

	seq *int // shared per-tree id counter, owned by the root
}

// ID returns the unique identifier of the box within its tree.
func (b *Box) ID() string { return b.id }

// Name returns the author-assigned name, or the id when unnamed.
func (b *Box) Name() string {
	if b.name != "" {
		return b.name
	}
	return b.id
}

// Parent returns the parent box, or nil for the root.
func (b *Box) Parent() *Box { return b.parent }

// Children returns the ordered child boxes. The returned slice is the
// tree's own storage; callers must not modify it.
func (b *Box) Children() []*Box { return b.children }

// ContentLeaf returns the content item of a leaf box, or nil.
func (b *Box) ContentLeaf() Content { return b.content }

// IsLeaf returns true if the box carries content.
func (b *Box) IsLeaf() bool { return b.content != nil }

// Axis returns the flow direction for this box's children.
func (b *Box) Axis() Axis { return b.axis }

// Width returns the declared width spec.
func (b *Box) Width() SizeSpec { return b.width }

// Height returns the declared height spec.
func (b *Box) Height() SizeSpec { return b.height }

// Stacked returns true if the box overlaps its siblings instead of
// participating in the parent's flow.
func (b *Box) Stacked() bool { return b.stacked }

// StackAlign returns the per-axis alignment of a stacked box within its
// parent. Meaningless for flow boxes.
func (b *Box) StackAlign() (x, y Alignment) { return b.alignX, b.alignY }

// StepRange returns the show-step range of the box. to == 0 means the
// box stays visible for every step from `from` on.
func (b *Box) StepRange() (from, to int) { return b.stepFrom, b.stepTo }

// VisibleAtStep reports whether the box's step range covers the given step.
func (b *Box) VisibleAtStep(step int) bool {
	if step < b.stepFrom {
		return false
	}
	return b.stepTo == 0 || step <= b.stepTo
}

// Props returns the style overrides declared on this box.
func (b *Box) Props() style.Properties { return b.props }

// Chain returns the declared overrides from the root down to this box,
// the input expected by [style.Cascade].
func (b *Box) Chain() []style.Properties {
	depth := 0
	for p := b; p != nil; p = p.parent {
		depth++
	}
	chain := make([]style.Properties, depth)
	for p, i := b, depth-1; p != nil; p, i = p.parent, i-1 {
		chain[i] = p.props
	}
	return chain
}

// MaxStep returns the highest step referenced in the subtree, at least 1.
func (b *Box) MaxStep() int {
	maxStep := 1
	b.Walk(func(n *Box) {
		if n.stepFrom > maxStep {
			maxStep = n.stepFrom
		}
		if n.stepTo > maxStep {
			maxStep = n.stepTo
		}
	})
	return maxStep
}

// Walk visits the subtree rooted at b in depth-first declaration order.
func (b *Box) Walk(visit func(*Box)) {
	visit(b)
	for _, child := range b.children {
		child.Walk(visit)
	}
}
