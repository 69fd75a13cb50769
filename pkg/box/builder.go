package box

import (
	"fmt"
	"strconv"

	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// StructuralError reports a box tree invariant violated at construction
// time. It is fatal to the construction call that raised it; the rest of
// the tree is unaffected.
type StructuralError struct {
	// Box is the identifier of the box the operation targeted.
	Box string
	// Op is the construction operation that failed.
	Op string
	// Reason describes the violated invariant.
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("box: %s on %q: %s", e.Op, e.Box, e.Reason)
}

// Option configures a box at construction time.
type Option func(*Box)

// WithName assigns a debugging name to the box.
func WithName(name string) Option {
	return func(b *Box) { b.name = name }
}

// WithAxis sets the flow direction for the box's children.
func WithAxis(axis Axis) Option {
	return func(b *Box) { b.axis = axis }
}

// Horizontal lays the box's children out in a row.
func Horizontal() Option {
	return WithAxis(AxisHorizontal)
}

// WithWidth declares the width of the box.
func WithWidth(spec SizeSpec) Option {
	return func(b *Box) { b.width = spec }
}

// WithHeight declares the height of the box.
func WithHeight(spec SizeSpec) Option {
	return func(b *Box) { b.height = spec }
}

// WithSize declares both dimensions of the box.
func WithSize(width, height SizeSpec) Option {
	return func(b *Box) {
		b.width = width
		b.height = height
	}
}

// Stacked takes the box out of its parent's flow. It overlaps its
// siblings and is positioned by the given per-axis alignment relative to
// the parent's padded area. Paint order among overlapping boxes follows
// the cascaded z-level.
func Stacked(x, y Alignment) Option {
	return func(b *Box) {
		b.stacked = true
		b.alignX = x
		b.alignY = y
	}
}

// WithSteps restricts the box to show steps [from, to]. Pass to == 0 to
// keep the box visible from `from` on. The box occupies layout space at
// every step; steps only filter export.
func WithSteps(from, to int) Option {
	return func(b *Box) {
		b.stepFrom = from
		b.stepTo = to
	}
}

// FromStep shows the box from the given step on.
func FromStep(from int) Option {
	return WithSteps(from, 0)
}

// WithStyle declares style overrides on the box.
func WithStyle(props style.Properties) Option {
	return func(b *Box) { b.props = props }
}

// WithPadding sets the box's padding override.
func WithPadding(insets geometry.EdgeInsets) Option {
	return func(b *Box) { b.props.Padding = &insets }
}

// WithContent attaches a content leaf to the box.
func WithContent(c Content) Option {
	return func(b *Box) { b.content = c }
}

// WithText attaches plain text content, split on newlines.
func WithText(s string) Option {
	return WithContent(Text(s))
}

// NewRoot creates the root box of a slide tree.
func NewRoot(opts ...Option) *Box {
	seq := 0
	b := &Box{seq: &seq}
	for _, opt := range opts {
		opt(b)
	}
	b.id = nextID(b)
	return b
}

// NewChild creates a box and appends it to b's children, in declaration
// order. It fails with a [StructuralError] if b already carries content:
// a box is a leaf or a container, never both.
func (b *Box) NewChild(opts ...Option) (*Box, error) {
	if b.content != nil {
		return nil, &StructuralError{
			Box:    b.ID(),
			Op:     "NewChild",
			Reason: "box has content; a leaf cannot have children",
		}
	}
	child := &Box{parent: b, seq: b.seq, stepFrom: b.stepFrom}
	for _, opt := range opts {
		opt(child)
	}
	child.id = nextID(child)
	b.children = append(b.children, child)
	return child, nil
}

// SetContent attaches content to an existing box, turning it into a
// leaf. It fails with a [StructuralError] if the box already has
// children: a box is a leaf or a container, never both.
func (b *Box) SetContent(c Content) error {
	if len(b.children) > 0 {
		return &StructuralError{
			Box:    b.ID(),
			Op:     "SetContent",
			Reason: "box has children; a container cannot carry content",
		}
	}
	b.content = c
	return nil
}

func nextID(b *Box) string {
	*b.seq++
	return "box-" + strconv.Itoa(*b.seq)
}
