package layout

import (
	"fmt"
	"math"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
)

// measure computes the intrinsic size of b bottom-up and records it.
//
// Leaves take their content's natural size; auto containers sum flow
// children along the main axis and take the max across it; both add the
// box's own padding. A fixed axis reports its declared length. A
// fraction axis cannot be resolved until the parent's size is known, so
// it reports zero here (pending-on-parent) and contributes nothing to
// an auto ancestor's intrinsic size.
//
// Stacked children are out of flow and never contribute to the
// container's intrinsic size.
func (r *resolver) measure(b *box.Box) (geometry.Size, error) {
	if err := checkFraction(b); err != nil {
		return geometry.Size{}, err
	}

	st := r.styles[b.ID()]
	axis := b.Axis()

	var flowMain, flowCross float64
	for _, child := range b.Children() {
		childSize, err := r.measure(child)
		if err != nil {
			return geometry.Size{}, err
		}
		if child.Stacked() {
			continue
		}
		flowMain += mainOf(axis, childSize)
		flowCross = math.Max(flowCross, crossOf(axis, childSize))
	}

	var inner geometry.Size
	if c := b.ContentLeaf(); c != nil {
		if r.measurer == nil {
			return geometry.Size{}, fmt.Errorf("layout: box %q has content but no measurer was provided", b.ID())
		}
		measured, err := r.measurer.Measure(c, st)
		if err != nil {
			return geometry.Size{}, fmt.Errorf("layout: measuring content of box %q: %w", b.ID(), err)
		}
		inner = measured
	} else {
		inner = sizeOf(axis, flowMain, flowCross)
	}

	size := geometry.Size{
		Width:  inner.Width + st.Padding.Horizontal(),
		Height: inner.Height + st.Padding.Vertical(),
	}

	// Declared sizes override the content-driven value per axis.
	switch b.Width().Mode {
	case box.SizeFixed:
		size.Width = b.Width().Value
	case box.SizeFraction:
		size.Width = 0 // pending-on-parent
	}
	switch b.Height().Mode {
	case box.SizeFixed:
		size.Height = b.Height().Value
	case box.SizeFraction:
		size.Height = 0 // pending-on-parent
	}

	r.intrinsic[b.ID()] = size
	return size, nil
}

// checkFraction rejects fraction specs outside (0, 1] before any
// geometry is produced.
func checkFraction(b *box.Box) error {
	if s := b.Width(); s.Mode == box.SizeFraction && (s.Value <= 0 || s.Value > 1) {
		return &LayoutError{Box: b.ID(), Axis: "width", Fraction: s.Value}
	}
	if s := b.Height(); s.Mode == box.SizeFraction && (s.Value <= 0 || s.Value > 1) {
		return &LayoutError{Box: b.ID(), Axis: "height", Fraction: s.Value}
	}
	return nil
}
