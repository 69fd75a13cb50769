package layout

import (
	"math"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// arrange assigns b its final rectangle and positions its children
// top-down. rect is absolute, in the root's unit system.
//
// Flow children are placed along the container's axis in declaration
// order. Fixed and auto children claim their size first; fraction
// children then each take their proportion of the remaining main-axis
// space (every fraction sibling is resolved against the same remaining
// pool, not sequentially). If the children's total exceeds the available
// space they overflow: the container is flagged, nothing is shrunk.
//
// Stacked children are positioned independently by their own alignment
// relative to the padded area; their stacking affects paint order only.
func (r *resolver) arrange(b *box.Box, rect geometry.Rect) {
	r.rects[b.ID()] = rect

	children := b.Children()
	if len(children) == 0 {
		return
	}

	st := r.styles[b.ID()]
	axis := b.Axis()
	avail := rect.Inset(st.Padding)
	availMain := math.Max(mainOf(axis, avail.Size()), 0)
	availCross := math.Max(crossOf(axis, avail.Size()), 0)

	type slot struct {
		child       *box.Box
		main, cross float64
	}
	var flow []slot
	var stacked []*box.Box

	// First round: fixed and auto children claim main-axis space.
	claimed := 0.0
	for _, child := range children {
		if child.Stacked() {
			stacked = append(stacked, child)
			continue
		}
		s := slot{child: child}
		if m := r.axisSpec(child, axis, true); m.Mode != box.SizeFraction {
			s.main = r.resolvedSize(child, axis == box.AxisHorizontal, 0)
			claimed += s.main
		}
		flow = append(flow, s)
	}

	// Second round: fraction children divide what remains.
	remaining := math.Max(availMain-claimed, 0)
	total := 0.0
	for i := range flow {
		child := flow[i].child
		if m := r.axisSpec(child, axis, true); m.Mode == box.SizeFraction {
			flow[i].main = m.Value * remaining
		}
		flow[i].cross = r.resolveCross(child, axis, availCross, st.CrossAlign)
		total += flow[i].main
	}

	free := availMain - total
	if free < -floatSlack {
		r.overflow[b.ID()] = true
	}
	spacing, lead := mainSpacing(st.MainAlign, math.Max(free, 0), len(flow))

	cursor := lead
	for _, s := range flow {
		crossOffset := crossAxisOffset(st.CrossAlign, availCross, s.cross)
		childRect := r.childRect(avail, axis, cursor, crossOffset, s.main, s.cross)
		r.arrange(s.child, childRect)
		cursor += s.main + spacing
	}

	for _, child := range stacked {
		w := r.resolvedSize(child, true, avail.Width())
		h := r.resolvedSize(child, false, avail.Height())
		ax, ay := child.StackAlign()
		x := avail.Left + alignOffset(ax, avail.Width(), w)
		y := avail.Top + alignOffset(ay, avail.Height(), h)
		r.arrange(child, geometry.RectFromLTWH(x, y, w, h))
	}
}

// floatSlack absorbs accumulated floating-point error before flagging
// overflow.
const floatSlack = 0.0001

// axisSpec returns the child's declared spec for the container's main or
// cross axis.
func (r *resolver) axisSpec(child *box.Box, axis box.Axis, main bool) box.SizeSpec {
	horizontal := axis == box.AxisHorizontal
	if main == horizontal {
		return child.Width()
	}
	return child.Height()
}

// resolvedSize resolves a child's fixed or auto size on one axis; for a
// fraction spec it applies the fraction to the given pool.
func (r *resolver) resolvedSize(child *box.Box, isWidth bool, pool float64) float64 {
	spec := child.Height()
	if isWidth {
		spec = child.Width()
	}
	switch spec.Mode {
	case box.SizeFixed:
		return spec.Value
	case box.SizeFraction:
		return spec.Value * pool
	default:
		in := r.intrinsic[child.ID()]
		if isWidth {
			return in.Width
		}
		return in.Height
	}
}

// resolveCross resolves a flow child's size across the container axis.
func (r *resolver) resolveCross(child *box.Box, axis box.Axis, availCross float64, align style.CrossAlignment) float64 {
	spec := r.axisSpec(child, axis, false)
	switch spec.Mode {
	case box.SizeFixed:
		return spec.Value
	case box.SizeFraction:
		return spec.Value * availCross
	default:
		if align == style.CrossStretch {
			return availCross
		}
		in := r.intrinsic[child.ID()]
		return crossOf(axis, in)
	}
}

// mainSpacing converts free main-axis space into inter-child spacing and
// a leading offset according to the container's main alignment.
func mainSpacing(align style.MainAlignment, free float64, n int) (spacing, lead float64) {
	switch align {
	case style.MainCenter:
		lead = free * 0.5
	case style.MainEnd:
		lead = free
	case style.MainSpaceBetween:
		if n > 1 {
			spacing = free / float64(n-1)
		}
	}
	return
}

// crossAxisOffset places one child across the container axis.
func crossAxisOffset(align style.CrossAlignment, availCross, childCross float64) float64 {
	free := availCross - childCross
	if free <= 0 {
		return 0
	}
	switch align {
	case style.CrossCenter:
		return free * 0.5
	case style.CrossEnd:
		return free
	default:
		return 0
	}
}

// alignOffset places a stacked child along one absolute axis.
func alignOffset(align box.Alignment, avail, size float64) float64 {
	switch align {
	case box.AlignCenter:
		return (avail - size) * 0.5
	case box.AlignEnd:
		return avail - size
	default:
		return 0
	}
}

// childRect builds the absolute rectangle for a flow child given its
// main-axis cursor and cross-axis offset inside the padded area.
func (r *resolver) childRect(avail geometry.Rect, axis box.Axis, cursor, crossOffset, main, cross float64) geometry.Rect {
	if axis == box.AxisHorizontal {
		return geometry.RectFromLTWH(avail.Left+cursor, avail.Top+crossOffset, main, cross)
	}
	return geometry.RectFromLTWH(avail.Left+crossOffset, avail.Top+cursor, cross, main)
}
