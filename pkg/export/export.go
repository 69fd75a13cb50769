// Package export turns a resolved box tree into an ordered sequence of
// draw instructions and serializes them as vector markup.
//
// Instructions are emitted in paint order: depth-first declaration
// order, reordered by the cascaded z-level for overlapping boxes (stable,
// so equal z-levels keep declaration order). The adapter reads the
// [layout.Geometry] snapshot strictly read-only and never re-measures
// content; sizing happened in the measure pass.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/layout"
	"github.com/go-deck/deck/pkg/style"
)

// ExportError reports a collaborator mismatch at export time: a content
// leaf whose intrinsic size was accepted during layout could not be
// rendered. Already-resolved geometry is unaffected.
type ExportError struct {
	// Box is the identifier of the affected box.
	Box string
	// Err is the underlying collaborator failure.
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export: box %q: %v", e.Box, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Instruction is a single draw command with absolute coordinates in the
// root's unit system.
type Instruction interface {
	// Bounds returns the area the instruction paints into.
	Bounds() geometry.Rect
	isInstruction()
}

// RectInstruction paints a box decoration: background fill and/or a
// stroked border.
type RectInstruction struct {
	Rect         geometry.Rect
	Fill         style.Color
	Stroke       style.Color
	StrokeWidth  float64
	CornerRadius float64
}

func (i RectInstruction) Bounds() geometry.Rect { return i.Rect }
func (RectInstruction) isInstruction()          {}

// TextInstruction places pre-styled text lines into a rectangle.
type TextInstruction struct {
	Rect    geometry.Rect
	Content *box.TextContent
	Style   style.Style
}

func (i TextInstruction) Bounds() geometry.Rect { return i.Rect }
func (TextInstruction) isInstruction()          {}

// ImageInstruction places a bitmap. Rect is the final fitted placement.
type ImageInstruction struct {
	Rect geometry.Rect
	Path string
}

func (i ImageInstruction) Bounds() geometry.Rect { return i.Rect }
func (ImageInstruction) isInstruction()          {}

// FragmentInstruction places an opaque pre-rendered fragment by
// reference; the render collaborator resolves Ref to actual markup.
type FragmentInstruction struct {
	Rect geometry.Rect
	Ref  string
}

func (i FragmentInstruction) Bounds() geometry.Rect { return i.Rect }
func (FragmentInstruction) isInstruction()          {}

// ContentRenderer converts a content leaf into a draw instruction. rect
// is the leaf's padded content area. Implementations must not re-measure:
// the intrinsic size was already consumed by the layout pass.
type ContentRenderer interface {
	Render(c box.Content, rect geometry.Rect, st style.Style) (Instruction, error)
}

// Instructions walks the tree with its resolved geometry and emits draw
// instructions for the given show step using the standard content
// renderer.
func Instructions(root *box.Box, geo *layout.Geometry, step int) ([]Instruction, error) {
	return InstructionsWith(root, geo, step, StandardRenderer{})
}

// InstructionsWith is [Instructions] with an explicit content renderer.
//
// Hidden boxes (visibility off, or outside the current show step)
// produce no instructions but their geometry still occupies space;
// children of a hidden box make their own visibility decision.
func InstructionsWith(root *box.Box, geo *layout.Geometry, step int, renderer ContentRenderer) ([]Instruction, error) {
	var entries []paintEntry
	var walkErr error

	root.Walk(func(b *box.Box) {
		if walkErr != nil {
			return
		}
		entry, err := paintBox(b, geo, step, renderer)
		if err != nil {
			walkErr = err
			return
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// Stable z ordering: smaller z-levels paint first, equal z-levels
	// keep declaration order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].z < entries[j].z
	})

	var out []Instruction
	for _, e := range entries {
		out = append(out, e.instructions...)
	}
	return out, nil
}

type paintEntry struct {
	z            int
	instructions []Instruction
}

func paintBox(b *box.Box, geo *layout.Geometry, step int, renderer ContentRenderer) (*paintEntry, error) {
	st, ok := geo.Style(b.ID())
	if !ok {
		return nil, &ExportError{Box: b.ID(), Err: fmt.Errorf("no cascaded style in geometry snapshot")}
	}
	rect, ok := geo.Rect(b.ID())
	if !ok {
		return nil, &ExportError{Box: b.ID(), Err: fmt.Errorf("no resolved rectangle in geometry snapshot")}
	}
	if !st.Visible || !b.VisibleAtStep(step) {
		return nil, nil
	}

	entry := &paintEntry{z: st.ZLevel}

	hasStroke := !st.StrokeColor.IsTransparent() && st.StrokeWidth > 0
	if !st.Background.IsTransparent() || hasStroke {
		decoration := RectInstruction{
			Rect:         rect,
			Fill:         st.Background,
			CornerRadius: st.CornerRadius,
		}
		if hasStroke {
			decoration.Stroke = st.StrokeColor
			decoration.StrokeWidth = st.StrokeWidth
		}
		entry.instructions = append(entry.instructions, decoration)
	}

	if c := b.ContentLeaf(); c != nil {
		ins, err := renderer.Render(c, rect.Inset(st.Padding), st)
		if err != nil {
			return nil, &ExportError{Box: b.ID(), Err: err}
		}
		entry.instructions = append(entry.instructions, ins)
	}

	if len(entry.instructions) == 0 {
		return nil, nil
	}
	return entry, nil
}

// StandardRenderer renders the built-in content kinds.
type StandardRenderer struct{}

// Render implements [ContentRenderer].
func (StandardRenderer) Render(c box.Content, rect geometry.Rect, st style.Style) (Instruction, error) {
	switch c := c.(type) {
	case *box.TextContent:
		return TextInstruction{Rect: rect, Content: c, Style: st}, nil
	case *box.ImageContent:
		return ImageInstruction{Rect: fitRect(rect, c.Width, c.Height, c.Scale), Path: c.Path}, nil
	case *box.FragmentContent:
		return FragmentInstruction{Rect: centerRect(rect, c.Width, c.Height), Ref: c.Ref}, nil
	default:
		return nil, fmt.Errorf("unsupported content type %T", c)
	}
}

// fitRect places natural×scale content centered in rect. With scale
// zero the content is scaled to fit the rect, preserving aspect ratio.
func fitRect(rect geometry.Rect, naturalW, naturalH, scale float64) geometry.Rect {
	if scale == 0 {
		if naturalW <= 0 || naturalH <= 0 {
			return geometry.RectFromLTWH(rect.Left, rect.Top, 0, 0)
		}
		scale = math.Min(rect.Width()/naturalW, rect.Height()/naturalH)
		if scale < 0 {
			scale = 0
		}
	}
	return centerRect(rect, naturalW*scale, naturalH*scale)
}

// centerRect centers a w×h area inside rect.
func centerRect(rect geometry.Rect, w, h float64) geometry.Rect {
	x := rect.Left + (rect.Width()-w)*0.5
	y := rect.Top + (rect.Height()-h)*0.5
	return geometry.RectFromLTWH(x, y, w, h)
}
