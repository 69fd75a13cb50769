package export_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/export"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/layout"
	"github.com/go-deck/deck/pkg/style"
)

func mustChild(t *testing.T, parent *box.Box, opts ...box.Option) *box.Box {
	t.Helper()
	child, err := parent.NewChild(opts...)
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	return child
}

// fixedMeasurer sizes every content leaf to the same box.
type fixedMeasurer struct {
	size geometry.Size
}

func (m fixedMeasurer) Measure(box.Content, style.Style) (geometry.Size, error) {
	return m.size, nil
}

func resolve(t *testing.T, root *box.Box) *layout.Geometry {
	t.Helper()
	geo, err := layout.Resolve(root, geometry.Size{Width: 800, Height: 600},
		fixedMeasurer{size: geometry.Size{Width: 100, Height: 20}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return geo
}

func TestInstructions_OnePerVisibleLeaf(t *testing.T) {
	root := box.NewRoot()
	mustChild(t, root, box.WithText("one"))
	mustChild(t, root, box.WithText("two"))
	mustChild(t, root) // empty container, nothing to paint

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instructions))
	}
	for _, ins := range instructions {
		if _, ok := ins.(export.TextInstruction); !ok {
			t.Errorf("instruction %T, want TextInstruction", ins)
		}
	}
}

func TestInstructions_HiddenBoxEmitsNothing(t *testing.T) {
	root := box.NewRoot()
	mustChild(t, root, box.WithText("shown"))
	mustChild(t, root, box.WithText("hidden"),
		box.WithStyle(style.Properties{Visible: style.Bool(false)}))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instructions))
	}

	// The hidden sibling still occupied layout space above.
	if got := instructions[0].Bounds().Top; got != 0 {
		t.Errorf("shown leaf y = %v, want 0", got)
	}
}

// TestInstructions_ZLevelOrder checks that paint order follows the
// cascaded z-level regardless of declaration order, stably for ties.
func TestInstructions_ZLevelOrder(t *testing.T) {
	bg := style.ColorOf(style.ColorWhite)
	root := box.NewRoot()
	top := mustChild(t, root,
		box.WithSize(box.Fixed(10), box.Fixed(10)),
		box.WithStyle(style.Properties{ZLevel: style.Int(2), Background: bg}))
	bottom := mustChild(t, root,
		box.WithSize(box.Fixed(10), box.Fixed(10)),
		box.WithStyle(style.Properties{ZLevel: style.Int(0), Background: bg}))
	middle := mustChild(t, root,
		box.WithSize(box.Fixed(10), box.Fixed(10)),
		box.WithStyle(style.Properties{ZLevel: style.Int(1), Background: bg}))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instructions) != 3 {
		t.Fatalf("got %d instructions, want 3", len(instructions))
	}

	// Identify each instruction by the y-origin its box got in flow.
	wantY := []float64{
		rectTop(t, geo, bottom),
		rectTop(t, geo, middle),
		rectTop(t, geo, top),
	}
	for i, ins := range instructions {
		if got := ins.Bounds().Top; got != wantY[i] {
			t.Errorf("paint position %d has y = %v, want %v", i, got, wantY[i])
		}
	}
}

func rectTop(t *testing.T, geo *layout.Geometry, b *box.Box) float64 {
	t.Helper()
	r, ok := geo.Rect(b.ID())
	if !ok {
		t.Fatalf("no rect for %s", b.ID())
	}
	return r.Top
}

// TestInstructions_ZLevelInherited checks that a z-level declared on a
// parent cascades to descendants.
func TestInstructions_ZLevelInherited(t *testing.T) {
	root := box.NewRoot()
	group := mustChild(t, root, box.WithStyle(style.Properties{ZLevel: style.Int(5)}))
	mustChild(t, group, box.WithText("raised"))
	mustChild(t, root, box.WithText("base"))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instructions) != 2 {
		t.Fatalf("got %d instructions, want 2", len(instructions))
	}

	// "base" (z 0) paints before "raised" (inherited z 5) despite being
	// declared later.
	first := instructions[0].(export.TextInstruction)
	if first.Content.Lines[0][0].Text != "base" {
		t.Errorf("first painted text = %q, want base", first.Content.Lines[0][0].Text)
	}
}

func TestInstructions_StepFiltering(t *testing.T) {
	root := box.NewRoot()
	mustChild(t, root, box.WithText("always"))
	later := mustChild(t, root, box.WithText("later"), box.FromStep(2))

	geo := resolve(t, root)

	atOne, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(atOne) != 1 {
		t.Fatalf("step 1: got %d instructions, want 1", len(atOne))
	}

	atTwo, err := export.Instructions(root, geo, 2)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(atTwo) != 2 {
		t.Fatalf("step 2: got %d instructions, want 2", len(atTwo))
	}

	// Geometry does not depend on the step: the step-2 leaf holds its
	// place at step 1 as well.
	r, _ := geo.Rect(later.ID())
	if r.Top == 0 {
		t.Error("stepped leaf lost its layout slot")
	}
}

func TestInstructions_DecorationRect(t *testing.T) {
	root := box.NewRoot()
	mustChild(t, root,
		box.WithSize(box.Fixed(200), box.Fixed(100)),
		box.WithStyle(style.Properties{
			Background:   style.ColorOf(style.RGB(0xee, 0xee, 0xee)),
			StrokeColor:  style.ColorOf(style.ColorBlack),
			StrokeWidth:  style.Float(2),
			CornerRadius: style.Float(8),
		}))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	if len(instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(instructions))
	}
	rect, ok := instructions[0].(export.RectInstruction)
	if !ok {
		t.Fatalf("instruction %T, want RectInstruction", instructions[0])
	}
	if rect.StrokeWidth != 2 || rect.CornerRadius != 8 {
		t.Errorf("decoration = %+v", rect)
	}
}

// failingRenderer simulates a collaborator that rejects content at
// export time.
type failingRenderer struct{}

func (failingRenderer) Render(box.Content, geometry.Rect, style.Style) (export.Instruction, error) {
	return nil, fmt.Errorf("fragment registry unavailable")
}

func TestInstructionsWith_CollaboratorFailure(t *testing.T) {
	root := box.NewRoot()
	leaf := mustChild(t, root, box.WithText("body"))

	geo := resolve(t, root)
	_, err := export.InstructionsWith(root, geo, 1, failingRenderer{})
	var exportErr *export.ExportError
	if !errors.As(err, &exportErr) {
		t.Fatalf("got %v, want ExportError", err)
	}
	if exportErr.Box != leaf.ID() {
		t.Errorf("error box = %q, want %q", exportErr.Box, leaf.ID())
	}

	// The geometry snapshot is untouched by the failed export.
	if _, ok := geo.Rect(leaf.ID()); !ok {
		t.Error("geometry lost the leaf's rect")
	}
}

func TestWriteSVG(t *testing.T) {
	root := box.NewRoot(box.WithPadding(geometry.InsetsAll(10)))
	mustChild(t, root, box.WithText("Hello"),
		box.WithStyle(style.Properties{Color: style.ColorOf(style.ColorRed)}))
	mustChild(t, root,
		box.WithSize(box.Fixed(50), box.Fixed(50)),
		box.WithStyle(style.Properties{Background: style.ColorOf(style.ColorBlue)}))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}

	var buf strings.Builder
	view := geometry.Size{Width: 800, Height: 600}
	if err := export.WriteSVG(&buf, instructions, view, style.ColorWhite); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	svg := buf.String()

	for _, want := range []string{
		`viewBox="0 0 800 600"`,
		"<text",
		`fill="#ff0000"`,
		`fill="#0000ff"`,
		"Hello",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q:\n%s", want, svg)
		}
	}
}

func TestImagePlacement_FitAndScale(t *testing.T) {
	root := box.NewRoot()
	fit := mustChild(t, root,
		box.WithSize(box.Fixed(400), box.Fixed(100)),
		box.WithContent(&box.ImageContent{Path: "a.png", Width: 200, Height: 100}))

	geo := resolve(t, root)
	instructions, err := export.Instructions(root, geo, 1)
	if err != nil {
		t.Fatalf("Instructions: %v", err)
	}
	img, ok := instructions[0].(export.ImageInstruction)
	if !ok {
		t.Fatalf("instruction %T, want ImageInstruction", instructions[0])
	}
	// Scale-to-fit in 400x100 for a 2:1 image is limited by height:
	// 200x100 centered horizontally.
	if img.Rect.Width() != 200 || img.Rect.Height() != 100 {
		t.Errorf("fitted image = %vx%v, want 200x100", img.Rect.Width(), img.Rect.Height())
	}
	r, _ := geo.Rect(fit.ID())
	if img.Rect.Left != r.Left+100 {
		t.Errorf("fitted image x = %v, want centered at %v", img.Rect.Left, r.Left+100)
	}
}
