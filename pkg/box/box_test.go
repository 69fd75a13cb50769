package box_test

import (
	"errors"
	"testing"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/style"
)

func TestNewChild_RejectsChildrenUnderContentLeaf(t *testing.T) {
	root := box.NewRoot()
	leaf, err := root.NewChild(box.WithText("title"))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	_, err = leaf.NewChild()
	var structErr *box.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("got %v, want StructuralError", err)
	}
	if structErr.Box != leaf.ID() {
		t.Errorf("error box = %q, want %q", structErr.Box, leaf.ID())
	}
}

func TestSetContent_RejectsContentUnderContainer(t *testing.T) {
	root := box.NewRoot()
	parent, err := root.NewChild()
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	if _, err := parent.NewChild(); err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	err = parent.SetContent(box.Text("late"))
	var structErr *box.StructuralError
	if !errors.As(err, &structErr) {
		t.Fatalf("got %v, want StructuralError for content under container", err)
	}
	if structErr.Op != "SetContent" {
		t.Errorf("Op = %q, want SetContent", structErr.Op)
	}
}

func TestBoxIDsAreUniquePerTree(t *testing.T) {
	root := box.NewRoot()
	seen := map[string]bool{root.ID(): true}
	for range 5 {
		child, err := root.NewChild()
		if err != nil {
			t.Fatalf("NewChild: %v", err)
		}
		if seen[child.ID()] {
			t.Fatalf("duplicate box id %q", child.ID())
		}
		seen[child.ID()] = true
	}
}

func TestChain_RootToSelf(t *testing.T) {
	rootSize := style.Float(40)
	childSize := style.Float(20)

	root := box.NewRoot(box.WithStyle(style.Properties{FontSize: rootSize}))
	mid, err := root.NewChild()
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	leaf, err := mid.NewChild(box.WithStyle(style.Properties{FontSize: childSize}))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	chain := leaf.Chain()
	if len(chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(chain))
	}
	if chain[0].FontSize != rootSize || chain[2].FontSize != childSize {
		t.Error("chain not ordered root to self")
	}
	if chain[1].FontSize != nil {
		t.Error("middle box unexpectedly carries a font size")
	}
}

func TestParseSizeSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    box.SizeSpec
		wantErr bool
	}{
		{"auto", box.Auto(), false},
		{"", box.Auto(), false},
		{"120", box.Fixed(120), false},
		{"37.5", box.Fixed(37.5), false},
		{"50%", box.Fraction(0.5), false},
		{"100%", box.Fraction(1), false},
		{"abc", box.SizeSpec{}, true},
		{"%", box.SizeSpec{}, true},
		{"-40", box.SizeSpec{}, true},
	}
	for _, tt := range tests {
		got, err := box.ParseSizeSpec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSizeSpec(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSizeSpec(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSizeSpec(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVisibleAtStep(t *testing.T) {
	root := box.NewRoot()
	fromTwo, err := root.NewChild(box.FromStep(2))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	window, err := root.NewChild(box.WithSteps(2, 3))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	tests := []struct {
		b    *box.Box
		step int
		want bool
	}{
		{fromTwo, 1, false},
		{fromTwo, 2, true},
		{fromTwo, 9, true},
		{window, 1, false},
		{window, 2, true},
		{window, 3, true},
		{window, 4, false},
	}
	for _, tt := range tests {
		if got := tt.b.VisibleAtStep(tt.step); got != tt.want {
			t.Errorf("%s visible at step %d = %v, want %v", tt.b.ID(), tt.step, got, tt.want)
		}
	}
}

// TestChildInheritsStepWindow checks that a child appears no earlier
// than its parent.
func TestChildInheritsStepWindow(t *testing.T) {
	root := box.NewRoot()
	parent, err := root.NewChild(box.FromStep(3))
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	child, err := parent.NewChild()
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	if child.VisibleAtStep(2) {
		t.Error("child visible before its parent's first step")
	}
	if !child.VisibleAtStep(3) {
		t.Error("child not visible at its parent's first step")
	}
}

func TestMaxStep(t *testing.T) {
	root := box.NewRoot()
	if got := root.MaxStep(); got != 1 {
		t.Errorf("MaxStep of plain tree = %d, want 1", got)
	}

	group, err := root.NewChild()
	if err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	if _, err := group.NewChild(box.FromStep(4)); err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	if _, err := root.NewChild(box.WithSteps(2, 3)); err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	if got := root.MaxStep(); got != 4 {
		t.Errorf("MaxStep = %d, want 4", got)
	}
}

func TestName_FallsBackToID(t *testing.T) {
	unnamed := box.NewRoot()
	if unnamed.Name() != unnamed.ID() {
		t.Errorf("unnamed box Name() = %q, want its id %q", unnamed.Name(), unnamed.ID())
	}
	named := box.NewRoot(box.WithName("cover"))
	if named.Name() != "cover" {
		t.Errorf("Name() = %q, want cover", named.Name())
	}
}

func TestWalk_DeclarationOrder(t *testing.T) {
	root := box.NewRoot()
	a, _ := root.NewChild(box.WithName("a"))
	if _, err := a.NewChild(box.WithName("a1")); err != nil {
		t.Fatalf("NewChild: %v", err)
	}
	if _, err := root.NewChild(box.WithName("b")); err != nil {
		t.Fatalf("NewChild: %v", err)
	}

	var order []string
	root.Walk(func(b *box.Box) {
		order = append(order, b.Name())
	})

	// The unnamed root falls back to its id.
	want := []string{root.ID(), "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("visited %d boxes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("walk order = %v, want %v", order, want)
		}
	}
}

func TestTextSplitsLines(t *testing.T) {
	content := box.Text("first\nsecond")
	if len(content.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(content.Lines))
	}
	if content.Lines[1][0].Text != "second" {
		t.Errorf("second line = %q", content.Lines[1][0].Text)
	}
}
