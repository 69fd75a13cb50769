package box

import (
	"strings"

	"github.com/go-deck/deck/pkg/style"
)

// Content is a leaf item attached to a box. The layout resolver never
// looks inside content; it only asks the measurement collaborator for the
// content's natural size, and the export adapter later hands the content
// to a rendering collaborator unchanged.
type Content interface {
	isContent()
}

// TextRun is a fragment of a text line with uniform styling. A zero
// Color inherits the box's cascaded text color.
type TextRun struct {
	Text   string
	Color  style.Color
	Bold   bool
	Italic bool
}

// TextContent is a block of pre-styled text lines. Runs within a line are
// drawn left to right; lines stack vertically at the cascaded line
// spacing. Syntax highlighters and inline-markup parsers produce
// TextContent; the layout core treats the runs as opaque.
type TextContent struct {
	Lines [][]TextRun
}

func (*TextContent) isContent() {}

// Text builds plain TextContent from a string, splitting on newlines.
func Text(s string) *TextContent {
	raw := strings.Split(s, "\n")
	lines := make([][]TextRun, len(raw))
	for i, line := range raw {
		lines[i] = []TextRun{{Text: line}}
	}
	return &TextContent{Lines: lines}
}

// ImageContent is a bitmap leaf with a known natural pixel size.
//
// With Scale set the image occupies natural size × scale. With Scale
// zero the image is fitted into its resolved box, preserving aspect
// ratio, at draw time.
type ImageContent struct {
	Path          string
	Width, Height float64
	Scale         float64
}

func (*ImageContent) isContent() {}

// FragmentContent is an opaque pre-rendered fragment (typeset math, an
// inline SVG) whose intrinsic size was computed by an external
// collaborator. Ref identifies the fragment to the rendering collaborator
// at export time.
type FragmentContent struct {
	Ref           string
	Width, Height float64
}

func (*FragmentContent) isContent() {}
