// Package text provides the content collaborators around the layout
// core: deterministic text measurement and syntax-highlighted code
// leaves. The layout resolver consumes the sizes produced here as opaque
// leaf dimensions; it never shapes or breaks text itself.
package text

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// FaceMeasurer measures content leaves using a fixed reference font
// face, scaled to the cascaded font size. Measurement is deterministic
// for identical content and style inputs.
//
// The reference face carries a single weight; bold and italic runs
// measure the same as regular ones. That keeps metrics stable across
// platforms at the cost of slight over- or under-estimation for styled
// runs.
type FaceMeasurer struct {
	face     font.Face
	faceSize float64 // pixel size the face's metrics are expressed in
}

// NewMeasurer returns a measurer backed by the fixed 7x13 reference face.
func NewMeasurer() *FaceMeasurer {
	return &FaceMeasurer{
		face:     basicfont.Face7x13,
		faceSize: 13,
	}
}

// Measure returns the natural size of a content leaf.
func (m *FaceMeasurer) Measure(c box.Content, st style.Style) (geometry.Size, error) {
	switch c := c.(type) {
	case *box.TextContent:
		return m.measureText(c, st), nil
	case *box.ImageContent:
		scale := c.Scale
		if scale == 0 {
			scale = 1
		}
		return geometry.Size{Width: c.Width * scale, Height: c.Height * scale}, nil
	case *box.FragmentContent:
		return geometry.Size{Width: c.Width, Height: c.Height}, nil
	default:
		return geometry.Size{}, fmt.Errorf("text: unknown content type %T", c)
	}
}

func (m *FaceMeasurer) measureText(c *box.TextContent, st style.Style) geometry.Size {
	scale := st.FontSize / m.faceSize
	width := 0.0
	for _, line := range c.Lines {
		lineWidth := 0.0
		for _, run := range line {
			lineWidth += m.runWidth(run.Text) * scale
		}
		width = math.Max(width, lineWidth)
	}
	height := float64(len(c.Lines)) * st.FontSize * st.LineSpacing
	return geometry.Size{Width: width, Height: height}
}

// runWidth returns the advance of a string at the face's native size.
func (m *FaceMeasurer) runWidth(s string) float64 {
	adv := font.MeasureString(m.face, s)
	return float64(adv) / 64 // fixed.Int26_6 to pixels
}
