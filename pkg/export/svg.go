package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// svgNS is the XML namespace of the emitted markup.
const svgNS = "http://www.w3.org/2000/svg"

// ascentRatio approximates the baseline position within a line box for
// the reference face; the sink places text baselines at
// top + line×lineHeight + fontSize×ascentRatio.
const ascentRatio = 0.8

// SVGDocument builds an SVG document from an ordered instruction
// sequence. The background, when not transparent, is painted first as a
// full-view rectangle.
func SVGDocument(instructions []Instruction, view geometry.Size, background style.Color) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", svgNS)
	svg.CreateAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	setNum(svg, "width", view.Width)
	setNum(svg, "height", view.Height)
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(view.Width), num(view.Height)))

	if !background.IsTransparent() {
		bg := svg.CreateElement("rect")
		setNum(bg, "x", 0)
		setNum(bg, "y", 0)
		setNum(bg, "width", view.Width)
		setNum(bg, "height", view.Height)
		bg.CreateAttr("fill", background.Hex())
	}

	for _, ins := range instructions {
		appendInstruction(svg, ins)
	}
	return doc
}

// WriteSVG serializes the instruction sequence as SVG markup.
func WriteSVG(w io.Writer, instructions []Instruction, view geometry.Size, background style.Color) error {
	doc := SVGDocument(instructions, view, background)
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing svg: %w", err)
	}
	return nil
}

func appendInstruction(svg *etree.Element, ins Instruction) {
	switch ins := ins.(type) {
	case RectInstruction:
		appendRect(svg, ins)
	case TextInstruction:
		appendText(svg, ins)
	case ImageInstruction:
		appendImage(svg, ins)
	case FragmentInstruction:
		appendFragment(svg, ins)
	}
}

func appendRect(svg *etree.Element, ins RectInstruction) {
	e := svg.CreateElement("rect")
	setNum(e, "x", ins.Rect.Left)
	setNum(e, "y", ins.Rect.Top)
	setNum(e, "width", ins.Rect.Width())
	setNum(e, "height", ins.Rect.Height())
	if ins.CornerRadius > 0 {
		setNum(e, "rx", ins.CornerRadius)
	}
	if ins.Fill.IsTransparent() {
		e.CreateAttr("fill", "none")
	} else {
		e.CreateAttr("fill", ins.Fill.Hex())
	}
	if !ins.Stroke.IsTransparent() && ins.StrokeWidth > 0 {
		e.CreateAttr("stroke", ins.Stroke.Hex())
		setNum(e, "stroke-width", ins.StrokeWidth)
	}
}

func appendText(svg *etree.Element, ins TextInstruction) {
	st := ins.Style
	lineHeight := st.FontSize * st.LineSpacing
	for i, line := range ins.Content.Lines {
		if len(line) == 0 {
			continue
		}
		e := svg.CreateElement("text")
		setNum(e, "x", ins.Rect.Left)
		setNum(e, "y", ins.Rect.Top+float64(i)*lineHeight+st.FontSize*ascentRatio)
		e.CreateAttr("font-family", st.FontFamily)
		setNum(e, "font-size", st.FontSize)
		e.CreateAttr("fill", st.Color.Hex())
		e.CreateAttr("xml:space", "preserve")
		for _, run := range line {
			appendRun(e, run, st)
		}
	}
}

func appendRun(textEl *etree.Element, run box.TextRun, st style.Style) {
	span := textEl.CreateElement("tspan")
	if !run.Color.IsTransparent() && run.Color != st.Color {
		span.CreateAttr("fill", run.Color.Hex())
	}
	if run.Bold || st.Bold {
		span.CreateAttr("font-weight", "bold")
	}
	if run.Italic || st.Italic {
		span.CreateAttr("font-style", "italic")
	}
	span.SetText(run.Text)
}

func appendImage(svg *etree.Element, ins ImageInstruction) {
	e := svg.CreateElement("image")
	setNum(e, "x", ins.Rect.Left)
	setNum(e, "y", ins.Rect.Top)
	setNum(e, "width", ins.Rect.Width())
	setNum(e, "height", ins.Rect.Height())
	e.CreateAttr("href", ins.Path)
}

// appendFragment places an opaque fragment as a <use> reference; the
// downstream render collaborator substitutes the actual markup.
func appendFragment(svg *etree.Element, ins FragmentInstruction) {
	e := svg.CreateElement("use")
	e.CreateAttr("href", "#"+ins.Ref)
	setNum(e, "x", ins.Rect.Left)
	setNum(e, "y", ins.Rect.Top)
	setNum(e, "width", ins.Rect.Width())
	setNum(e, "height", ins.Rect.Height())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func setNum(e *etree.Element, name string, v float64) {
	e.CreateAttr(name, num(v))
}
