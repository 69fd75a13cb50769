// Package style defines the cascading style model for box trees.
//
// Every style property is either explicitly set on a box (via
// [Properties]) or inherited from the nearest ancestor that sets it,
// falling back to the documented default. [Cascade] performs that
// resolution over an explicit ancestor chain and produces an immutable
// [Style] snapshot for a single layout pass.
package style

import (
	"fmt"

	"github.com/go-deck/deck/pkg/geometry"
)

// MainAlignment controls how children are positioned along the flow axis.
type MainAlignment int

const (
	// MainStart places children at the start of the flow axis.
	MainStart MainAlignment = iota
	// MainCenter centers the run of children along the flow axis.
	MainCenter
	// MainEnd places children at the end of the flow axis.
	MainEnd
	// MainSpaceBetween distributes free space evenly between children.
	// No space before the first or after the last child.
	MainSpaceBetween
)

// String returns a human-readable representation of the main alignment.
func (a MainAlignment) String() string {
	switch a {
	case MainStart:
		return "start"
	case MainCenter:
		return "center"
	case MainEnd:
		return "end"
	case MainSpaceBetween:
		return "space_between"
	default:
		return fmt.Sprintf("MainAlignment(%d)", int(a))
	}
}

// CrossAlignment controls how children are positioned across the flow axis.
type CrossAlignment int

const (
	// CrossStart places children at the start of the cross axis.
	CrossStart CrossAlignment = iota
	// CrossCenter centers children along the cross axis.
	CrossCenter
	// CrossEnd places children at the end of the cross axis.
	CrossEnd
	// CrossStretch stretches auto-sized children to fill the cross axis.
	CrossStretch
)

// String returns a human-readable representation of the cross alignment.
func (a CrossAlignment) String() string {
	switch a {
	case CrossStart:
		return "start"
	case CrossCenter:
		return "center"
	case CrossEnd:
		return "end"
	case CrossStretch:
		return "stretch"
	default:
		return fmt.Sprintf("CrossAlignment(%d)", int(a))
	}
}

// Properties holds the style overrides declared on a single box. A nil
// field means "not set here, inherit". Properties are the mutable input
// to the cascade; the resolved output is a [Style].
type Properties struct {
	Padding    *geometry.EdgeInsets
	MainAlign  *MainAlignment
	CrossAlign *CrossAlignment
	ZLevel     *int
	Visible    *bool

	FontFamily  *string
	FontSize    *float64
	Bold        *bool
	Italic      *bool
	LineSpacing *float64

	Color        *Color
	Background   *Color
	StrokeColor  *Color
	StrokeWidth  *float64
	CornerRadius *float64
}

// IsZero reports whether no property is set.
func (p Properties) IsZero() bool {
	return p == Properties{}
}

// Style is the effective style of a box after cascading. It is immutable
// once produced for a layout pass.
type Style struct {
	Padding    geometry.EdgeInsets
	MainAlign  MainAlignment
	CrossAlign CrossAlignment
	ZLevel     int
	Visible    bool

	FontFamily  string
	FontSize    float64
	Bold        bool
	Italic      bool
	LineSpacing float64

	Color        Color
	Background   Color
	StrokeColor  Color
	StrokeWidth  float64
	CornerRadius float64
}

// Default returns the system default style, used for every property that
// neither the box nor any ancestor sets.
func Default() Style {
	return Style{
		Padding:     geometry.EdgeInsets{},
		MainAlign:   MainStart,
		CrossAlign:  CrossStart,
		ZLevel:      0,
		Visible:     true,
		FontFamily:  "sans-serif",
		FontSize:    28,
		LineSpacing: 1.2,
		Color:       ColorBlack,
		Background:  ColorTransparent,
		StrokeColor: ColorTransparent,
		StrokeWidth: 1,
	}
}
