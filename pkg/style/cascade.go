package style

import "fmt"

// StyleError reports an invalid style property value discovered during
// the cascade. It identifies the box and the offending property; the
// cascade never silently clamps bad values.
type StyleError struct {
	// Box is the identifier of the box whose effective style was being
	// resolved when the bad value surfaced.
	Box string
	// Property is the name of the offending property.
	Property string
	// Value is the rejected value.
	Value any
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("style: box %q property %s has invalid value %v", e.Box, e.Property, e.Value)
}

// Cascade resolves the effective style for the last box in the chain.
//
// The chain holds the declared overrides of every box from the root down
// to the box itself, in that order. Each property is resolved
// independently: the nearest (deepest) explicit value wins, and
// properties no ancestor sets fall back to [Default]. Cascade is a pure
// function of the chain.
//
// boxID identifies the target box in error reports only.
func Cascade(boxID string, chain []Properties) (Style, error) {
	st := Default()
	// Root-to-self application: a later (deeper) explicit value
	// overwrites an earlier one, which is exactly nearest-ancestor wins.
	for _, p := range chain {
		apply(&st, p)
	}
	if err := validate(boxID, st); err != nil {
		return Style{}, err
	}
	return st, nil
}

func apply(st *Style, p Properties) {
	if p.Padding != nil {
		st.Padding = *p.Padding
	}
	if p.MainAlign != nil {
		st.MainAlign = *p.MainAlign
	}
	if p.CrossAlign != nil {
		st.CrossAlign = *p.CrossAlign
	}
	if p.ZLevel != nil {
		st.ZLevel = *p.ZLevel
	}
	if p.Visible != nil {
		st.Visible = *p.Visible
	}
	if p.FontFamily != nil {
		st.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		st.FontSize = *p.FontSize
	}
	if p.Bold != nil {
		st.Bold = *p.Bold
	}
	if p.Italic != nil {
		st.Italic = *p.Italic
	}
	if p.LineSpacing != nil {
		st.LineSpacing = *p.LineSpacing
	}
	if p.Color != nil {
		st.Color = *p.Color
	}
	if p.Background != nil {
		st.Background = *p.Background
	}
	if p.StrokeColor != nil {
		st.StrokeColor = *p.StrokeColor
	}
	if p.StrokeWidth != nil {
		st.StrokeWidth = *p.StrokeWidth
	}
	if p.CornerRadius != nil {
		st.CornerRadius = *p.CornerRadius
	}
}

func validate(boxID string, st Style) error {
	pad := st.Padding
	if pad.Left < 0 || pad.Top < 0 || pad.Right < 0 || pad.Bottom < 0 {
		return &StyleError{Box: boxID, Property: "padding", Value: pad}
	}
	if st.FontSize <= 0 {
		return &StyleError{Box: boxID, Property: "font_size", Value: st.FontSize}
	}
	if st.LineSpacing <= 0 {
		return &StyleError{Box: boxID, Property: "line_spacing", Value: st.LineSpacing}
	}
	if st.StrokeWidth < 0 {
		return &StyleError{Box: boxID, Property: "stroke_width", Value: st.StrokeWidth}
	}
	if st.CornerRadius < 0 {
		return &StyleError{Box: boxID, Property: "corner_radius", Value: st.CornerRadius}
	}
	return nil
}

// Helper constructors for Properties fields. They keep call sites free
// of pointer noise when declaring overrides inline.

// Float returns a pointer to the given float64 value.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to the given int value.
func Int(v int) *int { return &v }

// Bool returns a pointer to the given bool value.
func Bool(v bool) *bool { return &v }

// Str returns a pointer to the given string value.
func Str(v string) *string { return &v }

// ColorOf returns a pointer to the given color value.
func ColorOf(c Color) *Color { return &c }
