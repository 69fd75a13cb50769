package deckfile

import (
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
)

// props converts a StyleSpec into style overrides.
func props(spec StyleSpec) (style.Properties, error) {
	var p style.Properties

	if insets := paddingInsets(spec); insets != nil {
		p.Padding = insets
	}
	if spec.MainAlign != "" {
		a, err := parseMainAlignment(spec.MainAlign)
		if err != nil {
			return style.Properties{}, err
		}
		p.MainAlign = &a
	}
	if spec.CrossAlign != "" {
		a, err := parseCrossAlignment(spec.CrossAlign)
		if err != nil {
			return style.Properties{}, err
		}
		p.CrossAlign = &a
	}
	p.ZLevel = spec.ZLevel
	p.Visible = spec.Visible
	p.FontFamily = spec.FontFamily
	p.FontSize = spec.FontSize
	p.Bold = spec.Bold
	p.Italic = spec.Italic
	p.LineSpacing = spec.LineSpacing
	p.StrokeWidth = spec.StrokeWidth
	p.CornerRadius = spec.CornerRadius

	if spec.Color != "" {
		c, err := style.ParseColor(spec.Color)
		if err != nil {
			return style.Properties{}, err
		}
		p.Color = &c
	}
	if spec.Background != "" {
		c, err := style.ParseColor(spec.Background)
		if err != nil {
			return style.Properties{}, err
		}
		p.Background = &c
	}
	if spec.StrokeColor != "" {
		c, err := style.ParseColor(spec.StrokeColor)
		if err != nil {
			return style.Properties{}, err
		}
		p.StrokeColor = &c
	}
	return p, nil
}

// paddingInsets folds the scalar padding value and per-side overrides
// into edge insets; nil when no padding field is set.
func paddingInsets(spec StyleSpec) *geometry.EdgeInsets {
	if spec.Padding == nil && spec.PaddingLeft == nil && spec.PaddingRight == nil &&
		spec.PaddingTop == nil && spec.PaddingBottom == nil {
		return nil
	}
	var insets geometry.EdgeInsets
	if spec.Padding != nil {
		insets = geometry.InsetsAll(*spec.Padding)
	}
	if spec.PaddingLeft != nil {
		insets.Left = *spec.PaddingLeft
	}
	if spec.PaddingRight != nil {
		insets.Right = *spec.PaddingRight
	}
	if spec.PaddingTop != nil {
		insets.Top = *spec.PaddingTop
	}
	if spec.PaddingBottom != nil {
		insets.Bottom = *spec.PaddingBottom
	}
	return &insets
}

// mergeProps layers box-local overrides over a preset: a field set on
// `over` wins, otherwise the preset's value is kept.
func mergeProps(base, over style.Properties) style.Properties {
	out := base
	if over.Padding != nil {
		out.Padding = over.Padding
	}
	if over.MainAlign != nil {
		out.MainAlign = over.MainAlign
	}
	if over.CrossAlign != nil {
		out.CrossAlign = over.CrossAlign
	}
	if over.ZLevel != nil {
		out.ZLevel = over.ZLevel
	}
	if over.Visible != nil {
		out.Visible = over.Visible
	}
	if over.FontFamily != nil {
		out.FontFamily = over.FontFamily
	}
	if over.FontSize != nil {
		out.FontSize = over.FontSize
	}
	if over.Bold != nil {
		out.Bold = over.Bold
	}
	if over.Italic != nil {
		out.Italic = over.Italic
	}
	if over.LineSpacing != nil {
		out.LineSpacing = over.LineSpacing
	}
	if over.Color != nil {
		out.Color = over.Color
	}
	if over.Background != nil {
		out.Background = over.Background
	}
	if over.StrokeColor != nil {
		out.StrokeColor = over.StrokeColor
	}
	if over.StrokeWidth != nil {
		out.StrokeWidth = over.StrokeWidth
	}
	if over.CornerRadius != nil {
		out.CornerRadius = over.CornerRadius
	}
	return out
}
