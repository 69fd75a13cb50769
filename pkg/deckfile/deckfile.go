// Package deckfile loads declarative YAML deck descriptions into a
// [deck.Deck]. It is a thin authoring layer: every box in the file goes
// through the same construction API programmatic callers use, so
// structural violations are rejected at load time.
package deckfile

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/deck"
	"github.com/go-deck/deck/pkg/style"
	"github.com/go-deck/deck/pkg/text"
)

// SupportedVersion is the deck file format major version this loader
// accepts.
const SupportedVersion = "v1"

// File is the top-level YAML document.
type File struct {
	Version     string               `yaml:"version"`
	SlideWidth  float64              `yaml:"slide_width,omitempty"`
	SlideHeight float64              `yaml:"slide_height,omitempty"`
	Styles      map[string]StyleSpec `yaml:"styles,omitempty"`
	Slides      []SlideSpec          `yaml:"slides"`
}

// SlideSpec describes one slide.
type SlideSpec struct {
	Width      float64 `yaml:"width,omitempty"`
	Height     float64 `yaml:"height,omitempty"`
	Background string  `yaml:"background,omitempty"`
	Box        BoxSpec `yaml:"box"`
}

// StyleSpec holds the declarable style overrides of a box or a named
// preset. All fields are optional; unset fields inherit.
type StyleSpec struct {
	Padding       *float64 `yaml:"padding,omitempty"`
	PaddingLeft   *float64 `yaml:"padding_left,omitempty"`
	PaddingRight  *float64 `yaml:"padding_right,omitempty"`
	PaddingTop    *float64 `yaml:"padding_top,omitempty"`
	PaddingBottom *float64 `yaml:"padding_bottom,omitempty"`

	MainAlign  string `yaml:"main_align,omitempty"`
	CrossAlign string `yaml:"cross_align,omitempty"`
	ZLevel     *int   `yaml:"z_level,omitempty"`
	Visible    *bool  `yaml:"visible,omitempty"`

	FontFamily  *string  `yaml:"font_family,omitempty"`
	FontSize    *float64 `yaml:"font_size,omitempty"`
	Bold        *bool    `yaml:"bold,omitempty"`
	Italic      *bool    `yaml:"italic,omitempty"`
	LineSpacing *float64 `yaml:"line_spacing,omitempty"`

	Color        string   `yaml:"color,omitempty"`
	Background   string   `yaml:"background,omitempty"`
	StrokeColor  string   `yaml:"stroke_color,omitempty"`
	StrokeWidth  *float64 `yaml:"stroke_width,omitempty"`
	CornerRadius *float64 `yaml:"corner_radius,omitempty"`
}

// BoxSpec describes one box and its subtree.
type BoxSpec struct {
	Name       string `yaml:"name,omitempty"`
	Horizontal bool   `yaml:"horizontal,omitempty"`
	Width      string `yaml:"width,omitempty"`
	Height     string `yaml:"height,omitempty"`

	Stacked bool   `yaml:"stacked,omitempty"`
	AlignX  string `yaml:"align_x,omitempty"`
	AlignY  string `yaml:"align_y,omitempty"`

	FromStep int `yaml:"from_step,omitempty"`
	ToStep   int `yaml:"to_step,omitempty"`

	// Style names a preset from the file's styles map; the box's own
	// overrides below win over the preset.
	Style     string    `yaml:"style,omitempty"`
	StyleSpec StyleSpec `yaml:",inline"`

	Text     string        `yaml:"text,omitempty"`
	Code     *CodeSpec     `yaml:"code,omitempty"`
	Image    *ImageSpec    `yaml:"image,omitempty"`
	Fragment *FragmentSpec `yaml:"fragment,omitempty"`

	Children []BoxSpec `yaml:"children,omitempty"`
}

// CodeSpec describes a syntax-highlighted code leaf.
type CodeSpec struct {
	Language    string `yaml:"language"`
	Source      string `yaml:"source"`
	Style       string `yaml:"style,omitempty"`
	LineNumbers bool   `yaml:"line_numbers,omitempty"`
}

// ImageSpec describes a bitmap leaf with known natural size.
type ImageSpec struct {
	Path   string  `yaml:"path"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Scale  float64 `yaml:"scale,omitempty"`
}

// FragmentSpec describes an opaque pre-sized fragment leaf.
type FragmentSpec struct {
	Ref    string  `yaml:"ref"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Load reads and builds a deck from a YAML file.
func Load(path string, opts ...deck.Option) (*deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("deckfile: %w", err)
	}
	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("deckfile: %s: %w", path, err)
	}
	return d, nil
}

// Parse builds a deck from YAML data.
func Parse(data []byte, opts ...deck.Option) (*deck.Deck, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("missing version (expected %s)", SupportedVersion)
	}
	if !semver.IsValid(f.Version) || semver.Major(f.Version) != SupportedVersion {
		return nil, fmt.Errorf("unsupported version %q (expected %s)", f.Version, SupportedVersion)
	}

	if f.SlideWidth > 0 && f.SlideHeight > 0 {
		opts = append(opts, deck.WithSlideSize(f.SlideWidth, f.SlideHeight))
	}
	d := deck.New(opts...)

	for i, slideSpec := range f.Slides {
		if err := buildSlide(d, f.Styles, slideSpec); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return d, nil
}

func buildSlide(d *deck.Deck, presets map[string]StyleSpec, spec SlideSpec) error {
	slideOpts := []deck.SlideOption{}
	if spec.Width > 0 && spec.Height > 0 {
		slideOpts = append(slideOpts, deck.SlideSize(spec.Width, spec.Height))
	}
	if spec.Background != "" {
		bg, err := style.ParseColor(spec.Background)
		if err != nil {
			return err
		}
		slideOpts = append(slideOpts, deck.SlideBackground(bg))
	}

	rootOpts, err := boxOptions(presets, spec.Box)
	if err != nil {
		return err
	}
	slideOpts = append(slideOpts, deck.RootOptions(rootOpts...))

	slide := d.AddSlide(slideOpts...)
	return buildChildren(slide.Root(), presets, spec.Box.Children)
}

func buildChildren(parent *box.Box, presets map[string]StyleSpec, specs []BoxSpec) error {
	for _, spec := range specs {
		opts, err := boxOptions(presets, spec)
		if err != nil {
			return err
		}
		child, err := parent.NewChild(opts...)
		if err != nil {
			return err
		}
		if err := buildChildren(child, presets, spec.Children); err != nil {
			return err
		}
	}
	return nil
}

func boxOptions(presets map[string]StyleSpec, spec BoxSpec) ([]box.Option, error) {
	var opts []box.Option

	if spec.Name != "" {
		opts = append(opts, box.WithName(spec.Name))
	}
	if spec.Horizontal {
		opts = append(opts, box.Horizontal())
	}
	if spec.Width != "" {
		w, err := box.ParseSizeSpec(spec.Width)
		if err != nil {
			return nil, err
		}
		opts = append(opts, box.WithWidth(w))
	}
	if spec.Height != "" {
		h, err := box.ParseSizeSpec(spec.Height)
		if err != nil {
			return nil, err
		}
		opts = append(opts, box.WithHeight(h))
	}
	if spec.Stacked {
		ax, err := parseAlignment(spec.AlignX)
		if err != nil {
			return nil, err
		}
		ay, err := parseAlignment(spec.AlignY)
		if err != nil {
			return nil, err
		}
		opts = append(opts, box.Stacked(ax, ay))
	}
	if spec.FromStep > 0 || spec.ToStep > 0 {
		from := spec.FromStep
		if from == 0 {
			from = 1
		}
		opts = append(opts, box.WithSteps(from, spec.ToStep))
	}

	props, err := resolveProps(presets, spec)
	if err != nil {
		return nil, err
	}
	if !props.IsZero() {
		opts = append(opts, box.WithStyle(props))
	}

	content, err := contentFor(spec)
	if err != nil {
		return nil, err
	}
	if content != nil {
		opts = append(opts, box.WithContent(content))
	}
	return opts, nil
}

// resolveProps merges the named preset (if any) under the box's own
// overrides.
func resolveProps(presets map[string]StyleSpec, spec BoxSpec) (style.Properties, error) {
	var base style.Properties
	if spec.Style != "" {
		preset, ok := presets[spec.Style]
		if !ok {
			return style.Properties{}, fmt.Errorf("unknown style %q", spec.Style)
		}
		p, err := props(preset)
		if err != nil {
			return style.Properties{}, err
		}
		base = p
	}
	own, err := props(spec.StyleSpec)
	if err != nil {
		return style.Properties{}, err
	}
	return mergeProps(base, own), nil
}

func contentFor(spec BoxSpec) (box.Content, error) {
	declared := 0
	for _, set := range []bool{spec.Text != "", spec.Code != nil, spec.Image != nil, spec.Fragment != nil} {
		if set {
			declared++
		}
	}
	if declared > 1 {
		return nil, fmt.Errorf("box %q declares multiple content kinds", spec.Name)
	}

	switch {
	case spec.Text != "":
		return box.Text(spec.Text), nil
	case spec.Code != nil:
		content, err := text.HighlightCode(spec.Code.Source, spec.Code.Language, spec.Code.Style)
		if err != nil {
			return nil, err
		}
		if spec.Code.LineNumbers {
			content = text.NumberLines(content, style.RGB(0x99, 0x99, 0x99))
		}
		return content, nil
	case spec.Image != nil:
		return &box.ImageContent{
			Path:   spec.Image.Path,
			Width:  spec.Image.Width,
			Height: spec.Image.Height,
			Scale:  spec.Image.Scale,
		}, nil
	case spec.Fragment != nil:
		return &box.FragmentContent{
			Ref:    spec.Fragment.Ref,
			Width:  spec.Fragment.Width,
			Height: spec.Fragment.Height,
		}, nil
	default:
		return nil, nil
	}
}

func parseAlignment(s string) (box.Alignment, error) {
	switch s {
	case "", "start":
		return box.AlignStart, nil
	case "center":
		return box.AlignCenter, nil
	case "end":
		return box.AlignEnd, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", s)
	}
}

func parseMainAlignment(s string) (style.MainAlignment, error) {
	switch s {
	case "start":
		return style.MainStart, nil
	case "center":
		return style.MainCenter, nil
	case "end":
		return style.MainEnd, nil
	case "space_between":
		return style.MainSpaceBetween, nil
	default:
		return 0, fmt.Errorf("unknown main alignment %q", s)
	}
}

func parseCrossAlignment(s string) (style.CrossAlignment, error) {
	switch s {
	case "start":
		return style.CrossStart, nil
	case "center":
		return style.CrossCenter, nil
	case "end":
		return style.CrossEnd, nil
	case "stretch":
		return style.CrossStretch, nil
	default:
		return 0, fmt.Errorf("unknown cross alignment %q", s)
	}
}
