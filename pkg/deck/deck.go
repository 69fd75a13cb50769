// Package deck composes slides into an ordered presentation and drives
// layout passes over them.
//
// Slides are independent: each owns its box tree and every render pass
// produces a fresh geometry snapshot, so the composer can lay slides out
// in parallel and re-render any subset without touching the others. A
// failing slide aborts only its own pass.
package deck

import (
	"context"
	"fmt"
	"iter"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/export"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/layout"
	"github.com/go-deck/deck/pkg/style"
	"github.com/go-deck/deck/pkg/text"
)

// Default slide dimensions, in layout units.
const (
	DefaultWidth  = 1024.0
	DefaultHeight = 768.0
)

// Slide is one root box plus presentation metadata.
type Slide struct {
	index      int
	root       *box.Box
	view       geometry.Size
	background style.Color
}

// Index returns the slide's ordinal position in the deck.
func (s *Slide) Index() int { return s.index }

// Root returns the slide's root box for tree construction.
func (s *Slide) Root() *box.Box { return s.root }

// View returns the slide's view dimensions.
func (s *Slide) View() geometry.Size { return s.view }

// Background returns the slide background color.
func (s *Slide) Background() style.Color { return s.background }

// Steps returns the number of show steps in the slide, at least 1.
func (s *Slide) Steps() int { return s.root.MaxStep() }

// Deck is an ordered sequence of slides sharing a measurer and default
// view size. Insertion order is the presentation order.
type Deck struct {
	slides      []*Slide
	measurer    layout.ContentMeasurer
	logger      *zap.Logger
	slideSize   geometry.Size
	parallelism int
}

// Option configures a Deck.
type Option func(*Deck)

// WithMeasurer replaces the default text measurement collaborator.
func WithMeasurer(m layout.ContentMeasurer) Option {
	return func(d *Deck) { d.measurer = m }
}

// WithLogger attaches a logger for render diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Deck) { d.logger = l }
}

// WithSlideSize sets the default view dimensions for new slides.
func WithSlideSize(width, height float64) Option {
	return func(d *Deck) { d.slideSize = geometry.Size{Width: width, Height: height} }
}

// WithParallelism bounds how many slides render concurrently.
func WithParallelism(n int) Option {
	return func(d *Deck) { d.parallelism = n }
}

// New creates an empty deck.
func New(opts ...Option) *Deck {
	d := &Deck{
		measurer:    text.NewMeasurer(),
		logger:      zap.NewNop(),
		slideSize:   geometry.Size{Width: DefaultWidth, Height: DefaultHeight},
		parallelism: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SlideOption configures a new slide.
type SlideOption func(*Slide)

// SlideSize overrides the deck's default view dimensions for one slide.
func SlideSize(width, height float64) SlideOption {
	return func(s *Slide) { s.view = geometry.Size{Width: width, Height: height} }
}

// SlideBackground sets the slide background color.
func SlideBackground(c style.Color) SlideOption {
	return func(s *Slide) { s.background = c }
}

// RootOptions configures the slide's root box.
func RootOptions(opts ...box.Option) SlideOption {
	return func(s *Slide) { s.root = box.NewRoot(opts...) }
}

// AddSlide appends a slide to the deck and returns it. The slide's root
// box is ready for tree construction.
func (d *Deck) AddSlide(opts ...SlideOption) *Slide {
	s := &Slide{
		index: len(d.slides),
		view:  d.slideSize,
		root:  box.NewRoot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	d.slides = append(d.slides, s)
	return s
}

// Len returns the number of slides.
func (d *Deck) Len() int { return len(d.slides) }

// Slide returns the slide at the given index.
func (d *Deck) Slide(i int) (*Slide, error) {
	if i < 0 || i >= len(d.slides) {
		return nil, fmt.Errorf("deck: slide index %d out of range [0, %d)", i, len(d.slides))
	}
	return d.slides[i], nil
}

// Slides iterates the slides in presentation order. The sequence is
// lazy, finite, and restartable.
func (d *Deck) Slides() iter.Seq[*Slide] {
	return func(yield func(*Slide) bool) {
		for _, s := range d.slides {
			if !yield(s) {
				return
			}
		}
	}
}

// Resolve runs a fresh layout pass for the slide at the given index,
// leaving all other slides untouched.
func (d *Deck) Resolve(i int) (*layout.Geometry, error) {
	s, err := d.Slide(i)
	if err != nil {
		return nil, err
	}
	return layout.Resolve(s.root, s.view, d.measurer)
}

// Rendered is the outcome of one slide's render: its geometry snapshot
// and the instruction sequence per show step. Err records a per-slide
// failure; sibling slides are unaffected.
type Rendered struct {
	Slide    *Slide
	Geometry *layout.Geometry
	Steps    [][]export.Instruction
	Err      error
}

// RenderAll lays out and exports every slide, in parallel up to the
// deck's parallelism. The result slice is indexed by slide order.
// Per-slide failures are recorded in [Rendered.Err]; RenderAll itself
// fails only when the context is canceled.
func (d *Deck) RenderAll(ctx context.Context) ([]*Rendered, error) {
	results := make([]*Rendered, len(d.slides))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i, s := range d.slides {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = d.renderSlide(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (d *Deck) renderSlide(s *Slide) *Rendered {
	start := time.Now()
	out := &Rendered{Slide: s}

	geo, err := layout.Resolve(s.root, s.view, d.measurer)
	if err != nil {
		out.Err = err
		d.logger.Error("slide layout failed",
			zap.Int("slide", s.index),
			zap.Error(err))
		return out
	}
	out.Geometry = geo

	var overflowed []string
	s.root.Walk(func(b *box.Box) {
		if geo.Overflowed(b.ID()) {
			overflowed = append(overflowed, b.ID())
		}
	})
	if len(overflowed) > 0 {
		d.logger.Warn("children overflow parent bounds",
			zap.Int("slide", s.index),
			zap.Strings("boxes", overflowed))
	}

	steps := s.Steps()
	out.Steps = make([][]export.Instruction, 0, steps)
	for step := 1; step <= steps; step++ {
		instructions, err := export.Instructions(s.root, geo, step)
		if err != nil {
			out.Err = err
			d.logger.Error("slide export failed",
				zap.Int("slide", s.index),
				zap.Int("step", step),
				zap.Error(err))
			return out
		}
		out.Steps = append(out.Steps, instructions)
	}

	d.logger.Info("slide rendered",
		zap.Int("slide", s.index),
		zap.Int("steps", steps),
		zap.Duration("elapsed", time.Since(start)))
	return out
}
