// Package main provides the deck showcase demo.
// It builds a small presentation through the programmatic API and writes
// the rendered slides as SVG files to the directory given as the first
// argument (default "out").
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/deck"
	"github.com/go-deck/deck/pkg/export"
	"github.com/go-deck/deck/pkg/geometry"
	"github.com/go-deck/deck/pkg/style"
	"github.com/go-deck/deck/pkg/text"
)

func main() {
	outDir := "out"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}
	if err := run(outDir); err != nil {
		log.Fatal(err)
	}
}

func run(outDir string) error {
	d := deck.New()
	if err := titleSlide(d); err != nil {
		return err
	}
	if err := columnsSlide(d); err != nil {
		return err
	}
	if err := codeSlide(d); err != nil {
		return err
	}
	if err := stepsSlide(d); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	results, err := d.RenderAll(context.Background())
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("slide %d: %w", r.Slide.Index(), r.Err)
		}
		for step, instructions := range r.Steps {
			name := fmt.Sprintf("slide-%02d-%d.svg", r.Slide.Index()+1, step+1)
			if err := writeSVG(filepath.Join(outDir, name), instructions, r.Slide); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSVG(path string, instructions []export.Instruction, s *deck.Slide) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = export.WriteSVG(f, instructions, s.View(), s.Background())
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

func titleSlide(d *deck.Deck) error {
	s := d.AddSlide(deck.SlideBackground(style.RGB(0x1d, 0x2b, 0x3a)), deck.RootOptions(
		box.WithStyle(style.Properties{
			MainAlign:  mainAlign(style.MainCenter),
			CrossAlign: crossAlign(style.CrossCenter),
			Color:      style.ColorOf(style.ColorWhite),
		}),
	))
	if _, err := s.Root().NewChild(
		box.WithText("Box Trees, Resolved"),
		box.WithStyle(style.Properties{FontSize: style.Float(64), Bold: style.Bool(true)}),
	); err != nil {
		return err
	}
	_, err := s.Root().NewChild(
		box.WithText("a two-pass layout walkthrough"),
		box.WithStyle(style.Properties{
			FontSize: style.Float(30),
			Italic:   style.Bool(true),
			Color:    style.ColorOf(style.RGB(0x9f, 0xb3, 0xc8)),
		}),
	)
	return err
}

func columnsSlide(d *deck.Deck) error {
	s := d.AddSlide(deck.RootOptions(box.WithPadding(geometry.InsetsAll(48))))
	if _, err := s.Root().NewChild(
		box.WithText("Fractions divide what fixed siblings leave"),
		box.WithStyle(style.Properties{FontSize: style.Float(40), Bold: style.Bool(true)}),
	); err != nil {
		return err
	}

	row, err := s.Root().NewChild(box.Horizontal(), box.WithHeight(box.Fraction(1)))
	if err != nil {
		return err
	}
	panel := func(frac float64, label string, bg style.Color) error {
		cell, err := row.NewChild(
			box.WithSize(box.Fraction(frac), box.Fraction(1)),
			box.WithPadding(geometry.InsetsAll(16)),
			box.WithStyle(style.Properties{
				Background:   style.ColorOf(bg),
				CornerRadius: style.Float(12),
			}),
		)
		if err != nil {
			return err
		}
		_, err = cell.NewChild(box.WithText(label))
		return err
	}
	if err := panel(0.3, "30%", style.RGB(0xcf, 0xe8, 0xfc)); err != nil {
		return err
	}
	return panel(0.7, "70%", style.RGB(0xfc, 0xe3, 0xcf))
}

func codeSlide(d *deck.Deck) error {
	s := d.AddSlide(deck.RootOptions(box.WithPadding(geometry.InsetsAll(48))))
	if _, err := s.Root().NewChild(
		box.WithText("Highlighted code is just text runs"),
		box.WithStyle(style.Properties{FontSize: style.Float(40), Bold: style.Bool(true)}),
	); err != nil {
		return err
	}

	source := `func main() {
	d := deck.New()
	d.AddSlide()
}`
	content, err := text.HighlightCode(source, "go", "")
	if err != nil {
		return err
	}
	_, err = s.Root().NewChild(
		box.WithContent(text.NumberLines(content, style.RGB(0x99, 0x99, 0x99))),
		box.WithPadding(geometry.InsetsAll(24)),
		box.WithStyle(style.Properties{
			FontFamily: style.Str("monospace"),
			FontSize:   style.Float(22),
			Background: style.ColorOf(style.RGB(0xf6, 0xf8, 0xfa)),
		}),
	)
	return err
}

func stepsSlide(d *deck.Deck) error {
	s := d.AddSlide(deck.RootOptions(box.WithPadding(geometry.InsetsAll(48))))
	if _, err := s.Root().NewChild(
		box.WithText("Steps reveal, geometry holds still"),
		box.WithStyle(style.Properties{FontSize: style.Float(40), Bold: style.Bool(true)}),
	); err != nil {
		return err
	}
	for i, line := range []string{
		"measure bottom-up",
		"arrange top-down",
		"export in z order",
	} {
		if _, err := s.Root().NewChild(
			box.WithText("• "+line),
			box.FromStep(i+1),
		); err != nil {
			return err
		}
	}
	return nil
}

func mainAlign(a style.MainAlignment) *style.MainAlignment { return &a }

func crossAlign(a style.CrossAlignment) *style.CrossAlignment { return &a }
