package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-deck/deck/pkg/deck"
	"github.com/go-deck/deck/pkg/deckfile"
	"github.com/go-deck/deck/pkg/export"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <deckfile>",
	Short: "Render a deck file to per-slide SVG files",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", ".", "output directory")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cobraCmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	d, err := deckfile.Load(args[0], deck.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return err
	}

	results, err := d.RenderAll(cobraCmd.Context())
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			logger.Error("slide failed", zap.Int("slide", r.Slide.Index()), zap.Error(r.Err))
			continue
		}
		if err := writeSlide(r); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d slides failed", failed, len(results))
	}
	return nil
}

// writeSlide writes one SVG per show step: slide-01.svg for single-step
// slides, slide-01-step-2.svg and up for stepped reveals.
func writeSlide(r *deck.Rendered) error {
	for stepIdx, instructions := range r.Steps {
		name := fmt.Sprintf("slide-%02d.svg", r.Slide.Index()+1)
		if stepIdx > 0 {
			name = fmt.Sprintf("slide-%02d-step-%d.svg", r.Slide.Index()+1, stepIdx+1)
		}
		path := filepath.Join(renderOut, name)

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = export.WriteSVG(f, instructions, r.Slide.View(), r.Slide.Background())
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
