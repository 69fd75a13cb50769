package text

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/go-deck/deck/pkg/box"
	"github.com/go-deck/deck/pkg/style"
)

// DefaultCodeStyle is the chroma style used when none is named.
const DefaultCodeStyle = "github"

// HighlightCode tokenizes source in the given language and returns
// pre-styled text runs carrying the token colors of the named chroma
// style. Unknown languages fall back to an unstyled lexer, unknown style
// names to chroma's fallback style.
//
// The result is ordinary [box.TextContent]: the layout core measures and
// places it without knowing it came from a highlighter.
func HighlightCode(source, language, styleName string) (*box.TextContent, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = DefaultCodeStyle
	}
	chromaStyle := styles.Get(styleName)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("text: highlighting %s: %w", language, err)
	}

	lines := [][]box.TextRun{{}}
	for token := it(); token != chroma.EOF; token = it() {
		entry := chromaStyle.Get(token.Type)
		run := box.TextRun{
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			run.Color = style.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		}
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			r := run
			r.Text = part
			last := len(lines) - 1
			lines[last] = append(lines[last], r)
		}
	}

	// A trailing newline in the source leaves an empty final line.
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return &box.TextContent{Lines: lines}, nil
}

// NumberLines prefixes every line of the content with a right-aligned
// line number run in the given color.
func NumberLines(c *box.TextContent, color style.Color) *box.TextContent {
	width := len(fmt.Sprintf("%d", len(c.Lines)))
	lines := make([][]box.TextRun, len(c.Lines))
	for i, line := range c.Lines {
		prefix := box.TextRun{
			Text:  fmt.Sprintf("%*d  ", width, i+1),
			Color: color,
		}
		lines[i] = append([]box.TextRun{prefix}, line...)
	}
	return &box.TextContent{Lines: lines}
}
