package captcha

import (
	"fmt"
	"strings"
)

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Line is a straight distractor stroke across the canvas.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         Color
	Width          float64
}

// Glyph is a single challenge character with its placement.
type Glyph struct {
	Char     rune
	X, Y     float64
	Rotation float64 // degrees, rotated around (X, Y)
	Fill     Color
}

// Scene is a self-contained 2-D vector description of a rendered challenge:
// flat background, noise lines, then one glyph per character.
type Scene struct {
	Width, Height int
	Background    Color
	FontSize      int
	Lines         []Line
	Glyphs        []Glyph
}

// SVG encodes the scene as a standalone SVG document.
func (s Scene) SVG() string {
	var b strings.Builder

	fmt.Fprintf(&b, `<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, s.Width, s.Height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, s.Width, s.Height, s.Background.Hex())

	for _, l := range s.Lines {
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%g"/>`,
			l.X1, l.Y1, l.X2, l.Y2, l.Stroke.Hex(), l.Width)
	}

	for _, g := range s.Glyphs {
		fmt.Fprintf(&b,
			`<text x="%.2f" y="%.2f" font-family="Arial" font-size="%d" font-weight="bold" fill="%s" transform="rotate(%.2f, %.2f, %.2f)">%c</text>`,
			g.X, g.Y, s.FontSize, g.Fill.Hex(), g.Rotation, g.X, g.Y, g.Char)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
