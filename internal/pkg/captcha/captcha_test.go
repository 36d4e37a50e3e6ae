package captcha

import (
	"fmt"
	"strings"
	"testing"
)

func TestGenerateTextAlphabetAndLength(t *testing.T) {
	g := NewSceneGenerator()

	seen := make(map[rune]bool)
	for range 10000 {
		text, _ := g.Generate()

		if len(text) != TextLength {
			t.Fatalf("text length = %d, want %d", len(text), TextLength)
		}
		for _, r := range text {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("text %q contains %q outside the alphabet", text, r)
			}
			seen[r] = true
		}
	}

	// 60k draws over 32 symbols: every symbol should show up.
	if len(seen) != len(Alphabet) {
		t.Errorf("distinct symbols drawn = %d, want %d", len(seen), len(Alphabet))
	}
}

func TestGenerateSceneGeometry(t *testing.T) {
	g := NewSceneGenerator()

	for range 200 {
		text, scene := g.Generate()

		if scene.Width != 200 || scene.Height != 60 {
			t.Fatalf("canvas = %dx%d, want 200x60", scene.Width, scene.Height)
		}
		if got := scene.Background.Hex(); got != "#f0f0f0" {
			t.Fatalf("background = %s, want #f0f0f0", got)
		}
		if len(scene.Lines) != 5 {
			t.Fatalf("noise lines = %d, want 5", len(scene.Lines))
		}
		for _, l := range scene.Lines {
			if got := l.Stroke.Hex(); got != "#cccccc" {
				t.Fatalf("line stroke = %s, want #cccccc", got)
			}
			if l.Width != 1 {
				t.Fatalf("line width = %g, want 1", l.Width)
			}
		}

		if len(scene.Glyphs) != len(text) {
			t.Fatalf("glyphs = %d, want %d", len(scene.Glyphs), len(text))
		}
		for i, gl := range scene.Glyphs {
			if gl.Char != rune(text[i]) {
				t.Fatalf("glyph %d char = %q, want %q", i, gl.Char, text[i])
			}
			if want := float64(20 + i*28); gl.X != want {
				t.Fatalf("glyph %d x = %g, want %g", i, gl.X, want)
			}
			if gl.Y < 30 || gl.Y > 40 {
				t.Fatalf("glyph %d y = %g, want within [30, 40]", i, gl.Y)
			}
			if gl.Rotation < -15 || gl.Rotation > 15 {
				t.Fatalf("glyph %d rotation = %g, want within [-15, 15]", i, gl.Rotation)
			}
			if gl.Fill.R >= 100 || gl.Fill.G >= 100 || gl.Fill.B >= 100 {
				t.Fatalf("glyph %d fill = %+v, want dark channels below 100", i, gl.Fill)
			}
		}
	}
}

func TestSceneSVG(t *testing.T) {
	text, scene := NewSceneGenerator().Generate()
	svg := scene.SVG()

	if !strings.HasPrefix(svg, `<svg width="200" height="60"`) {
		t.Fatalf("svg prefix = %q", svg[:40])
	}
	if !strings.Contains(svg, `fill="#f0f0f0"`) {
		t.Error("svg missing background rect fill")
	}
	if got := strings.Count(svg, "<line "); got != 5 {
		t.Errorf("svg line elements = %d, want 5", got)
	}
	for _, r := range text {
		if !strings.Contains(svg, fmt.Sprintf(">%c</text>", r)) {
			t.Errorf("svg missing glyph %q", r)
		}
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("svg not closed")
	}
}
